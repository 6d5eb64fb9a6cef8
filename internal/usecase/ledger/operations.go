package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lunopay/payment-ledger-service/internal/domain"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/kafka"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/logger"
)

func (uc *DefaultLedgerUsecase) lockTransaction(transactionID string) func() {
	value, _ := uc.locks.LoadOrStore(transactionID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// saveTransaction persists write-then-acknowledge. A storage failure is
// retried once, then surfaced.
func (uc *DefaultLedgerUsecase) saveTransaction(ctx context.Context, operation string, transaction *domain.Transaction) error {
	err := uc.Storage.SaveTransaction(ctx, transaction)
	if err == nil {
		return nil
	}

	var storageErr *domain.StorageError
	if !errors.As(err, &storageErr) {
		return err
	}

	slog.Warn("ledger write failed, retrying once",
		"operation", operation,
		"transaction_id", transaction.ID,
		"error", err.Error(),
	)
	if uc.Metrics != nil {
		uc.Metrics.RecordStorageRetry(operation)
	}

	return uc.Storage.SaveTransaction(ctx, transaction)
}

// applyTransition loads the transaction under its per-id lock, validates the
// edge, mutates, and persists. Returns the transaction and its prior status.
func (uc *DefaultLedgerUsecase) applyTransition(
	ctx context.Context,
	transactionID string,
	operation string,
	to domain.TransactionStatus,
	mutate func(transaction *domain.Transaction, now time.Time),
) (*domain.Transaction, domain.TransactionStatus, error) {

	unlock := uc.lockTransaction(transactionID)
	defer unlock()

	transaction, err := uc.Storage.LoadTransaction(ctx, transactionID)
	if err != nil {
		return nil, "", err
	}

	oldStatus := transaction.Status
	if !domain.CanTransition(oldStatus, to) {
		if uc.Metrics != nil {
			uc.Metrics.RecordTransitionError(transaction.GatewayName, oldStatus.String(), to.String())
		}
		return nil, "", &domain.InvalidTransitionError{
			TransactionID: transactionID,
			From:          oldStatus,
			To:            to,
		}
	}

	now := time.Now()
	transaction.Status = to
	transaction.UpdatedAt = now
	if mutate != nil {
		mutate(transaction, now)
	}

	if err := uc.saveTransaction(ctx, operation, transaction); err != nil {
		return nil, "", err
	}

	uc.emitStatusChange(ctx, oldStatus, transaction)

	return transaction, oldStatus, nil
}

// emitStatusChange writes the audit row and publishes the lifecycle event.
// Neither failure fails the transition itself.
func (uc *DefaultLedgerUsecase) emitStatusChange(ctx context.Context, oldStatus domain.TransactionStatus, transaction *domain.Transaction) {
	if uc.EventLogger != nil {
		err := uc.EventLogger.LogStatusChange(ctx, logger.TransactionStatusEvent{
			TransactionID: transaction.ID,
			Reference:     transaction.Reference,
			OldStatus:     oldStatus.String(),
			NewStatus:     transaction.Status.String(),
			AmountFiat:    transaction.AmountFiat,
			Currency:      transaction.Currency,
			GatewayName:   transaction.GatewayName,
			TrackingToken: transaction.TrackingToken,
			Timestamp:     transaction.UpdatedAt,
		})
		if err != nil {
			slog.Error("failed to log status change",
				"transaction_id", transaction.ID,
				"error", err.Error(),
			)
		}
	}

	if uc.Publisher != nil {
		err := uc.Publisher.PublishTransaction(kafka.TransactionEvent{
			TransactionID: transaction.ID,
			Reference:     transaction.Reference,
			GatewayName:   transaction.GatewayName,
			OldStatus:     oldStatus.String(),
			NewStatus:     transaction.Status.String(),
			AmountFiat:    transaction.AmountFiat,
			Currency:      transaction.Currency,
			TrackingToken: transaction.TrackingToken,
			Timestamp:     transaction.UpdatedAt,
		})
		if err != nil {
			slog.Error("failed to publish transaction event",
				"transaction_id", transaction.ID,
				"error", err.Error(),
			)
		}
	}
}
