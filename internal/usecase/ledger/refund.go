package ledger

import (
	"context"
	"time"

	"github.com/lunopay/payment-ledger-service/internal/domain"
)

// Refund moves a PAID transaction to REFUNDED. No other state can be refunded.
func (uc *DefaultLedgerUsecase) Refund(ctx context.Context, transactionID string) error {
	transaction, _, err := uc.applyTransition(ctx, transactionID, "refund", domain.StatusRefunded,
		func(transaction *domain.Transaction, now time.Time) {
			transaction.RefundedAt = &now
		})
	if err != nil {
		return err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordRefunded(transaction.GatewayName, transaction.Currency, transaction.AmountFiat)
	}

	return nil
}
