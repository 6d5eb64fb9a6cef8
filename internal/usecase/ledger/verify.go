package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/lunopay/payment-ledger-service/internal/domain"
)

// MarkVerified settles a FORMED transaction with the provider outcome.
func (uc *DefaultLedgerUsecase) MarkVerified(ctx context.Context, transactionID string, outcome domain.VerificationOutcome) error {
	newStatus, ok := outcome.Status()
	if !ok {
		return fmt.Errorf("unknown verification outcome %q", outcome)
	}

	transaction, _, err := uc.applyTransition(ctx, transactionID, "mark verified", newStatus,
		func(transaction *domain.Transaction, now time.Time) {
			transaction.VerifiedAt = &now
		})
	if err != nil {
		return err
	}

	if uc.Metrics != nil {
		duration := 0.0
		if transaction.FormedAt != nil {
			duration = transaction.VerifiedAt.Sub(*transaction.FormedAt).Seconds()
		}
		uc.Metrics.RecordVerified(
			transaction.GatewayName,
			transaction.Currency,
			newStatus.String(),
			transaction.AmountFiat,
			duration,
		)
	}

	return nil
}
