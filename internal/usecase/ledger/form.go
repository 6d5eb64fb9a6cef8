package ledger

import (
	"context"
	"time"

	"github.com/lunopay/payment-ledger-service/internal/domain"
)

// MarkFormed records that the payment request was handed to the provider.
// Legal only from CREATED.
func (uc *DefaultLedgerUsecase) MarkFormed(ctx context.Context, transactionID, trackingToken string) error {
	transaction, _, err := uc.applyTransition(ctx, transactionID, "mark formed", domain.StatusFormed,
		func(transaction *domain.Transaction, now time.Time) {
			transaction.TrackingToken = trackingToken
			transaction.FormedAt = &now
		})
	if err != nil {
		return err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordFormed(transaction.GatewayName)
	}

	return nil
}
