package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/lunopay/payment-ledger-service/internal/domain"
)

// Begin opens a new transaction in the CREATED state.
func (uc *DefaultLedgerUsecase) Begin(ctx context.Context, amountFiat float64, currency, gatewayName string) (*domain.Transaction, error) {
	if amountFiat <= 0 {
		return nil, fmt.Errorf("transaction amount must be positive, got %v", amountFiat)
	}
	if currency == "" {
		return nil, fmt.Errorf("transaction currency must not be empty")
	}
	if gatewayName == "" {
		return nil, fmt.Errorf("payment gateway name must not be empty")
	}

	referenceGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	transaction := &domain.Transaction{
		ID:          uuid.New().String(),
		Reference:   referenceGenerator(),
		AmountFiat:  amountFiat,
		Currency:    currency,
		GatewayName: gatewayName,
		Status:      domain.StatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.saveTransaction(ctx, "begin", transaction); err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordBegun(gatewayName, currency, amountFiat)
	}
	uc.emitStatusChange(ctx, "", transaction)

	return transaction, nil
}
