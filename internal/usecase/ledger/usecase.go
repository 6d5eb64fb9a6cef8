package ledger

import (
	"context"
	"sync"

	"github.com/lunopay/payment-ledger-service/internal/domain"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/kafka"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/logger"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/metrics"
)

type LedgerUsecase interface {
	Begin(ctx context.Context, amountFiat float64, currency, gatewayName string) (*domain.Transaction, error)
	MarkFormed(ctx context.Context, transactionID, trackingToken string) error
	MarkVerified(ctx context.Context, transactionID string, outcome domain.VerificationOutcome) error
	Refund(ctx context.Context, transactionID string) error

	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	GetTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filters domain.TransactionFilters, page, limit int64) ([]*domain.Transaction, int64, error)
	CountByStatus(ctx context.Context) (map[domain.TransactionStatus]int64, error)
}

type EventPublisher interface {
	PublishTransaction(event kafka.TransactionEvent) error
}

// DefaultLedgerUsecase serializes mutations per transaction id; operations on
// different ids run concurrently.
type DefaultLedgerUsecase struct {
	Storage     domain.StorageGateway
	Publisher   EventPublisher
	EventLogger logger.TransactionEventLogger
	Metrics     *metrics.LedgerMetrics

	locks sync.Map // transaction id -> *sync.Mutex
}

func NewDefaultLedgerUsecase(
	storage domain.StorageGateway,
	publisher EventPublisher,
	eventLogger logger.TransactionEventLogger,
	ledgerMetrics *metrics.LedgerMetrics) *DefaultLedgerUsecase {

	return &DefaultLedgerUsecase{
		Storage:     storage,
		Publisher:   publisher,
		EventLogger: eventLogger,
		Metrics:     ledgerMetrics,
	}
}
