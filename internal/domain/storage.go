package domain

import (
	"context"
	"time"
)

type TransactionFilters struct {
	Statuses      []TransactionStatus
	GatewayName   string
	Currency      string
	MinAmountFiat float64
	MaxAmountFiat float64
	DateFrom      time.Time
	DateTo        time.Time
}

// StorageGateway is the persistence port for transaction records.
// SaveTransaction is an upsert keyed by Transaction.ID. No retries happen
// inside the gateway; retry policy belongs to the caller.
type StorageGateway interface {
	LoadTransaction(ctx context.Context, transactionID string) (*Transaction, error)
	LoadTransactionByReference(ctx context.Context, reference string) (*Transaction, error)
	SaveTransaction(ctx context.Context, transaction *Transaction) error
	ListTransactions(ctx context.Context, filters TransactionFilters, page, limit int64) ([]*Transaction, int64, error)
	CountByStatus(ctx context.Context) (map[TransactionStatus]int64, error)
}

// SchemaManager is what the initializer chain drives during startup.
type SchemaManager interface {
	CreateSchemaIfMissing(ctx context.Context) error
	MigrateToLatest(ctx context.Context) error
	DropAndCreateSchema(ctx context.Context) error
	SeedBaseline(ctx context.Context) error
}
