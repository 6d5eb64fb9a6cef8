package ledger

import (
	"context"

	"github.com/lunopay/payment-ledger-service/internal/domain"
)

func (uc *DefaultLedgerUsecase) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return uc.Storage.LoadTransaction(ctx, transactionID)
}

func (uc *DefaultLedgerUsecase) GetTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	return uc.Storage.LoadTransactionByReference(ctx, reference)
}

func (uc *DefaultLedgerUsecase) ListTransactions(
	ctx context.Context,
	filters domain.TransactionFilters,
	page, limit int64,
) ([]*domain.Transaction, int64, error) {
	return uc.Storage.ListTransactions(ctx, filters, page, limit)
}

func (uc *DefaultLedgerUsecase) CountByStatus(ctx context.Context) (map[domain.TransactionStatus]int64, error) {
	return uc.Storage.CountByStatus(ctx)
}
