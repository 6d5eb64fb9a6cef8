package repository

import (
	"context"
	"errors"

	"github.com/lunopay/payment-ledger-service/internal/domain"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/postgres/mappers"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) LoadTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, &domain.StorageError{Op: "load", Err: err}
	}

	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultTransactionRepository) LoadTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := r.DB.WithContext(ctx).First(&model, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, &domain.StorageError{Op: "load by reference", Err: err}
	}

	return mappers.ToDomainTransaction(&model), nil
}

// SaveTransaction upserts by primary key.
func (r *DefaultTransactionRepository) SaveTransaction(ctx context.Context, transaction *domain.Transaction) error {
	model := mappers.ToGORMTransaction(transaction)
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(model).Error
	if err != nil {
		return &domain.StorageError{Op: "save", Err: err}
	}
	return nil
}

func (r *DefaultTransactionRepository) ListTransactions(
	ctx context.Context,
	filters domain.TransactionFilters,
	page, limit int64,
) ([]*domain.Transaction, int64, error) {
	var transactionModels []models.TransactionModel
	var total int64

	baseQuery := r.DB.WithContext(ctx).Model(&models.TransactionModel{})

	if len(filters.Statuses) > 0 {
		baseQuery = baseQuery.Where("status IN (?)", filters.Statuses)
	}

	if filters.GatewayName != "" {
		baseQuery = baseQuery.Where("gateway_name = ?", filters.GatewayName)
	}

	if filters.Currency != "" {
		baseQuery = baseQuery.Where("currency = ?", filters.Currency)
	}

	if filters.MinAmountFiat > 0 {
		baseQuery = baseQuery.Where("amount_fiat >= ?", filters.MinAmountFiat)
	}

	if filters.MaxAmountFiat > 0 {
		baseQuery = baseQuery.Where("amount_fiat <= ?", filters.MaxAmountFiat)
	}

	if !filters.DateFrom.IsZero() {
		baseQuery = baseQuery.Where("created_at >= ?", filters.DateFrom)
	}

	if !filters.DateTo.IsZero() {
		baseQuery = baseQuery.Where("created_at <= ?", filters.DateTo)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, &domain.StorageError{Op: "count", Err: err}
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&transactionModels).Error
	if err != nil {
		return nil, 0, &domain.StorageError{Op: "list", Err: err}
	}

	transactions := make([]*domain.Transaction, len(transactionModels))
	for i, model := range transactionModels {
		transactions[i] = mappers.ToDomainTransaction(&model)
	}

	return transactions, total, nil
}

func (r *DefaultTransactionRepository) CountByStatus(ctx context.Context) (map[domain.TransactionStatus]int64, error) {
	type statusCount struct {
		Status domain.TransactionStatus
		Count  int64
	}

	var rows []statusCount
	err := r.DB.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, &domain.StorageError{Op: "count by status", Err: err}
	}

	counts := make(map[domain.TransactionStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
