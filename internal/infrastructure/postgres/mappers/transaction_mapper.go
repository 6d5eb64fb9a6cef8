package mappers

import (
	"github.com/lunopay/payment-ledger-service/internal/domain"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:            model.ID,
		Reference:     model.Reference,
		AmountFiat:    model.AmountFiat,
		Currency:      model.Currency,
		GatewayName:   model.GatewayName,
		Status:        model.Status,
		TrackingToken: model.TrackingToken,
		CallbackURL:   model.CallbackURL,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
		FormedAt:      model.FormedAt,
		VerifiedAt:    model.VerifiedAt,
		RefundedAt:    model.RefundedAt,
	}
}

func ToGORMTransaction(transaction *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:            transaction.ID,
		Reference:     transaction.Reference,
		AmountFiat:    transaction.AmountFiat,
		Currency:      transaction.Currency,
		GatewayName:   transaction.GatewayName,
		Status:        transaction.Status,
		TrackingToken: transaction.TrackingToken,
		CallbackURL:   transaction.CallbackURL,
		CreatedAt:     transaction.CreatedAt,
		UpdatedAt:     transaction.UpdatedAt,
		FormedAt:      transaction.FormedAt,
		VerifiedAt:    transaction.VerifiedAt,
		RefundedAt:    transaction.RefundedAt,
	}
}
