package models

import (
	"time"

	"github.com/lunopay/payment-ledger-service/internal/domain"
)

type TransactionModel struct {
	ID            string                   `gorm:"primaryKey;type:uuid"`
	Reference     string                   `gorm:"uniqueIndex:idx_reference"`
	AmountFiat    float64                  `gorm:"index:idx_amount"`
	Currency      string
	GatewayName   string                   `gorm:"index:idx_gateway"`
	Status        domain.TransactionStatus `gorm:"index:idx_status"`
	TrackingToken string
	CallbackURL   string
	CreatedAt     time.Time `gorm:"index:idx_created_at"`
	UpdatedAt     time.Time
	FormedAt      *time.Time
	VerifiedAt    *time.Time
	RefundedAt    *time.Time
}

// CurrencyModel is baseline reference data inserted by the seed step.
type CurrencyModel struct {
	Code     string `gorm:"primaryKey;type:varchar(3)"`
	Name     string `gorm:"not null"`
	Decimals int32  `gorm:"not null"`
}
