package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// TransactionStatusEvent is one audit row per status change.
type TransactionStatusEvent struct {
	ID            uint `gorm:"primaryKey"`
	TransactionID string
	Reference     string
	OldStatus     string
	NewStatus     string
	AmountFiat    float64
	Currency      string
	GatewayName   string
	TrackingToken string
	Timestamp     time.Time
}

type TransactionEventLogger interface {
	LogStatusChange(ctx context.Context, event TransactionStatusEvent) error
}

type PGTransactionEventLogger struct {
	db *gorm.DB
}

func NewPGTransactionEventLogger(db *gorm.DB) *PGTransactionEventLogger {
	return &PGTransactionEventLogger{db: db}
}

func (l *PGTransactionEventLogger) LogStatusChange(ctx context.Context, event TransactionStatusEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
