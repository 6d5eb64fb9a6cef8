package setup

import (
	"context"
	"fmt"

	"github.com/lunopay/payment-ledger-service/internal/infrastructure/logger"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/metrics"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/postgres"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/postgres/repository"
	"github.com/lunopay/payment-ledger-service/internal/initializer"
	"github.com/lunopay/payment-ledger-service/internal/usecase/ledger"
)

// Builder composes storage configuration and the initializer chain into one
// startup sequence and wires the ledger on top of them. Wiring is explicit:
// collaborators are passed in, not resolved from any global registry.
type Builder struct {
	gateway     *postgres.Gateway
	chain       *initializer.Chain
	publisher   ledger.EventPublisher
	eventLogger logger.TransactionEventLogger
	metrics     *metrics.LedgerMetrics
}

func NewBuilder(gateway *postgres.Gateway, chain *initializer.Chain) *Builder {
	return &Builder{
		gateway: gateway,
		chain:   chain,
	}
}

// ConfigureStorage forwards the configuration callback to the gateway.
func (b *Builder) ConfigureStorage(configure func(*postgres.Options)) error {
	return b.gateway.Configure(configure)
}

// RegisterStep appends a named initializer step to the chain.
func (b *Builder) RegisterStep(step initializer.Step) error {
	return b.chain.Register(step)
}

func (b *Builder) WithPublisher(publisher ledger.EventPublisher) *Builder {
	b.publisher = publisher
	return b
}

func (b *Builder) WithEventLogger(eventLogger logger.TransactionEventLogger) *Builder {
	b.eventLogger = eventLogger
	return b
}

func (b *Builder) WithMetrics(ledgerMetrics *metrics.LedgerMetrics) *Builder {
	b.metrics = ledgerMetrics
	return b
}

// Startup runs every registered initializer step against the bound gateway,
// blocking the caller until the chain completes, then wires the ledger.
func (b *Builder) Startup(ctx context.Context) (*ledger.DefaultLedgerUsecase, error) {
	if !b.gateway.Bound() {
		return nil, fmt.Errorf("startup requires a configured storage gateway")
	}

	if err := b.chain.Run(ctx, b.gateway); err != nil {
		return nil, fmt.Errorf("initializer chain failed: %w", err)
	}

	eventLogger := b.eventLogger
	if eventLogger == nil {
		eventLogger = logger.NewPGTransactionEventLogger(b.gateway.DB())
	}

	transactionRepo := repository.NewDefaultTransactionRepository(b.gateway.DB())

	return ledger.NewDefaultLedgerUsecase(transactionRepo, b.publisher, eventLogger, b.metrics), nil
}
