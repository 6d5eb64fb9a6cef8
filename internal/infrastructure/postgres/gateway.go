package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/lunopay/payment-ledger-service/internal/domain"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/logger"
	ledgermigrate "github.com/lunopay/payment-ledger-service/internal/infrastructure/migrate"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/postgres/models"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Options describe the storage binding. Driver selects the SQL provider,
// MigrationsPath points at the versioned migration files.
type Options struct {
	Driver         string
	Dsn            string
	MigrationsPath string
}

// schemaModels is every table owned by this library.
var schemaModels = []any{
	&models.TransactionModel{},
	&models.CurrencyModel{},
	&logger.TransactionStatusEvent{},
}

// baselineCurrencies is the reference data inserted by the seed step.
var baselineCurrencies = []models.CurrencyModel{
	{Code: "USD", Name: "US Dollar", Decimals: 2},
	{Code: "EUR", Name: "Euro", Decimals: 2},
	{Code: "RUB", Name: "Russian Ruble", Decimals: 2},
}

// openConn dials the database. Overridable in tests.
var openConn = func(opts Options) (*gorm.DB, error) {
	switch opts.Driver {
	case "", "postgres":
		return gorm.Open(pgdriver.Open(opts.Dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", opts.Driver)
	}
}

// Gateway owns the database handle. It is bound exactly once per process
// via Configure and shared read/write afterwards.
type Gateway struct {
	mu    sync.Mutex
	bound bool
	opts  Options
	db    *gorm.DB
}

func NewGateway() *Gateway {
	return &Gateway{}
}

// Configure binds the gateway using the supplied callback. A nil callback or
// a second call fails fast with a configuration error.
func (g *Gateway) Configure(configure func(*Options)) error {
	if configure == nil {
		return domain.ErrNilConfigure
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.bound {
		return domain.ErrAlreadyBound
	}

	var opts Options
	configure(&opts)

	db, err := openConn(opts)
	if err != nil {
		return fmt.Errorf("failed to bind storage: %w", err)
	}

	g.opts = opts
	g.db = db
	g.bound = true
	return nil
}

// ConfigureStorage forwards to Configure.
//
// Deprecated: use Configure.
func (g *Gateway) ConfigureStorage(configure func(*Options)) error {
	return g.Configure(configure)
}

// ConfigurePostgres binds the gateway to a postgres database by DSN.
//
// Deprecated: use Configure with an explicit driver.
func (g *Gateway) ConfigurePostgres(dsn string) error {
	return g.Configure(func(opts *Options) {
		opts.Driver = "postgres"
		opts.Dsn = dsn
	})
}

func (g *Gateway) Bound() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bound
}

func (g *Gateway) DB() *gorm.DB {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.db
}

// CreateSchemaIfMissing creates owned tables that do not exist yet and
// leaves existing ones untouched.
func (g *Gateway) CreateSchemaIfMissing(ctx context.Context) error {
	db := g.DB().WithContext(ctx)
	migrator := db.Migrator()
	for _, model := range schemaModels {
		if migrator.HasTable(model) {
			continue
		}
		if err := migrator.CreateTable(model); err != nil {
			return &domain.StorageError{Op: "create schema", Err: err}
		}
	}
	return nil
}

// MigrateToLatest applies pending versioned migrations. Partial progress
// stays committed on failure.
func (g *Gateway) MigrateToLatest(ctx context.Context) error {
	if err := ledgermigrate.RunMigrations(g.DB(), g.options().MigrationsPath); err != nil {
		return &domain.MigrationError{Step: "migrate to latest", Err: err}
	}
	return nil
}

// DropAndCreateSchema drops every owned table unconditionally and creates a
// fresh schema. This is the workaround for engines that cannot apply
// incremental migrations.
func (g *Gateway) DropAndCreateSchema(ctx context.Context) error {
	db := g.DB().WithContext(ctx)
	migrator := db.Migrator()
	for _, model := range schemaModels {
		if !migrator.HasTable(model) {
			continue
		}
		if err := migrator.DropTable(model); err != nil {
			return &domain.StorageError{Op: "drop schema", Err: err}
		}
	}
	for _, model := range schemaModels {
		if err := migrator.CreateTable(model); err != nil {
			return &domain.StorageError{Op: "create schema", Err: err}
		}
	}
	return nil
}

// SeedBaseline inserts reference currencies only when the table is empty.
func (g *Gateway) SeedBaseline(ctx context.Context) error {
	db := g.DB().WithContext(ctx)

	var count int64
	if err := db.Model(&models.CurrencyModel{}).Count(&count).Error; err != nil {
		return &domain.StorageError{Op: "seed count", Err: err}
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(&baselineCurrencies).Error; err != nil {
		return &domain.StorageError{Op: "seed insert", Err: err}
	}
	return nil
}

func (g *Gateway) options() Options {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opts
}
