package setup

import (
	"context"
	"errors"
	"testing"

	"github.com/lunopay/payment-ledger-service/internal/domain"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/postgres"
	"github.com/lunopay/payment-ledger-service/internal/initializer"
)

func TestBuilder_StartupRequiresBoundGateway(t *testing.T) {
	builder := NewBuilder(postgres.NewGateway(), initializer.NewChain())

	if _, err := builder.Startup(context.Background()); err == nil {
		t.Fatal("expected startup to fail on unbound gateway")
	}
}

func TestBuilder_ConfigureStorageNilCallback(t *testing.T) {
	builder := NewBuilder(postgres.NewGateway(), initializer.NewChain())

	if err := builder.ConfigureStorage(nil); !errors.Is(err, domain.ErrNilConfigure) {
		t.Fatalf("expected ErrNilConfigure, got %v", err)
	}
}

func TestBuilder_RegisterStepForwardsDuplicates(t *testing.T) {
	builder := NewBuilder(postgres.NewGateway(), initializer.NewChain())

	if err := builder.RegisterStep(initializer.Step{Name: "create", Kind: initializer.CreateIfMissing}); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := builder.RegisterStep(initializer.Step{Name: "create", Kind: initializer.Seed})
	var dup *domain.DuplicateStepError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateStepError, got %v", err)
	}
}
