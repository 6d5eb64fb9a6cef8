package initializer

import (
	"context"
	"fmt"

	"github.com/lunopay/payment-ledger-service/internal/domain"
)

type StepKind string

const (
	CreateIfMissing  StepKind = "CREATE_IF_MISSING"
	MigrateToLatest  StepKind = "MIGRATE_TO_LATEST"
	DeleteThenCreate StepKind = "DELETE_THEN_CREATE"
	Seed             StepKind = "SEED"
)

// Step is one named unit of database setup work run once at startup.
type Step struct {
	Name string
	Kind StepKind
}

// Chain executes registered steps strictly in registration order.
type Chain struct {
	steps []Step
	names map[string]struct{}
}

func NewChain() *Chain {
	return &Chain{
		names: make(map[string]struct{}),
	}
}

// Register appends a step. A name collision fails with DuplicateStepError
// and leaves the chain unchanged.
func (c *Chain) Register(step Step) error {
	if step.Name == "" {
		return fmt.Errorf("initializer step name must not be empty")
	}
	switch step.Kind {
	case CreateIfMissing, MigrateToLatest, DeleteThenCreate, Seed:
	default:
		return fmt.Errorf("unknown initializer step kind %q", step.Kind)
	}
	if _, exists := c.names[step.Name]; exists {
		return &domain.DuplicateStepError{Name: step.Name}
	}
	c.names[step.Name] = struct{}{}
	c.steps = append(c.steps, step)
	return nil
}

// Steps returns the registered steps in execution order.
func (c *Chain) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

// Run applies every step to the schema manager on the calling goroutine.
// The first failing step aborts the chain; later steps do not execute.
// There is no mid-chain cancellation: a failing step is the only early exit.
func (c *Chain) Run(ctx context.Context, schema domain.SchemaManager) error {
	for _, step := range c.steps {
		var err error
		switch step.Kind {
		case CreateIfMissing:
			err = schema.CreateSchemaIfMissing(ctx)
		case MigrateToLatest:
			err = schema.MigrateToLatest(ctx)
		case DeleteThenCreate:
			err = schema.DropAndCreateSchema(ctx)
		case Seed:
			err = schema.SeedBaseline(ctx)
		}
		if err != nil {
			return fmt.Errorf("initializer step %q: %w", step.Name, err)
		}
	}
	return nil
}
