package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lunopay/payment-ledger-service/internal/domain"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/kafka"
)

// fakeStorage is an in-memory StorageGateway with failure injection.
type fakeStorage struct {
	mu           sync.Mutex
	transactions map[string]domain.Transaction
	saveFailures int   // number of saves to fail before succeeding
	saveErr      error // error returned for injected failures
	saveCalls    int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{transactions: make(map[string]domain.Transaction)}
}

func (s *fakeStorage) LoadTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	transaction, ok := s.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copied := transaction
	return &copied, nil
}

func (s *fakeStorage) LoadTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, transaction := range s.transactions {
		if transaction.Reference == reference {
			copied := transaction
			return &copied, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (s *fakeStorage) SaveTransaction(ctx context.Context, transaction *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	if s.saveFailures > 0 {
		s.saveFailures--
		return s.saveErr
	}
	s.transactions[transaction.ID] = *transaction
	return nil
}

func (s *fakeStorage) ListTransactions(ctx context.Context, filters domain.TransactionFilters, page, limit int64) ([]*domain.Transaction, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Transaction, 0, len(s.transactions))
	for _, transaction := range s.transactions {
		copied := transaction
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (s *fakeStorage) CountByStatus(ctx context.Context) (map[domain.TransactionStatus]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[domain.TransactionStatus]int64)
	for _, transaction := range s.transactions {
		counts[transaction.Status]++
	}
	return counts, nil
}

func (s *fakeStorage) status(t *testing.T, id string) domain.TransactionStatus {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	transaction, ok := s.transactions[id]
	if !ok {
		t.Fatalf("transaction %s not stored", id)
	}
	return transaction.Status
}

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.TransactionEvent
}

func (p *fakePublisher) PublishTransaction(event kafka.TransactionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func newTestLedger(storage *fakeStorage, publisher EventPublisher) *DefaultLedgerUsecase {
	return NewDefaultLedgerUsecase(storage, publisher, nil, nil)
}

func TestLedger_FullLifecycle(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	publisher := &fakePublisher{}
	uc := newTestLedger(storage, publisher)

	transaction, err := uc.Begin(ctx, 100, "USD", "gatewayX")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if transaction.Status != domain.StatusCreated {
		t.Fatalf("expected CREATED, got %s", transaction.Status)
	}
	if transaction.ID == "" || transaction.Reference == "" {
		t.Fatalf("expected generated id and reference, got %+v", transaction)
	}

	if err := uc.MarkFormed(ctx, transaction.ID, "tok1"); err != nil {
		t.Fatalf("mark formed: %v", err)
	}
	formed, err := uc.GetTransaction(ctx, transaction.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if formed.Status != domain.StatusFormed || formed.TrackingToken != "tok1" {
		t.Fatalf("expected FORMED with tok1, got %s %q", formed.Status, formed.TrackingToken)
	}
	if formed.FormedAt == nil {
		t.Fatal("expected FormedAt to be set")
	}

	if err := uc.MarkVerified(ctx, transaction.ID, domain.OutcomePaid); err != nil {
		t.Fatalf("mark verified: %v", err)
	}
	if got := storage.status(t, transaction.ID); got != domain.StatusPaid {
		t.Fatalf("expected PAID, got %s", got)
	}

	if err := uc.Refund(ctx, transaction.ID); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if got := storage.status(t, transaction.ID); got != domain.StatusRefunded {
		t.Fatalf("expected REFUNDED, got %s", got)
	}

	// second refund must be rejected
	err = uc.Refund(ctx, transaction.ID)
	var invalid *domain.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if invalid.From != domain.StatusRefunded || invalid.To != domain.StatusRefunded {
		t.Fatalf("unexpected transition in error: %s -> %s", invalid.From, invalid.To)
	}

	// begin, formed, paid, refunded
	if len(publisher.events) != 4 {
		t.Fatalf("expected 4 published events, got %d", len(publisher.events))
	}
	if publisher.events[3].NewStatus != "REFUNDED" || publisher.events[3].OldStatus != "PAID" {
		t.Fatalf("unexpected last event: %+v", publisher.events[3])
	}
}

func TestLedger_CannotSkipFormed(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	uc := newTestLedger(storage, nil)

	transaction, err := uc.Begin(ctx, 50, "EUR", "gatewayY")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	err = uc.MarkVerified(ctx, transaction.ID, domain.OutcomePaid)
	var invalid *domain.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if got := storage.status(t, transaction.ID); got != domain.StatusCreated {
		t.Fatalf("status corrupted after rejected transition: %s", got)
	}
}

func TestLedger_RefundOnlyFromPaid(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	uc := newTestLedger(storage, nil)

	transaction, err := uc.Begin(ctx, 10, "USD", "gatewayX")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := uc.MarkFormed(ctx, transaction.ID, "tok"); err != nil {
		t.Fatalf("mark formed: %v", err)
	}
	if err := uc.MarkVerified(ctx, transaction.ID, domain.OutcomeFailed); err != nil {
		t.Fatalf("mark verified: %v", err)
	}

	err = uc.Refund(ctx, transaction.ID)
	var invalid *domain.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError for FAILED -> REFUNDED, got %v", err)
	}
}

func TestLedger_ConcurrentVerification(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	uc := newTestLedger(storage, nil)

	transaction, err := uc.Begin(ctx, 75, "USD", "gatewayX")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := uc.MarkFormed(ctx, transaction.ID, "tok"); err != nil {
		t.Fatalf("mark formed: %v", err)
	}

	outcomes := []domain.VerificationOutcome{domain.OutcomePaid, domain.OutcomeCanceled}
	results := make([]error, len(outcomes))

	var wg sync.WaitGroup
	for i, outcome := range outcomes {
		i, outcome := i, outcome
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = uc.MarkVerified(ctx, transaction.ID, outcome)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var invalid *domain.InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("loser must fail with InvalidTransitionError, got %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one winner, got %d", succeeded)
	}

	final := storage.status(t, transaction.ID)
	if final != domain.StatusPaid && final != domain.StatusCanceled {
		t.Fatalf("final state corrupted: %s", final)
	}
}

func TestLedger_SaveRetriesOnceOnStorageError(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	storage.saveFailures = 1
	storage.saveErr = &domain.StorageError{Op: "save", Err: errors.New("connection reset")}
	uc := newTestLedger(storage, nil)

	transaction, err := uc.Begin(ctx, 100, "USD", "gatewayX")
	if err != nil {
		t.Fatalf("expected retried save to succeed, got %v", err)
	}
	if storage.saveCalls != 2 {
		t.Fatalf("expected 2 save calls, got %d", storage.saveCalls)
	}
	if got := storage.status(t, transaction.ID); got != domain.StatusCreated {
		t.Fatalf("expected CREATED after retried save, got %s", got)
	}
}

func TestLedger_SaveSurfacesStorageErrorAfterRetry(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	storage.saveFailures = 2
	storage.saveErr = &domain.StorageError{Op: "save", Err: errors.New("connection refused")}
	uc := newTestLedger(storage, nil)

	_, err := uc.Begin(ctx, 100, "USD", "gatewayX")
	var storageErr *domain.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if storage.saveCalls != 2 {
		t.Fatalf("expected exactly one retry (2 calls), got %d", storage.saveCalls)
	}
}

func TestLedger_BeginValidation(t *testing.T) {
	ctx := context.Background()
	uc := newTestLedger(newFakeStorage(), nil)

	if _, err := uc.Begin(ctx, 0, "USD", "gatewayX"); err == nil {
		t.Fatal("expected error for non-positive amount")
	}
	if _, err := uc.Begin(ctx, 10, "", "gatewayX"); err == nil {
		t.Fatal("expected error for empty currency")
	}
	if _, err := uc.Begin(ctx, 10, "USD", ""); err == nil {
		t.Fatal("expected error for empty gateway name")
	}
}

func TestLedger_MarkFormedUnknownTransaction(t *testing.T) {
	ctx := context.Background()
	uc := newTestLedger(newFakeStorage(), nil)

	err := uc.MarkFormed(ctx, "missing-id", "tok")
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestLedger_UnknownOutcomeRejected(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	uc := newTestLedger(storage, nil)

	transaction, err := uc.Begin(ctx, 10, "USD", "gatewayX")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := uc.MarkFormed(ctx, transaction.ID, "tok"); err != nil {
		t.Fatalf("mark formed: %v", err)
	}

	if err := uc.MarkVerified(ctx, transaction.ID, domain.VerificationOutcome("PENDING")); err == nil {
		t.Fatal("expected error for unknown outcome")
	}
	if got := storage.status(t, transaction.ID); got != domain.StatusFormed {
		t.Fatalf("status changed on rejected outcome: %s", got)
	}
}
