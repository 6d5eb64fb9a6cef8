package domain

import "time"

type TransactionStatus string

const (
	StatusCreated  TransactionStatus = "CREATED"
	StatusFormed   TransactionStatus = "FORMED"
	StatusPaid     TransactionStatus = "PAID"
	StatusFailed   TransactionStatus = "FAILED"
	StatusCanceled TransactionStatus = "CANCELED"
	StatusRefunded TransactionStatus = "REFUNDED"
)

func (s TransactionStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
// PAID is not terminal: it still has the refund edge.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusFailed || s == StatusCanceled || s == StatusRefunded
}

// statusGraph holds every legal transition. No edge enters CREATED.
var statusGraph = map[TransactionStatus][]TransactionStatus{
	StatusCreated: {StatusFormed},
	StatusFormed:  {StatusPaid, StatusFailed, StatusCanceled},
	StatusPaid:    {StatusRefunded},
}

func CanTransition(from, to TransactionStatus) bool {
	for _, next := range statusGraph[from] {
		if next == to {
			return true
		}
	}
	return false
}

type VerificationOutcome string

const (
	OutcomePaid     VerificationOutcome = "PAID"
	OutcomeFailed   VerificationOutcome = "FAILED"
	OutcomeCanceled VerificationOutcome = "CANCELED"
)

// Status maps a provider verification outcome to the resulting transaction status.
func (o VerificationOutcome) Status() (TransactionStatus, bool) {
	switch o {
	case OutcomePaid:
		return StatusPaid, true
	case OutcomeFailed:
		return StatusFailed, true
	case OutcomeCanceled:
		return StatusCanceled, true
	}
	return "", false
}

type Transaction struct {
	ID            string
	Reference     string
	AmountFiat    float64
	Currency      string
	GatewayName   string
	Status        TransactionStatus
	TrackingToken string
	CallbackURL   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	FormedAt      *time.Time
	VerifiedAt    *time.Time
	RefundedAt    *time.Time
}
