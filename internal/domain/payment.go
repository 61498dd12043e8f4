package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentConfirmation records that a celebrity was paid for a job.
// Name and phone are snapshots taken when the payment is confirmed.
type PaymentConfirmation struct {
	ID            uuid.UUID       `json:"id"`
	UserID        string          `json:"user_id"`
	CelebrityID   uuid.UUID       `json:"celebrity_id"`
	CelebrityName string          `json:"celebrity_name"`
	PhoneNumber   string          `json:"phone_number"`
	JobCompleted  bool            `json:"job_completed"`
	Salary        decimal.Decimal `json:"salary"`
	ConfirmedAt   time.Time       `json:"confirmed_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PaymentInput holds the fields accepted when confirming a payment
type PaymentInput struct {
	CelebrityID   uuid.UUID       `json:"celebrity_id"`
	CelebrityName string          `json:"celebrity_name"`
	PhoneNumber   string          `json:"phone_number"`
	JobCompleted  bool            `json:"job_completed"`
	Salary        decimal.Decimal `json:"salary"`
}

// PrefillFrom copies the member's name, phone and salary into empty fields
func (in PaymentInput) PrefillFrom(m TeamMember) PaymentInput {
	if strings.TrimSpace(in.CelebrityName) == "" {
		in.CelebrityName = m.Description
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		in.PhoneNumber = m.Phone
	}
	if in.Salary.IsZero() {
		in.Salary = m.Salary
	}
	return in
}

// Validate checks the input before it is sent to the store
func (in PaymentInput) Validate() error {
	verr := &ValidationError{}
	if in.CelebrityID == uuid.Nil {
		verr.Add("celebrity_id", "is required")
	}
	if strings.TrimSpace(in.CelebrityName) == "" {
		verr.Add("celebrity_name", "is required")
	}
	if !in.Salary.IsPositive() {
		verr.Add("salary", "must be greater than 0")
	}
	return verr.orNil()
}

// NewPaymentConfirmation builds a payment from validated input. ConfirmedAt is assigned by the store.
func NewPaymentConfirmation(userID string, in PaymentInput) (PaymentConfirmation, error) {
	if err := in.Validate(); err != nil {
		return PaymentConfirmation{}, err
	}

	return PaymentConfirmation{
		UserID:        userID,
		CelebrityID:   in.CelebrityID,
		CelebrityName: strings.TrimSpace(in.CelebrityName),
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		JobCompleted:  in.JobCompleted,
		Salary:        in.Salary,
	}, nil
}
