package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// DeliveryStatus tracks a product shipment. Any transition between values is allowed.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "Pending"
	DeliverySent      DeliveryStatus = "Sent"
	DeliveryDelivered DeliveryStatus = "Delivered"
	DeliveryCancelled DeliveryStatus = "Cancelled"
)

// DeliveryStatuses lists the statuses in display order
var DeliveryStatuses = []DeliveryStatus{DeliveryPending, DeliverySent, DeliveryDelivered, DeliveryCancelled}

// Valid reports whether s is a known status
func (s DeliveryStatus) Valid() bool {
	for _, known := range DeliveryStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func deliveryStatusNames() []string {
	names := make([]string, len(DeliveryStatuses))
	for i, s := range DeliveryStatuses {
		names[i] = string(s)
	}
	return names
}

// Delivery is a physical product shipment to a celebrity.
// CelebName is captured when the delivery is written and is never resolved live.
type Delivery struct {
	ID             uuid.UUID       `json:"id"`
	UserID         string          `json:"user_id"`
	CelebID        *uuid.UUID      `json:"celeb_id,omitempty"`
	CelebName      string          `json:"celeb_name"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	DateSent       time.Time       `json:"-"`
	DeliveryStatus DeliveryStatus  `json:"delivery_status"`
	DeliveryPrice  decimal.Decimal `json:"delivery_price"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DateSentString renders the shipment date as YYYY-MM-DD
func (d Delivery) DateSentString() string {
	if d.DateSent.IsZero() {
		return ""
	}
	return d.DateSent.Format(DateLayout)
}

// MarshalJSON writes date_sent as a calendar date
func (d Delivery) MarshalJSON() ([]byte, error) {
	type alias Delivery
	return json.Marshal(struct {
		alias
		DateSent string `json:"date_sent"`
	}{alias: alias(d), DateSent: d.DateSentString()})
}

// UnmarshalJSON reads date_sent as a calendar date
func (d *Delivery) UnmarshalJSON(b []byte) error {
	type alias Delivery
	aux := struct {
		*alias
		DateSent string `json:"date_sent"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	d.DateSent = time.Time{}
	if aux.DateSent != "" {
		parsed, err := time.Parse(DateLayout, aux.DateSent)
		if err != nil {
			return err
		}
		d.DateSent = parsed
	}
	return nil
}

// DeliveryInput holds the fields accepted when creating or editing a delivery
type DeliveryInput struct {
	CelebID        *uuid.UUID      `json:"celeb_id"`
	CelebName      string          `json:"celeb_name" validate:"required"`
	ProductName    string          `json:"product_name" validate:"required"`
	Quantity       int             `json:"quantity" validate:"min=1"`
	DateSent       string          `json:"date_sent" validate:"required"`
	DeliveryStatus DeliveryStatus  `json:"delivery_status" validate:"omitempty,delivery_status"`
	DeliveryPrice  decimal.Decimal `json:"delivery_price"`
	Notes          string          `json:"notes"`
}

// Validate checks the input and returns the parsed shipment date
func (in DeliveryInput) Validate() (time.Time, error) {
	in.CelebName = strings.TrimSpace(in.CelebName)
	in.ProductName = strings.TrimSpace(in.ProductName)

	verr := validateStruct(in)
	if in.DeliveryPrice.IsNegative() {
		verr.Add("delivery_price", "must not be negative")
	}

	var date time.Time
	if in.DateSent != "" {
		parsed, err := time.Parse(DateLayout, in.DateSent)
		if err != nil {
			verr.Add("date_sent", "must be a date formatted as YYYY-MM-DD")
		}
		date = parsed
	}

	if err := verr.orNil(); err != nil {
		return time.Time{}, err
	}
	return date, nil
}

// NewDelivery builds a delivery from validated input, defaulting the status to Pending
func NewDelivery(userID string, in DeliveryInput) (Delivery, error) {
	date, err := in.Validate()
	if err != nil {
		return Delivery{}, err
	}

	return Delivery{
		UserID: userID,
	}.WithEdit(in, date), nil
}

// WithEdit returns a copy of d with every editable field replaced
func (d Delivery) WithEdit(in DeliveryInput, date time.Time) Delivery {
	status := in.DeliveryStatus
	if status == "" {
		status = DeliveryPending
	}

	d.CelebID = in.CelebID
	d.CelebName = strings.TrimSpace(in.CelebName)
	d.ProductName = strings.TrimSpace(in.ProductName)
	d.Quantity = in.Quantity
	d.DateSent = date
	d.DeliveryStatus = status
	d.DeliveryPrice = in.DeliveryPrice
	d.Notes = in.Notes
	return d
}
