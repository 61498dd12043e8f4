package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TeamMember is the stored form of an advertiser
type TeamMember struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CreatedAt          time.Time       `gorm:"autoCreateTime;index"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime"`
	UserID             string          `gorm:"not null;index"`
	Description        string          `gorm:"not null"`
	Phone              string          `gorm:"not null"`
	Salary             decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TargetVideos       int             `gorm:"not null"`
	ProgressChecks     BoolList        `gorm:"type:jsonb;not null"`
	AdvertisementTypes StringList      `gorm:"type:jsonb;not null"`
	Platform           string          `gorm:"not null"`
	ContractType       string          `gorm:"not null"`
	Notes              string
}

// Delivery is the stored form of a product shipment
type Delivery struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
	UserID         string          `gorm:"not null;index"`
	CelebID        *uuid.UUID      `gorm:"type:uuid;index"`
	CelebName      string          `gorm:"not null"`
	ProductName    string          `gorm:"not null"`
	Quantity       int             `gorm:"not null;default:1"`
	DateSent       time.Time       `gorm:"type:date;not null;index"`
	DeliveryStatus string          `gorm:"not null;default:'Pending'"`
	DeliveryPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Notes          string
}

// PaymentConfirmation is the stored form of a confirmed payment
type PaymentConfirmation struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
	UserID        string          `gorm:"not null;index"`
	CelebrityID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CelebrityName string          `gorm:"not null"`
	PhoneNumber   string
	JobCompleted  bool            `gorm:"not null;default:false"`
	Salary        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ConfirmedAt   time.Time       `gorm:"not null;index"`
}

// UserRole assigns a role to an authenticated user
type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	UserID    string    `gorm:"not null;uniqueIndex"`
	Role      string    `gorm:"not null;default:'user'"`
}

// ProgressSnapshot is a stored capture of the aggregate progress summary
type ProgressSnapshot struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CapturedAt     time.Time `gorm:"not null;index"`
	Members        int       `gorm:"not null"`
	TotalCompleted int       `gorm:"not null"`
	TotalTarget    int       `gorm:"not null"`
	CompletionRate float64   `gorm:"not null"`
	TargetReached  int       `gorm:"not null"`
}

// BeforeCreate assigns an id when none was provided
func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate assigns an id when none was provided
func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// BeforeCreate assigns an id and stamps the confirmation time
func (p *PaymentConfirmation) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ConfirmedAt.IsZero() {
		p.ConfirmedAt = time.Now().UTC()
	}
	return nil
}

// BeforeCreate assigns an id when none was provided
func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate assigns an id when none was provided
func (s *ProgressSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SetupModels configures GORM models and runs migrations
func SetupModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&TeamMember{},
		&Delivery{},
		&PaymentConfirmation{},
		&UserRole{},
		&ProgressSnapshot{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to run auto migrations")
	}

	return nil
}
