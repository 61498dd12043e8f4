package repositories

import (
	"github.com/google/uuid"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/models"
)

// Fields is a partial update keyed by column name
type Fields map[string]interface{}

// MemberUpdateFields returns the columns written by a member edit
func MemberUpdateFields(u domain.MemberUpdate) Fields {
	u = u.Normalized()
	return Fields{
		"description":         u.Description,
		"phone":               u.Phone,
		"salary":              u.Salary,
		"advertisement_types": models.StringList(u.AdvertisementTypes),
		"platform":            string(u.Platform),
		"contract_type":       string(u.ContractType),
		"notes":               u.Notes,
	}
}

// ProgressFields returns the columns written by a progress change
func ProgressFields(checks []bool) Fields {
	return Fields{"progress_checks": models.BoolList(checks)}
}

// DeliveryFields returns the columns written by a delivery edit
func DeliveryFields(d domain.Delivery) Fields {
	return Fields{
		"celeb_id":        d.CelebID,
		"celeb_name":      d.CelebName,
		"product_name":    d.ProductName,
		"quantity":        d.Quantity,
		"date_sent":       d.DateSent,
		"delivery_status": string(d.DeliveryStatus),
		"delivery_price":  d.DeliveryPrice,
		"notes":           d.Notes,
	}
}

func memberToRow(m domain.TeamMember) models.TeamMember {
	return models.TeamMember{
		ID:                 m.ID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		UserID:             m.UserID,
		Description:        m.Description,
		Phone:              m.Phone,
		Salary:             m.Salary,
		TargetVideos:       m.TargetVideos,
		ProgressChecks:     models.BoolList(domain.NormalizeProgress(m.ProgressChecks, m.TargetVideos)),
		AdvertisementTypes: models.StringList(m.AdvertisementTypes),
		Platform:           string(m.Platform),
		ContractType:       string(m.ContractType),
		Notes:              m.Notes,
	}
}

func memberFromRow(r models.TeamMember) domain.TeamMember {
	types := []string(r.AdvertisementTypes)
	if types == nil {
		types = []string{}
	}
	return domain.TeamMember{
		ID:                 r.ID,
		UserID:             r.UserID,
		Description:        r.Description,
		Phone:              r.Phone,
		Salary:             r.Salary,
		TargetVideos:       r.TargetVideos,
		ProgressChecks:     domain.NormalizeProgress(r.ProgressChecks, r.TargetVideos),
		AdvertisementTypes: types,
		Platform:           domain.Platform(r.Platform),
		ContractType:       domain.ContractType(r.ContractType),
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func deliveryToRow(d domain.Delivery) models.Delivery {
	return models.Delivery{
		ID:             d.ID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		UserID:         d.UserID,
		CelebID:        d.CelebID,
		CelebName:      d.CelebName,
		ProductName:    d.ProductName,
		Quantity:       d.Quantity,
		DateSent:       d.DateSent,
		DeliveryStatus: string(d.DeliveryStatus),
		DeliveryPrice:  d.DeliveryPrice,
		Notes:          d.Notes,
	}
}

func deliveryFromRow(r models.Delivery) domain.Delivery {
	var celebID *uuid.UUID
	if r.CelebID != nil {
		id := *r.CelebID
		celebID = &id
	}
	return domain.Delivery{
		ID:             r.ID,
		UserID:         r.UserID,
		CelebID:        celebID,
		CelebName:      r.CelebName,
		ProductName:    r.ProductName,
		Quantity:       r.Quantity,
		DateSent:       r.DateSent.UTC(),
		DeliveryStatus: domain.DeliveryStatus(r.DeliveryStatus),
		DeliveryPrice:  r.DeliveryPrice,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func paymentToRow(p domain.PaymentConfirmation) models.PaymentConfirmation {
	return models.PaymentConfirmation{
		ID:            p.ID,
		UserID:        p.UserID,
		CelebrityID:   p.CelebrityID,
		CelebrityName: p.CelebrityName,
		PhoneNumber:   p.PhoneNumber,
		JobCompleted:  p.JobCompleted,
		Salary:        p.Salary,
	}
}

func paymentFromRow(r models.PaymentConfirmation) domain.PaymentConfirmation {
	return domain.PaymentConfirmation{
		ID:            r.ID,
		UserID:        r.UserID,
		CelebrityID:   r.CelebrityID,
		CelebrityName: r.CelebrityName,
		PhoneNumber:   r.PhoneNumber,
		JobCompleted:  r.JobCompleted,
		Salary:        r.Salary,
		ConfirmedAt:   r.ConfirmedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func snapshotToRow(s domain.ProgressSnapshot) models.ProgressSnapshot {
	return models.ProgressSnapshot{
		ID:             s.ID,
		CapturedAt:     s.CapturedAt,
		Members:        s.Members,
		TotalCompleted: s.TotalCompleted,
		TotalTarget:    s.TotalTarget,
		CompletionRate: s.CompletionRate,
		TargetReached:  s.TargetReached,
	}
}

func snapshotFromRow(r models.ProgressSnapshot) domain.ProgressSnapshot {
	return domain.ProgressSnapshot{
		ID:             r.ID,
		CapturedAt:     r.CapturedAt.UTC(),
		Members:        r.Members,
		TotalCompleted: r.TotalCompleted,
		TotalTarget:    r.TotalTarget,
		CompletionRate: r.CompletionRate,
		TargetReached:  r.TargetReached,
	}
}
