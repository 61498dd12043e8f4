package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxTargetVideos caps the quota accepted at registration
const MaxTargetVideos = 20

// Platform is the channel an advertiser publishes on
type Platform string

// Supported platforms
const (
	PlatformFacebook  Platform = "Facebook"
	PlatformInstagram Platform = "Instagram"
	PlatformTikTok    Platform = "TikTok"
	PlatformYouTube   Platform = "YouTube"
)

// Platforms lists the supported platforms in display order
var Platforms = []Platform{PlatformFacebook, PlatformInstagram, PlatformTikTok, PlatformYouTube}

// Valid reports whether p is a supported platform
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

func platformNames() []string {
	names := make([]string, len(Platforms))
	for i, p := range Platforms {
		names[i] = string(p)
	}
	return names
}

// ContractType is the engagement model of an advertiser
type ContractType string

// Supported contract types
const (
	ContractFullTime    ContractType = "Full-Time"
	ContractPartTime    ContractType = "Part-Time"
	ContractFreelance   ContractType = "Freelance"
	ContractPerCampaign ContractType = "Per Campaign"
)

// ContractTypes lists the supported contract types in display order
var ContractTypes = []ContractType{ContractFullTime, ContractPartTime, ContractFreelance, ContractPerCampaign}

// Valid reports whether c is a supported contract type
func (c ContractType) Valid() bool {
	for _, known := range ContractTypes {
		if c == known {
			return true
		}
	}
	return false
}

func contractTypeNames() []string {
	names := make([]string, len(ContractTypes))
	for i, c := range ContractTypes {
		names[i] = string(c)
	}
	return names
}

// AdvertisementTypes lists the campaign categories an advertiser can be tagged with
var AdvertisementTypes = []string{
	"Milk Ad",
	"Cream Ad",
	"Makeup Ad",
	"Skincare Ad",
	"Perfume Ad",
	"Other",
}

// IsAdvertisementType reports whether t is a known campaign category
func IsAdvertisementType(t string) bool {
	for _, known := range AdvertisementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// TeamMember is an advertiser under contract with a video quota.
// TargetVideos is fixed at registration and len(ProgressChecks) always equals it.
type TeamMember struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             string          `json:"user_id"`
	Description        string          `json:"description"`
	Phone              string          `json:"phone"`
	Salary             decimal.Decimal `json:"salary"`
	TargetVideos       int             `json:"target_videos"`
	ProgressChecks     []bool          `json:"progress_checks"`
	AdvertisementTypes []string        `json:"advertisement_types"`
	Platform           Platform        `json:"platform"`
	ContractType       ContractType    `json:"contract_type"`
	Notes              string          `json:"notes"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Registration holds the fields accepted when registering an advertiser
type Registration struct {
	Description        string          `json:"description" validate:"required"`
	Phone              string          `json:"phone" validate:"required"`
	Salary             decimal.Decimal `json:"salary"`
	TargetVideos       int             `json:"target_videos" validate:"min=1,max=20"`
	AdvertisementTypes []string        `json:"advertisement_types" validate:"min=1,dive,ad_type"`
	Platform           Platform        `json:"platform" validate:"platform"`
	ContractType       ContractType    `json:"contract_type" validate:"contract_type"`
	Notes              string          `json:"notes"`
}

// Validate checks a registration before it is sent to the store
func (r Registration) Validate() error {
	r.Description = strings.TrimSpace(r.Description)
	r.Phone = strings.TrimSpace(r.Phone)

	verr := validateStruct(r)
	if r.Salary.IsNegative() {
		verr.Add("salary", "must not be negative")
	}
	return verr.orNil()
}

// NewTeamMember builds a member from a validated registration with all progress unchecked
func NewTeamMember(userID string, r Registration) (TeamMember, error) {
	if err := r.Validate(); err != nil {
		return TeamMember{}, err
	}

	return TeamMember{
		UserID:             userID,
		Description:        strings.TrimSpace(r.Description),
		Phone:              strings.TrimSpace(r.Phone),
		Salary:             r.Salary,
		TargetVideos:       r.TargetVideos,
		ProgressChecks:     ResetProgress(r.TargetVideos),
		AdvertisementTypes: uniqueTypes(r.AdvertisementTypes),
		Platform:           r.Platform,
		ContractType:       r.ContractType,
		Notes:              r.Notes,
	}, nil
}

// MemberUpdate holds the editable fields of a member. Target and progress are not editable here.
type MemberUpdate struct {
	Description        string          `json:"description" validate:"required"`
	Phone              string          `json:"phone" validate:"required"`
	Salary             decimal.Decimal `json:"salary"`
	AdvertisementTypes []string        `json:"advertisement_types" validate:"min=1,dive,ad_type"`
	Platform           Platform        `json:"platform" validate:"platform"`
	ContractType       ContractType    `json:"contract_type" validate:"contract_type"`
	Notes              string          `json:"notes"`
}

// Validate checks an update before it is sent to the store
func (u MemberUpdate) Validate() error {
	u.Description = strings.TrimSpace(u.Description)
	u.Phone = strings.TrimSpace(u.Phone)

	verr := validateStruct(u)
	if u.Salary.IsNegative() {
		verr.Add("salary", "must not be negative")
	}
	return verr.orNil()
}

// Normalized returns the update with trimmed text and de-duplicated tags
func (u MemberUpdate) Normalized() MemberUpdate {
	u.Description = strings.TrimSpace(u.Description)
	u.Phone = strings.TrimSpace(u.Phone)
	u.AdvertisementTypes = uniqueTypes(u.AdvertisementTypes)
	return u
}

// Apply returns a copy of m with the update applied
func (m TeamMember) Apply(u MemberUpdate) TeamMember {
	u = u.Normalized()
	m.Description = u.Description
	m.Phone = u.Phone
	m.Salary = u.Salary
	m.AdvertisementTypes = u.AdvertisementTypes
	m.Platform = u.Platform
	m.ContractType = u.ContractType
	m.Notes = u.Notes
	return m
}

// uniqueTypes drops duplicate tags, keeping first occurrence order
func uniqueTypes(types []string) []string {
	seen := make(map[string]struct{}, len(types))
	out := make([]string, 0, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
