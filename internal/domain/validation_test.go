package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validRegistration() Registration {
	return Registration{
		Description:        "Jane Doe",
		Phone:              "+254700000000",
		Salary:             decimal.NewFromInt(5000),
		TargetVideos:       4,
		AdvertisementTypes: []string{"Milk Ad", "Cream Ad", "Milk Ad"},
		Platform:           PlatformTikTok,
		ContractType:       ContractFreelance,
	}
}

func TestNewTeamMemberInitializesProgress(t *testing.T) {
	m, err := NewTeamMember("user-1", validRegistration())
	require.NoError(t, err)

	require.Equal(t, "user-1", m.UserID)
	require.Equal(t, []bool{false, false, false, false}, m.ProgressChecks)
	require.Equal(t, []string{"Milk Ad", "Cream Ad"}, m.AdvertisementTypes)
	require.Equal(t, NotStarted, m.Status())
}

func TestRegistrationValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Registration)
		field  string
	}{
		{"missing description", func(r *Registration) { r.Description = "  " }, "description"},
		{"missing phone", func(r *Registration) { r.Phone = "" }, "phone"},
		{"negative salary", func(r *Registration) { r.Salary = decimal.NewFromInt(-1) }, "salary"},
		{"zero target", func(r *Registration) { r.TargetVideos = 0 }, "target_videos"},
		{"target above max", func(r *Registration) { r.TargetVideos = MaxTargetVideos + 1 }, "target_videos"},
		{"no ad types", func(r *Registration) { r.AdvertisementTypes = nil }, "advertisement_types"},
		{"unknown ad type", func(r *Registration) { r.AdvertisementTypes = []string{"Soap Ad"} }, "advertisement_types[0]"},
		{"unknown platform", func(r *Registration) { r.Platform = "MySpace" }, "platform"},
		{"unknown contract", func(r *Registration) { r.ContractType = "Gig" }, "contract_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)

			_, err := NewTeamMember("user-1", r)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestApplyKeepsTargetAndProgress(t *testing.T) {
	m, err := NewTeamMember("user-1", validRegistration())
	require.NoError(t, err)
	m.ProgressChecks[0] = true

	update := MemberUpdate{
		Description:        " Jane D. ",
		Phone:              "0711",
		Salary:             decimal.NewFromInt(7000),
		AdvertisementTypes: []string{"Perfume Ad"},
		Platform:           PlatformYouTube,
		ContractType:       ContractPerCampaign,
		Notes:              "renewed",
	}
	require.NoError(t, update.Validate())

	next := m.Apply(update)
	require.Equal(t, "Jane D.", next.Description)
	require.Equal(t, 4, next.TargetVideos)
	require.Equal(t, 1, next.Completed())
	require.Equal(t, PlatformYouTube, next.Platform)
}

func TestNewDeliveryDefaultsStatus(t *testing.T) {
	d, err := NewDelivery("admin-1", DeliveryInput{
		CelebName:   "Jane Doe",
		ProductName: "Body lotion",
		Quantity:    2,
		DateSent:    "2024-03-05",
	})
	require.NoError(t, err)
	require.Equal(t, DeliveryPending, d.DeliveryStatus)
	require.True(t, d.DeliveryPrice.IsZero())
	require.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d.DateSent)
	require.Equal(t, "2024-03-05", d.DateSentString())
}

func TestDeliveryValidation(t *testing.T) {
	_, err := NewDelivery("admin-1", DeliveryInput{
		ProductName:    "Lotion",
		Quantity:       0,
		DateSent:       "05/03/2024",
		DeliveryStatus: "Lost",
		DeliveryPrice:  decimal.NewFromInt(-5),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"celeb_name", "quantity", "date_sent", "delivery_status", "delivery_price"} {
		require.Contains(t, verr.Fields, field)
	}
}

func TestPaymentValidation(t *testing.T) {
	_, err := NewPaymentConfirmation("admin-1", PaymentInput{Salary: decimal.Zero})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "celebrity_id")
	require.Contains(t, verr.Fields, "celebrity_name")
	require.Contains(t, verr.Fields, "salary")
}

func TestPaymentPrefillFromMember(t *testing.T) {
	member := TeamMember{ID: uuid.New(), Description: "Jane", Phone: "0700", Salary: decimal.NewFromInt(300)}

	in := PaymentInput{CelebrityID: member.ID}.PrefillFrom(member)
	require.Equal(t, "Jane", in.CelebrityName)
	require.Equal(t, "0700", in.PhoneNumber)
	require.True(t, in.Salary.Equal(decimal.NewFromInt(300)))

	p, err := NewPaymentConfirmation("admin-1", in)
	require.NoError(t, err)
	require.True(t, p.ConfirmedAt.IsZero())
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	verr := NewValidationError("phone", "is required")
	verr.Add("description", "is required")
	verr.Add("phone", "ignored")

	require.Equal(t, "validation failed: description: is required; phone: is required", verr.Error())
}

func TestDeliveryJSONUsesCalendarDate(t *testing.T) {
	d, err := NewDelivery("admin-1", DeliveryInput{CelebName: "Jane", ProductName: "Lotion", Quantity: 1, DateSent: "2024-07-09"})
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Contains(t, string(b), `"date_sent":"2024-07-09"`)

	var back Delivery
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, d.DateSent, back.DateSent)
	require.Equal(t, "Lotion", back.ProductName)
}
