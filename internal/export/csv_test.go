package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"example.com/backstage/services/campaign/internal/domain"
)

func readAll(t *testing.T, b *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(b).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteMembersQuotesSpecialCharacters(t *testing.T) {
	members := []domain.TeamMember{
		{
			Description:        `Jane "JD" Doe, Nairobi`,
			Phone:              "0700",
			Salary:             decimal.RequireFromString("1500.5"),
			TargetVideos:       3,
			ProgressChecks:     []bool{true, false, false},
			AdvertisementTypes: []string{"Milk Ad", "Cream Ad"},
			Platform:           domain.PlatformTikTok,
			ContractType:       domain.ContractFreelance,
			Notes:              "line one\nline two",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMembers(&buf, members))

	records := readAll(t, &buf)
	require.Len(t, records, 2)
	require.Equal(t, MemberHeader, records[0])
	require.Equal(t, []string{
		"1", `Jane "JD" Doe, Nairobi`, "0700", "1500.50", "Freelance", "3", "1",
		"In Progress", "Milk Ad; Cream Ad", "TikTok", "line one\nline two",
	}, records[1])
}

func TestWriteMembersEmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMembers(&buf, nil))
	require.Len(t, readAll(t, &buf), 1)
}

func TestWriteDeliveries(t *testing.T) {
	d, err := domain.NewDelivery("admin-1", domain.DeliveryInput{
		CelebName:     "Jane",
		ProductName:   "Lotion, 200ml",
		Quantity:      2,
		DateSent:      "2024-04-02",
		DeliveryPrice: decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDeliveries(&buf, []domain.Delivery{d}))

	records := readAll(t, &buf)
	require.Equal(t, []string{"2024-04-02", "Jane", "Lotion, 200ml", "2", "Pending", "12.00", ""}, records[1])
}

func TestWritePayments(t *testing.T) {
	p := domain.PaymentConfirmation{
		CelebrityName: "Jane",
		PhoneNumber:   "0700",
		JobCompleted:  true,
		Salary:        decimal.NewFromInt(300),
		ConfirmedAt:   time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, WritePayments(&buf, []domain.PaymentConfirmation{p}))

	records := readAll(t, &buf)
	require.Equal(t, PaymentHeader, records[0])
	require.Equal(t, []string{"2024-05-06 07:08:09", "Jane", "0700", "Yes", "300.00"}, records[1])
}
