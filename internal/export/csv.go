package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"example.com/backstage/services/campaign/internal/domain"
)

// Headers of each export
var (
	MemberHeader   = []string{"No.", "Description", "Phone", "Salary", "Contract Type", "Target Videos", "Completed Videos", "Status", "Ad Types", "Platform", "Notes"}
	DeliveryHeader = []string{"Date Sent", "Celebrity", "Product", "Quantity", "Status", "Delivery Price", "Notes"}
	PaymentHeader  = []string{"Confirmed At", "Celebrity", "Phone", "Job Completed", "Salary"}
)

const timestampLayout = "2006-01-02 15:04:05"

// WriteMembers writes one row per member in the given order
func WriteMembers(w io.Writer, members []domain.TeamMember) error {
	rows := make([][]string, len(members))
	for i, m := range members {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			m.Description,
			m.Phone,
			m.Salary.StringFixed(2),
			string(m.ContractType),
			strconv.Itoa(m.TargetVideos),
			strconv.Itoa(m.Completed()),
			m.Status().String(),
			strings.Join(m.AdvertisementTypes, "; "),
			string(m.Platform),
			m.Notes,
		}
	}
	return write(w, MemberHeader, rows)
}

// WriteDeliveries writes one row per delivery in the given order
func WriteDeliveries(w io.Writer, deliveries []domain.Delivery) error {
	rows := make([][]string, len(deliveries))
	for i, d := range deliveries {
		rows[i] = []string{
			d.DateSentString(),
			d.CelebName,
			d.ProductName,
			strconv.Itoa(d.Quantity),
			string(d.DeliveryStatus),
			d.DeliveryPrice.StringFixed(2),
			d.Notes,
		}
	}
	return write(w, DeliveryHeader, rows)
}

// WritePayments writes one row per payment in the given order
func WritePayments(w io.Writer, payments []domain.PaymentConfirmation) error {
	rows := make([][]string, len(payments))
	for i, p := range payments {
		rows[i] = []string{
			formatTime(p.ConfirmedAt),
			p.CelebrityName,
			p.PhoneNumber,
			yesNo(p.JobCompleted),
			p.Salary.StringFixed(2),
		}
	}
	return write(w, PaymentHeader, rows)
}

func write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}
	if err := cw.WriteAll(rows); err != nil {
		return errors.Wrap(err, "failed to write csv rows")
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
