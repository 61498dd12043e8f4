package domain

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardListLimit caps the completion list shown on the dashboard
const DashboardListLimit = 10

// Summary holds totals over a member snapshot
type Summary struct {
	TotalMembers   int             `json:"total_members"`
	TotalSalary    decimal.Decimal `json:"total_salary"`
	TotalCompleted int             `json:"total_completed"`
	TotalTarget    int             `json:"total_target"`
	CompletionRate float64         `json:"completion_rate"`
	TargetReached  int             `json:"target_reached"`
}

// Summarize computes totals over members
func Summarize(members []TeamMember) Summary {
	s := Summary{TotalMembers: len(members), TotalSalary: decimal.Zero}
	for _, m := range members {
		s.TotalSalary = s.TotalSalary.Add(m.Salary)
		s.TotalCompleted += m.Completed()
		s.TotalTarget += m.TargetVideos
		if m.Status() == TargetReached {
			s.TargetReached++
		}
	}
	s.CompletionRate = CompletionRate(s.TotalCompleted, s.TotalTarget)
	return s
}

// CategoryCount is the number of members tagged with an advertisement type
type CategoryCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CountByCategory counts members per advertisement type in first-seen order.
// A member tagged with N types counts in N buckets.
func CountByCategory(members []TeamMember) []CategoryCount {
	index := make(map[string]int)
	out := make([]CategoryCount, 0)
	for _, m := range members {
		for _, t := range m.AdvertisementTypes {
			i, ok := index[t]
			if !ok {
				i = len(out)
				index[t] = i
				out = append(out, CategoryCount{Type: t})
			}
			out[i].Count++
		}
	}
	return out
}

// CampaignEffectiveness sums completed videos per advertisement type
type CampaignEffectiveness struct {
	Type            string `json:"type"`
	Members         int    `json:"members"`
	CompletedVideos int    `json:"completed_videos"`
}

// AdCampaignEffectiveness sums completed videos and members per advertisement type in first-seen order
func AdCampaignEffectiveness(members []TeamMember) []CampaignEffectiveness {
	index := make(map[string]int)
	out := make([]CampaignEffectiveness, 0)
	for _, m := range members {
		completed := m.Completed()
		for _, t := range m.AdvertisementTypes {
			i, ok := index[t]
			if !ok {
				i = len(out)
				index[t] = i
				out = append(out, CampaignEffectiveness{Type: t})
			}
			out[i].Members++
			out[i].CompletedVideos += completed
		}
	}
	return out
}

// PlatformRollup holds per-platform progress totals
type PlatformRollup struct {
	Platform      Platform `json:"platform"`
	Members       int      `json:"members"`
	Completed     int      `json:"completed"`
	Target        int      `json:"target"`
	TargetReached int      `json:"target_reached"`
}

// RollupByPlatform groups members by platform in first-seen order
func RollupByPlatform(members []TeamMember) []PlatformRollup {
	index := make(map[Platform]int)
	out := make([]PlatformRollup, 0)
	for _, m := range members {
		i, ok := index[m.Platform]
		if !ok {
			i = len(out)
			index[m.Platform] = i
			out = append(out, PlatformRollup{Platform: m.Platform})
		}
		out[i].Members++
		out[i].Completed += m.Completed()
		out[i].Target += m.TargetVideos
		if m.Status() == TargetReached {
			out[i].TargetReached++
		}
	}
	return out
}

// ContractRollup holds per-contract-type totals
type ContractRollup struct {
	ContractType    ContractType    `json:"contract_type"`
	Members         int             `json:"members"`
	TotalSalary     decimal.Decimal `json:"total_salary"`
	CompletedVideos int             `json:"completed_videos"`
}

// RollupByContract groups members by contract type in first-seen order
func RollupByContract(members []TeamMember) []ContractRollup {
	index := make(map[ContractType]int)
	out := make([]ContractRollup, 0)
	for _, m := range members {
		i, ok := index[m.ContractType]
		if !ok {
			i = len(out)
			index[m.ContractType] = i
			out = append(out, ContractRollup{ContractType: m.ContractType, TotalSalary: decimal.Zero})
		}
		out[i].Members++
		out[i].TotalSalary = out[i].TotalSalary.Add(m.Salary)
		out[i].CompletedVideos += m.Completed()
	}
	return out
}

// MemberProgress is a member's progress as shown in lists and rankings
type MemberProgress struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Platform       Platform  `json:"platform"`
	Completed      int       `json:"completed"`
	Target         int       `json:"target"`
	CompletionRate float64   `json:"completion_rate"`
	Status         Status    `json:"status"`
}

// ProgressOf projects a member into its progress view
func ProgressOf(m TeamMember) MemberProgress {
	return MemberProgress{
		ID:             m.ID,
		Description:    m.Description,
		Platform:       m.Platform,
		Completed:      m.Completed(),
		Target:         m.TargetVideos,
		CompletionRate: m.CompletionRate(),
		Status:         m.Status(),
	}
}

// RankByCompletion orders members by completion rate, highest first. Ties keep snapshot order.
func RankByCompletion(members []TeamMember) []MemberProgress {
	out := make([]MemberProgress, len(members))
	for i, m := range members {
		out[i] = ProgressOf(m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletionRate > out[j].CompletionRate
	})
	return out
}

// CompletionList returns up to limit members in snapshot order
func CompletionList(members []TeamMember, limit int) []MemberProgress {
	if limit < 0 || limit > len(members) {
		limit = len(members)
	}
	out := make([]MemberProgress, limit)
	for i := 0; i < limit; i++ {
		out[i] = ProgressOf(members[i])
	}
	return out
}

// FilterMembers keeps members whose description or any advertisement type
// contains term, ignoring case. An empty term keeps everything.
func FilterMembers(members []TeamMember, term string) []TeamMember {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]TeamMember, len(members))
		copy(out, members)
		return out
	}

	out := make([]TeamMember, 0)
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Description), term) {
			out = append(out, m)
			continue
		}
		for _, t := range m.AdvertisementTypes {
			if strings.Contains(strings.ToLower(t), term) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// Dashboard is the aggregate view shown on the landing page
type Dashboard struct {
	Summary         Summary          `json:"summary"`
	Categories      []CategoryCount  `json:"categories"`
	Completion      []MemberProgress `json:"completion"`
	TotalDeliveries int              `json:"total_deliveries"`
	TotalPayments   int              `json:"total_payments"`
}

// BuildDashboard composes the dashboard from the current snapshots
func BuildDashboard(members []TeamMember, deliveries []Delivery, payments []PaymentConfirmation) Dashboard {
	return Dashboard{
		Summary:         Summarize(members),
		Categories:      CountByCategory(members),
		Completion:      CompletionList(members, DashboardListLimit),
		TotalDeliveries: len(deliveries),
		TotalPayments:   len(payments),
	}
}

// Report is the analytics view over the member snapshot
type Report struct {
	Summary       Summary                 `json:"summary"`
	Platforms     []PlatformRollup        `json:"platforms"`
	Contracts     []ContractRollup        `json:"contracts"`
	Effectiveness []CampaignEffectiveness `json:"effectiveness"`
	Ranking       []MemberProgress        `json:"ranking"`
	Trends        []TrendPoint            `json:"trends"`
}

// BuildReport composes the analytics view
func BuildReport(members []TeamMember, snapshots []ProgressSnapshot, months int) Report {
	return Report{
		Summary:       Summarize(members),
		Platforms:     RollupByPlatform(members),
		Contracts:     RollupByContract(members),
		Effectiveness: AdCampaignEffectiveness(members),
		Ranking:       RankByCompletion(members),
		Trends:        MonthlyTrends(snapshots, months),
	}
}
