package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/messaging"
	"example.com/backstage/services/campaign/internal/repositories"
	"example.com/backstage/services/campaign/internal/snapshot"
)

// SearchLimit caps the number of hits requested from the search index
const SearchLimit = 100

// errUnchanged aborts a mutation that would not change anything
var errUnchanged = errors.New("no change")

// TeamService manages advertisers and their video progress
type TeamService struct {
	base
	repo     TeamMemberStore
	searcher MemberSearcher
	members  *snapshot.Collection[domain.TeamMember]
}

// NewTeamService creates a team service. searcher may be nil.
func NewTeamService(repo TeamMemberStore, searcher MemberSearcher, opts Options) *TeamService {
	b := newBase(opts)
	return &TeamService{
		base:     b,
		repo:     repo,
		searcher: searcher,
		members:  collection(b, "team_members", repo.ListAll),
	}
}

// All returns the member snapshot, newest first
func (s *TeamService) All(ctx context.Context) ([]domain.TeamMember, error) {
	return s.members.Snapshot(ctx)
}

// List returns the members matching term, or all of them when term is empty
func (s *TeamService) List(ctx context.Context, term string) ([]domain.TeamMember, error) {
	members, err := s.members.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterMembers(members, term), nil
}

// Search queries the search index, falling back to the in-memory filter when
// the index is not configured or fails
func (s *TeamService) Search(ctx context.Context, term string) ([]domain.TeamMember, error) {
	defer s.segment(ctx, "TeamService.Search")()

	members, err := s.members.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if s.searcher == nil || term == "" {
		return domain.FilterMembers(members, term), nil
	}

	ids, err := s.searcher.SearchMembers(ctx, term, SearchLimit)
	if err != nil {
		log.Warn().Err(err).Str("term", term).Msg("Search index unavailable, filtering in memory")
		return domain.FilterMembers(members, term), nil
	}

	byID := make(map[uuid.UUID]domain.TeamMember, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	out := make([]domain.TeamMember, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// Get returns one member from the snapshot
func (s *TeamService) Get(ctx context.Context, id uuid.UUID) (domain.TeamMember, error) {
	members, err := s.members.Snapshot(ctx)
	if err != nil {
		return domain.TeamMember{}, err
	}
	for _, m := range members {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.TeamMember{}, repositories.ErrNotFound
}

// Register validates and stores a new member with all progress unchecked
func (s *TeamService) Register(ctx context.Context, actor string, reg domain.Registration) (domain.TeamMember, error) {
	defer s.segment(ctx, "TeamService.Register")()

	member, err := domain.NewTeamMember(actor, reg)
	if err != nil {
		return domain.TeamMember{}, err
	}

	err = s.members.Mutate(ctx, func(ctx context.Context) error {
		ctx, cancel := s.storeCtx(ctx)
		defer cancel()
		return s.repo.Create(ctx, &member)
	})
	s.record(ctx, "team.register", err)
	if err != nil {
		return domain.TeamMember{}, err
	}

	log.Info().Str("member_id", member.ID.String()).Str("actor", actor).Msg("Member registered")
	s.publish(ctx, messaging.MemberRegistered, member.ID, actor, member)
	return member, nil
}

// Update replaces the editable fields of a member. Target and progress are kept.
func (s *TeamService) Update(ctx context.Context, actor string, id uuid.UUID, upd domain.MemberUpdate) (domain.TeamMember, error) {
	defer s.segment(ctx, "TeamService.Update")()

	if err := upd.Validate(); err != nil {
		return domain.TeamMember{}, err
	}

	var updated domain.TeamMember
	err := s.members.Mutate(ctx, func(ctx context.Context) error {
		ctx, cancel := s.storeCtx(ctx)
		defer cancel()

		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.Update(ctx, id, repositories.MemberUpdateFields(upd)); err != nil {
			return err
		}
		updated = current.Apply(upd)
		return nil
	})
	s.record(ctx, "team.update", err)
	if err != nil {
		return domain.TeamMember{}, err
	}

	s.publish(ctx, messaging.MemberUpdated, id, actor, updated)
	return updated, nil
}

// Delete removes a member
func (s *TeamService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	defer s.segment(ctx, "TeamService.Delete")()

	err := s.members.Mutate(ctx, func(ctx context.Context) error {
		ctx, cancel := s.storeCtx(ctx)
		defer cancel()
		return s.repo.Delete(ctx, id)
	})
	s.record(ctx, "team.delete", err)
	if err != nil {
		return err
	}

	log.Info().Str("member_id", id.String()).Str("actor", actor).Msg("Member deleted")
	s.publish(ctx, messaging.MemberDeleted, id, actor, nil)
	return nil
}

// ToggleProgress flips one video of a member. An index outside the target
// range changes nothing and returns the member as stored.
func (s *TeamService) ToggleProgress(ctx context.Context, actor string, id uuid.UUID, index int) (domain.TeamMember, error) {
	defer s.segment(ctx, "TeamService.ToggleProgress")()

	return s.changeProgress(ctx, actor, id, messaging.MemberProgressUpdated, func(m domain.TeamMember) ([]bool, error) {
		next, changed := m.ToggleProgress(index)
		if !changed {
			log.Debug().Str("member_id", id.String()).Int("index", index).Msg("Ignoring out of range toggle")
			return nil, errUnchanged
		}
		return next.ProgressChecks, nil
	})
}

// SetProgress replaces the whole progress array of a member
func (s *TeamService) SetProgress(ctx context.Context, actor string, id uuid.UUID, checks []bool) (domain.TeamMember, error) {
	defer s.segment(ctx, "TeamService.SetProgress")()

	return s.changeProgress(ctx, actor, id, messaging.MemberProgressUpdated, func(m domain.TeamMember) ([]bool, error) {
		return domain.SetProgress(m.TargetVideos, checks)
	})
}

// ResetProgress unchecks every video of a member
func (s *TeamService) ResetProgress(ctx context.Context, actor string, id uuid.UUID) (domain.TeamMember, error) {
	defer s.segment(ctx, "TeamService.ResetProgress")()

	return s.changeProgress(ctx, actor, id, messaging.MemberProgressReset, func(m domain.TeamMember) ([]bool, error) {
		return m.Reset().ProgressChecks, nil
	})
}

// changeProgress reads the stored member, computes its next progress array and
// writes it back, all under the collection's mutation lock
func (s *TeamService) changeProgress(ctx context.Context, actor string, id uuid.UUID, eventType string, next func(domain.TeamMember) ([]bool, error)) (domain.TeamMember, error) {
	var member domain.TeamMember
	err := s.members.Mutate(ctx, func(ctx context.Context) error {
		ctx, cancel := s.storeCtx(ctx)
		defer cancel()

		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		member = current

		checks, err := next(current)
		if err != nil {
			return err
		}
		if err := s.repo.Update(ctx, id, repositories.ProgressFields(checks)); err != nil {
			return err
		}
		member.ProgressChecks = checks
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return member, nil
	}
	s.record(ctx, "team.progress", err)
	if err != nil {
		return domain.TeamMember{}, err
	}

	s.publish(ctx, eventType, id, actor, member)
	return member, nil
}
