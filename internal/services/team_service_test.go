package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/messaging"
	"example.com/backstage/services/campaign/internal/repositories"
)

func registration() domain.Registration {
	return domain.Registration{
		Description:        "Jane",
		Phone:              "0700",
		Salary:             decimal.NewFromInt(500),
		TargetVideos:       3,
		AdvertisementTypes: []string{"Makeup Ad"},
		Platform:           domain.PlatformInstagram,
		ContractType:       domain.ContractPerCampaign,
	}
}

func storedMember(checks ...bool) domain.TeamMember {
	return domain.TeamMember{
		ID:                 uuid.New(),
		Description:        "Jane",
		TargetVideos:       len(checks),
		ProgressChecks:     checks,
		AdvertisementTypes: []string{"Makeup Ad"},
		Platform:           domain.PlatformInstagram,
	}
}

func TestRegisterStoresMemberAndRefreshes(t *testing.T) {
	repo := new(MockTeamMemberStore)
	pub := new(MockPublisher)
	svc := NewTeamService(repo, nil, testOptions(pub))
	ctx := context.Background()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TeamMember")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.TeamMember).ID = uuid.New()
		}).Return(nil).Once()
	repo.On("ListAll", mock.Anything).Return([]domain.TeamMember{storedMember(false, false, false)}, nil).Once()
	pub.On("Publish", mock.Anything, eventOfType(messaging.MemberRegistered)).Return(nil).Once()

	member, err := svc.Register(ctx, "admin-1", registration())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, member.ID)
	require.Equal(t, "admin-1", member.UserID)
	require.Equal(t, []bool{false, false, false}, member.ProgressChecks)

	// served from the refreshed snapshot
	members, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestRegisterRejectsInvalidInputBeforeStore(t *testing.T) {
	repo := new(MockTeamMemberStore)
	svc := NewTeamService(repo, nil, testOptions(nil))

	reg := registration()
	reg.TargetVideos = 0
	_, err := svc.Register(context.Background(), "admin-1", reg)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFailedStoreCallLeavesSnapshotUnchanged(t *testing.T) {
	repo := new(MockTeamMemberStore)
	pub := new(MockPublisher)
	svc := NewTeamService(repo, nil, testOptions(pub))
	ctx := context.Background()

	existing := storedMember(true, false)
	repo.On("ListAll", mock.Anything).Return([]domain.TeamMember{existing}, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	before, err := svc.All(ctx)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "admin-1", registration())
	require.Error(t, err)

	after, err := svc.All(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)

	repo.AssertNumberOfCalls(t, "ListAll", 1)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestToggleProgressPersistsFlippedArray(t *testing.T) {
	repo := new(MockTeamMemberStore)
	pub := new(MockPublisher)
	svc := NewTeamService(repo, nil, testOptions(pub))

	member := storedMember(false, false, false)
	repo.On("GetByID", mock.Anything, member.ID).Return(member, nil).Once()
	repo.On("Update", mock.Anything, member.ID, repositories.ProgressFields([]bool{false, true, false})).Return(nil).Once()
	repo.On("ListAll", mock.Anything).Return([]domain.TeamMember{member}, nil).Once()
	pub.On("Publish", mock.Anything, eventOfType(messaging.MemberProgressUpdated)).Return(nil).Once()

	updated, err := svc.ToggleProgress(context.Background(), "user-1", member.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 1, updated.Completed())
	require.Equal(t, domain.InProgress, updated.Status())

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestToggleProgressOutOfRangeIsNoop(t *testing.T) {
	repo := new(MockTeamMemberStore)
	pub := new(MockPublisher)
	svc := NewTeamService(repo, nil, testOptions(pub))

	member := storedMember(true, false)
	repo.On("GetByID", mock.Anything, member.ID).Return(member, nil).Twice()

	for _, i := range []int{-1, 2} {
		got, err := svc.ToggleProgress(context.Background(), "user-1", member.ID, i)
		require.NoError(t, err)
		require.Equal(t, member.ProgressChecks, got.ProgressChecks)
	}

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ListAll", mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestToggleProgressUnknownMember(t *testing.T) {
	repo := new(MockTeamMemberStore)
	svc := NewTeamService(repo, nil, testOptions(nil))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(domain.TeamMember{}, repositories.ErrNotFound).Once()

	_, err := svc.ToggleProgress(context.Background(), "user-1", id, 0)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestSetProgressRejectsLengthMismatch(t *testing.T) {
	repo := new(MockTeamMemberStore)
	svc := NewTeamService(repo, nil, testOptions(nil))

	member := storedMember(false, false, false)
	repo.On("GetByID", mock.Anything, member.ID).Return(member, nil).Once()

	_, err := svc.SetProgress(context.Background(), "user-1", member.ID, []bool{true})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetProgressClearsEveryCheck(t *testing.T) {
	repo := new(MockTeamMemberStore)
	pub := new(MockPublisher)
	svc := NewTeamService(repo, nil, testOptions(pub))

	member := storedMember(true, true, true)
	repo.On("GetByID", mock.Anything, member.ID).Return(member, nil).Once()
	repo.On("Update", mock.Anything, member.ID, repositories.ProgressFields([]bool{false, false, false})).Return(nil).Once()
	repo.On("ListAll", mock.Anything).Return([]domain.TeamMember{}, nil).Once()
	pub.On("Publish", mock.Anything, eventOfType(messaging.MemberProgressReset)).Return(nil).Once()

	reset, err := svc.ResetProgress(context.Background(), "user-1", member.ID)
	require.NoError(t, err)
	require.Equal(t, domain.NotStarted, reset.Status())
	repo.AssertExpectations(t)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	repo := new(MockTeamMemberStore)
	pub := new(MockPublisher)
	svc := NewTeamService(repo, nil, testOptions(pub))

	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(nil).Once()
	repo.On("ListAll", mock.Anything).Return([]domain.TeamMember{}, nil).Once()
	pub.On("Publish", mock.Anything, eventOfType(messaging.MemberDeleted)).Return(errors.New("bus down")).Once()

	require.NoError(t, svc.Delete(context.Background(), "admin-1", id))
	pub.AssertExpectations(t)
}

func TestUpdateKeepsTargetAndProgress(t *testing.T) {
	repo := new(MockTeamMemberStore)
	pub := new(MockPublisher)
	svc := NewTeamService(repo, nil, testOptions(pub))

	member := storedMember(true, false)
	upd := domain.MemberUpdate{
		Description:        "Jane Doe",
		Phone:              "0711",
		Salary:             decimal.NewFromInt(900),
		AdvertisementTypes: []string{"Other"},
		Platform:           domain.PlatformFacebook,
		ContractType:       domain.ContractFullTime,
	}

	repo.On("GetByID", mock.Anything, member.ID).Return(member, nil).Once()
	repo.On("Update", mock.Anything, member.ID, repositories.MemberUpdateFields(upd)).Return(nil).Once()
	repo.On("ListAll", mock.Anything).Return([]domain.TeamMember{}, nil).Once()
	pub.On("Publish", mock.Anything, eventOfType(messaging.MemberUpdated)).Return(nil).Once()

	updated, err := svc.Update(context.Background(), "user-1", member.ID, upd)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", updated.Description)
	require.Equal(t, 2, updated.TargetVideos)
	require.Equal(t, 1, updated.Completed())
	repo.AssertExpectations(t)
}

func TestStoreCallsAreBounded(t *testing.T) {
	repo := new(MockTeamMemberStore)
	opts := testOptions(nil)
	opts.StoreTimeout = 20 * time.Millisecond
	svc := NewTeamService(repo, nil, opts)

	repo.On("ListAll", mock.Anything).Return([]domain.TeamMember(nil), context.DeadlineExceeded).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).Once()

	start := time.Now()
	_, err := svc.All(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second)
}

func TestSearchUsesIndexThenFallsBack(t *testing.T) {
	repo := new(MockTeamMemberStore)
	searcher := new(MockSearcher)
	svc := NewTeamService(repo, searcher, testOptions(nil))
	ctx := context.Background()

	milk := storedMember(false)
	milk.AdvertisementTypes = []string{"Milk Ad"}
	cream := storedMember(false)
	cream.AdvertisementTypes = []string{"Cream Ad"}
	repo.On("ListAll", mock.Anything).Return([]domain.TeamMember{milk, cream}, nil).Once()

	searcher.On("SearchMembers", mock.Anything, "creme", SearchLimit).Return([]uuid.UUID{cream.ID, uuid.New()}, nil).Once()
	found, err := svc.Search(ctx, "creme")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, cream.ID, found[0].ID)

	searcher.On("SearchMembers", mock.Anything, "milk", SearchLimit).Return([]uuid.UUID(nil), errors.New("index down")).Once()
	found, err = svc.Search(ctx, "milk")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, milk.ID, found[0].ID)
}

func TestGetReturnsNotFound(t *testing.T) {
	repo := new(MockTeamMemberStore)
	svc := NewTeamService(repo, nil, testOptions(nil))
	repo.On("ListAll", mock.Anything).Return([]domain.TeamMember{}, nil).Once()

	_, err := svc.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, repositories.ErrNotFound)
}
