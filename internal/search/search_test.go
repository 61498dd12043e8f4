package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/backstage/services/campaign/config"
	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/messaging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ElasticClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			_, _ = w.Write([]byte(`{"version":{"number":"7.17.10","build_flavor":"default"},"tagline":"You Know, for Search"}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewElasticClient(config.ElasticConfig{URL: srv.URL, Prefix: "test"})
	require.NoError(t, err)
	return c
}

func TestIndexMemberWritesDocument(t *testing.T) {
	id := uuid.New()
	var gotPath string
	var gotDoc AdvertiserDocument

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotDoc)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})
	require.Equal(t, "test-advertisers", c.Index())

	m := domain.TeamMember{
		ID:                 id,
		Description:        "Jane",
		TargetVideos:       2,
		ProgressChecks:     []bool{true, true},
		AdvertisementTypes: []string{"Milk Ad"},
		Platform:           domain.PlatformTikTok,
	}
	require.NoError(t, c.IndexMember(context.Background(), m))

	require.True(t, strings.HasPrefix(gotPath, "/test-advertisers/_doc/"+id.String()))
	require.Equal(t, "Jane", gotDoc.Description)
	require.Equal(t, 2, gotDoc.CompletedVideos)
	require.Equal(t, "Target Reached", gotDoc.Status)
}

func TestSearchMembersParsesHits(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"` + first.String() + `"},{"_id":"bogus"},{"_id":"` + second.String() + `"}]}}`))
	})

	ids, err := c.SearchMembers(context.Background(), "milk", 20)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{first, second}, ids)
	require.Equal(t, "/test-advertisers/_search", gotPath)
}

func TestSearchMembersReportsErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad query"}`))
	})

	_, err := c.SearchMembers(context.Background(), "milk", 20)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad query")
}

func TestDeleteMissingDocumentIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	require.NoError(t, c.DeleteMember(context.Background(), uuid.New()))
}

type MockIndexer struct {
	mock.Mock
}

func (m *MockIndexer) IndexMember(ctx context.Context, member domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockIndexer) DeleteMember(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProjectorRoutesMemberEvents(t *testing.T) {
	ctx := context.Background()
	indexer := new(MockIndexer)
	p := NewProjector(indexer)

	member := domain.TeamMember{ID: uuid.New(), Description: "Jane", TargetVideos: 1, ProgressChecks: []bool{false}}
	registered, err := messaging.NewEvent(messaging.MemberRegistered, member.ID, "admin-1", member)
	require.NoError(t, err)
	deleted, err := messaging.NewEvent(messaging.MemberDeleted, member.ID, "admin-1", nil)
	require.NoError(t, err)
	payment, err := messaging.NewEvent(messaging.PaymentConfirmed, uuid.New(), "admin-1", nil)
	require.NoError(t, err)

	indexer.On("IndexMember", ctx, mock.MatchedBy(func(m domain.TeamMember) bool {
		return m.ID == member.ID && m.Description == "Jane"
	})).Return(nil)
	indexer.On("DeleteMember", ctx, member.ID).Return(nil)

	require.NoError(t, p.HandleEvent(ctx, registered))
	require.NoError(t, p.HandleEvent(ctx, deleted))
	require.NoError(t, p.HandleEvent(ctx, payment))

	indexer.AssertExpectations(t)
}
