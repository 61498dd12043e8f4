package search

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/config"
	"example.com/backstage/services/campaign/internal/domain"
)

// AdvertiserIndex is the index suffix holding advertiser documents
const AdvertiserIndex = "advertisers"

// AdvertiserDocument is the searchable projection of a team member
type AdvertiserDocument struct {
	ID                 string   `json:"id"`
	Description        string   `json:"description"`
	Phone              string   `json:"phone"`
	AdvertisementTypes []string `json:"advertisement_types"`
	Platform           string   `json:"platform"`
	ContractType       string   `json:"contract_type"`
	Notes              string   `json:"notes"`
	TargetVideos       int      `json:"target_videos"`
	CompletedVideos    int      `json:"completed_videos"`
	Status             string   `json:"status"`
}

// DocumentFor projects a member into its search document
func DocumentFor(m domain.TeamMember) AdvertiserDocument {
	return AdvertiserDocument{
		ID:                 m.ID.String(),
		Description:        m.Description,
		Phone:              m.Phone,
		AdvertisementTypes: m.AdvertisementTypes,
		Platform:           string(m.Platform),
		ContractType:       string(m.ContractType),
		Notes:              m.Notes,
		TargetVideos:       m.TargetVideos,
		CompletedVideos:    m.Completed(),
		Status:             m.Status().String(),
	}
}

// ElasticClient maintains and queries the advertiser index
type ElasticClient struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticClient creates a new Elasticsearch client
func NewElasticClient(cfg config.ElasticConfig) (*ElasticClient, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Elasticsearch client")
	}

	return &ElasticClient{
		client: client,
		index:  config.FormatIndex(cfg, AdvertiserIndex),
	}, nil
}

// Index returns the full index name
func (c *ElasticClient) Index() string {
	return c.index
}

// IndexMember upserts the member's document
func (c *ElasticClient) IndexMember(ctx context.Context, m domain.TeamMember) error {
	body, err := json.Marshal(DocumentFor(m))
	if err != nil {
		return errors.Wrap(err, "failed to marshal advertiser document")
	}

	req := esapi.IndexRequest{
		Index:      c.index,
		DocumentID: m.ID.String(),
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return errors.Wrap(err, "failed to execute Elasticsearch index request")
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("index", res)
	}

	log.Debug().Str("member_id", m.ID.String()).Msg("advertiser indexed")
	return nil
}

// DeleteMember removes the member's document. A missing document is not an error.
func (c *ElasticClient) DeleteMember(ctx context.Context, id uuid.UUID) error {
	req := esapi.DeleteRequest{
		Index:      c.index,
		DocumentID: id.String(),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return errors.Wrap(err, "failed to execute Elasticsearch delete request")
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res)
	}
	return nil
}

// SearchMembers returns the ids of members matching term, best match first
func (c *ElasticClient) SearchMembers(ctx context.Context, term string, limit int) ([]uuid.UUID, error) {
	query := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     term,
				"fields":    []string{"description^2", "advertisement_types", "notes", "platform"},
				"fuzziness": "AUTO",
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal search query")
	}

	req := esapi.SearchRequest{
		Index: []string{c.index},
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute Elasticsearch search request")
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("search", res)
	}

	var result struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to parse Elasticsearch search response")
	}

	ids := make([]uuid.UUID, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			log.Warn().Str("doc_id", hit.ID).Msg("skipping advertiser document with invalid id")
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func responseError(op string, res *esapi.Response) error {
	raw, _ := io.ReadAll(res.Body)
	return errors.Errorf("Elasticsearch %s error [%d]: %s", op, res.StatusCode, bytes.TrimSpace(raw))
}
