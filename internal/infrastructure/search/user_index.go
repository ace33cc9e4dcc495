// Package search mirrors user profiles into Elasticsearch for relevance search.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
)

const (
	requestTimeout  = 3 * time.Second
	defaultSize     = 10
	maxDiscoverSize = 50
)

type userDoc struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Bio        string   `json:"bio,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Location   string   `json:"location,omitempty"`
	Experience string   `json:"experience,omitempty"`
	UpdatedAt  string   `json:"updated_at"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source userDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type UserIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{ES: es, Index: index}
}

// Enabled reports whether a client and index name are configured.
func (x *UserIndex) Enabled() bool { return x != nil && x.ES != nil && x.Index != "" }

// Put upserts the user's searchable fields. The password hash is never indexed.
func (x *UserIndex) Put(ctx context.Context, u *entity.User) error {
	if !x.Enabled() {
		return nil
	}
	b, err := json.Marshal(userDoc{
		ID:         u.ID.Hex(),
		Name:       u.Name,
		Email:      u.Email,
		Bio:        u.Bio,
		Skills:     u.Skills,
		Location:   u.Location,
		Experience: string(u.Experience),
		UpdatedAt:  u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: u.ID.Hex(), Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", u.ID.Hex(), res.Status())
	}
	return nil
}

// Discover runs a weighted multi_match over name, skills, bio and location.
// An empty query returns the most recently updated profiles.
func (x *UserIndex) Discover(ctx context.Context, q string, size int) ([]entity.UserSummary, error) {
	if !x.Enabled() {
		return []entity.UserSummary{}, nil
	}
	if size <= 0 || size > maxDiscoverSize {
		size = defaultSize
	}
	body := map[string]any{"size": size}
	if q = strings.TrimSpace(q); q != "" {
		body["query"] = map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^3", "skills^2", "bio", "location"},
				"fuzziness": "AUTO",
			},
		}
	} else {
		body["query"] = map[string]any{"match_all": map[string]any{}}
		body["sort"] = []any{map[string]any{"updated_at": map[string]any{"order": "desc", "unmapped_type": "date"}}}
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.UserSummary, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := primitive.ObjectIDFromHex(h.Source.ID)
		if err != nil {
			continue
		}
		out = append(out, entity.UserSummary{
			ID:     id,
			Name:   h.Source.Name,
			Email:  h.Source.Email,
			Bio:    h.Source.Bio,
			Skills: h.Source.Skills,
		})
	}
	return out, nil
}
