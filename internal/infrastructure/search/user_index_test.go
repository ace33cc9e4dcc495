package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
)

type recorded struct {
	method, path, body string
}

func fakeES(t *testing.T, reply string) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{r.Method, r.URL.Path, string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, &reqs
}

func TestPutNeverIndexesPassword(t *testing.T) {
	es, reqs := fakeES(t, `{"result":"created"}`)
	x := NewUserIndex(es, "users")
	u := &entity.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com", Password: "$2a$12$secret", Skills: []string{"go"}}

	require.NoError(t, x.Put(context.Background(), u))
	require.Len(t, *reqs, 1)
	r := (*reqs)[0]
	assert.Equal(t, http.MethodPut, r.method)
	assert.Equal(t, "/users/_doc/"+u.ID.Hex(), r.path)
	assert.NotContains(t, r.body, "secret")
	assert.Contains(t, r.body, `"skills":["go"]`)
}

func TestDiscoverParsesHits(t *testing.T) {
	id := primitive.NewObjectID()
	reply := `{"hits":{"hits":[{"_source":{"id":"` + id.Hex() + `","name":"Ada","email":"ada@example.com","skills":["go"]}},{"_source":{"id":"bogus"}}]}}`
	es, reqs := fakeES(t, reply)
	x := NewUserIndex(es, "users")

	got, err := x.Discover(context.Background(), "gopher", 500)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, []string{"go"}, got[0].Skills)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte((*reqs)[0].body), &sent))
	assert.EqualValues(t, defaultSize, sent["size"])
	assert.True(t, strings.HasSuffix((*reqs)[0].path, "/_search"))
}

func TestDisabledIndexIsNoop(t *testing.T) {
	var x *UserIndex
	assert.False(t, x.Enabled())
	got, err := NewUserIndex(nil, "users").Discover(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
