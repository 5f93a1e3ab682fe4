package profiles

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ghotok-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeES struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string
	exists   bool
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	key := r.Method + " " + r.URL.Path
	f.requests = append(f.requests, key)
	if f.bodies == nil {
		f.bodies = map[string]string{}
	}
	f.bodies[key] = string(body)
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/profiles":
		if f.exists {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPut && r.URL.Path == "/profiles":
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/profiles/_doc/"):
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":1},"hits":[{"_source":{"id":3,"profileId":"GB-12345","name":"Karim","age":30,"gender":"Male","profession":"Doctor","height":"6'0\"","birthYear":1996}}]}}`))
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func (f *fakeES) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeES) body(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

func newTestIndex(t *testing.T, fake *fakeES) *Index {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	ix := NewIndex(client, "")
	ix.now = func() time.Time { return fixedNow }
	return ix
}

func TestIndex_EnsureIndexCreatesMissing(t *testing.T) {
	fake := &fakeES{}
	ix := newTestIndex(t, fake)

	require.NoError(t, ix.EnsureIndex(context.Background()))
	assert.Contains(t, fake.seen(), "PUT /profiles")
	assert.Contains(t, fake.body("PUT /profiles"), `"profession"`)
}

func TestIndex_EnsureIndexSkipsExisting(t *testing.T) {
	fake := &fakeES{exists: true}
	ix := newTestIndex(t, fake)

	require.NoError(t, ix.EnsureIndex(context.Background()))
	assert.NotContains(t, fake.seen(), "PUT /profiles")
}

func TestIndex_PutAndRemove(t *testing.T) {
	fake := &fakeES{}
	ix := newTestIndex(t, fake)

	require.NoError(t, ix.Put(context.Background(), &models.Profile{ID: 7, ProfileID: "GB-10007", Gender: "Female"}))
	assert.Contains(t, fake.body("PUT /profiles/_doc/7"), `"profileId":"GB-10007"`)

	// Removing a document that was never indexed is fine.
	assert.NoError(t, ix.Remove(context.Background(), 9))
}

func TestIndex_Search(t *testing.T) {
	fake := &fakeES{}
	ix := newTestIndex(t, fake)

	list, total, err := ix.Search(context.Background(), Filters{Gender: "Male", Profession: "doc", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "GB-12345", list[0].ProfileID)
	assert.Equal(t, `6'0"`, list[0].Height)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(fake.body("POST /profiles/_search")), &sent))
	filters := sent["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]interface{})
	assert.Len(t, filters, 3)
}

func TestBuildSearchBody(t *testing.T) {
	body := buildSearchBody(Filters{}, fixedNow)
	assert.Contains(t, body["query"], "match_all")

	body = buildSearchBody(Filters{MaritalStatus: "Single", Height: `5'2"`}, fixedNow)
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `{"term":{"maritalStatus":"Single"}}`)
	assert.Contains(t, string(raw), `"createdAt":{"order":"desc"}`)
}
