// internal/profiles/index.go
package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ghotok-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const searchSize = 1000

var ErrSearchFailed = errors.New("profile search failed")

// indexMapping keeps the filter fields exact. profession.raw backs the case-insensitive
// substring filter.
var indexMapping = map[string]interface{}{
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"profileId":     map[string]interface{}{"type": "keyword"},
			"gender":        map[string]interface{}{"type": "keyword"},
			"height":        map[string]interface{}{"type": "keyword"},
			"maritalStatus": map[string]interface{}{"type": "keyword"},
			"profession": map[string]interface{}{
				"type":   "text",
				"fields": map[string]interface{}{"raw": map[string]interface{}{"type": "keyword"}},
			},
			"age":       map[string]interface{}{"type": "integer"},
			"birthYear": map[string]interface{}{"type": "integer"},
			"createdAt": map[string]interface{}{"type": "date"},
		},
	},
}

// Index mirrors profiles into Elasticsearch for search.
type Index struct {
	client *elasticsearch.Client
	name   string
	now    func() time.Time
}

func NewIndex(client *elasticsearch.Client, name string) *Index {
	if name == "" {
		name = "profiles"
	}
	return &Index{client: client, name: name, now: time.Now}
}

func (ix *Index) Name() string {
	return ix.name
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (ix *Index) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{ix.name}}.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("check index %s: %w", ix.name, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := json.Marshal(indexMapping)
	res, err = esapi.IndicesCreateRequest{Index: ix.name, Body: bytes.NewReader(body)}.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("create index %s: %w", ix.name, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", ix.name, res.String())
	}
	return nil
}

// Put indexes p under its numeric id.
func (ix *Index) Put(ctx context.Context, p *models.Profile) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	res, err := esapi.IndexRequest{
		Index:      ix.name,
		DocumentID: strconv.FormatInt(p.ID, 10),
		Body:       bytes.NewReader(body),
	}.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("index profile %d: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index profile %d: %s", p.ID, res.String())
	}
	return nil
}

// Remove deletes the document for id. A missing document is not an error.
func (ix *Index) Remove(ctx context.Context, id int64) error {
	res, err := esapi.DeleteRequest{Index: ix.name, DocumentID: strconv.FormatInt(id, 10)}.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("remove profile %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove profile %d: %s", id, res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.Profile `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs the same filters as Store.Search against the index.
func (ix *Index) Search(ctx context.Context, f Filters) ([]models.Profile, int64, error) {
	body, _ := json.Marshal(buildSearchBody(f, ix.now()))
	size := searchSize

	res, err := esapi.SearchRequest{
		Index: []string{ix.name},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}.Do(ctx, ix.client)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("%w: %s", ErrSearchFailed, res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, 0, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	list := make([]models.Profile, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		list = append(list, hit.Source)
	}
	return list, r.Hits.Total.Value, nil
}

func buildSearchBody(f Filters, now time.Time) map[string]interface{} {
	filterClauses := []interface{}{}
	term := func(field string, value interface{}) {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{field: value},
		})
	}

	if f.Gender != "" {
		term("gender", f.Gender)
	}
	if f.Profession != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"wildcard": map[string]interface{}{
				"profession.raw": map[string]interface{}{
					"value":            "*" + f.Profession + "*",
					"case_insensitive": true,
				},
			},
		})
	}
	for _, year := range f.birthYears(now) {
		term("birthYear", year)
	}
	if f.Height != "" {
		term("height", f.Height)
	}
	if f.MaritalStatus != "" {
		term("maritalStatus", f.MaritalStatus)
	}

	query := map[string]interface{}{"match_all": map[string]interface{}{}}
	if len(filterClauses) > 0 {
		query = map[string]interface{}{
			"bool": map[string]interface{}{"filter": filterClauses},
		}
	}

	return map[string]interface{}{
		"query":            query,
		"sort":             []interface{}{map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc"}}},
		"track_total_hits": true,
	}
}
