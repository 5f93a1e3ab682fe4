package profiles

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"
	"time"

	"ghotok-workers/internal/common/logger"
	"ghotok-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	profileColumnNames = []string{
		"id", "profile_id", "name", "age", "gender", "profession", "qualification", "marital_status", "height",
		"profile_picture", "profile_picture_original", "document", "document_original", "birth_year", "created_at", "updated_at",
	}
)

// seqSource returns the queued values in order, then repeats the last one.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[len(s.vals)-1]
	if s.i < len(s.vals) {
		v = s.vals[s.i]
		s.i++
	}
	return v % n
}

func newTestStore(t *testing.T, cfg StoreConfig, ids ...int) (*Store, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	if len(ids) == 0 {
		ids = []int{0}
	}
	store := NewStore(db, rdb, NewIDGenerator("GB", &seqSource{vals: ids}), cfg, logger.NewTestLogger(t))
	store.now = func() time.Time { return fixedNow }
	return store, mock, mr
}

func brideRow(rows *sqlmock.Rows, id int64, name string) *sqlmock.Rows {
	return rows.AddRow(id, fmt.Sprintf("GB-%05d", 10000+id), name, 25, "Female", nil, "BSc", "Single", `5'2"`,
		nil, nil, "https://cdn.example.com/upload/v1/doc.pdf", "doc.pdf", 2001, fixedNow, fixedNow)
}

func TestStore_ListByGenderCachesPool(t *testing.T) {
	store, mock, mr := newTestStore(t, StoreConfig{PoolCacheTTL: time.Minute})

	rows := sqlmock.NewRows(profileColumnNames)
	brideRow(rows, 1, "Ayesha")
	brideRow(rows, 2, "Nusrat")
	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE gender = $1 ORDER BY created_at DESC")).
		WithArgs("Female").
		WillReturnRows(rows)

	list, err := store.ListByGender(context.Background(), "Female")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ayesha", list[0].Name)
	assert.Empty(t, list[0].Profession)
	assert.Equal(t, "doc.pdf", list[0].DocumentOriginal)
	assert.True(t, mr.Exists("profiles:pool:Female"))

	// Served from redis; no further query is expected.
	again, err := store.ListByGender(context.Background(), "Female")
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, "Nusrat", again[1].Name)
	assert.Equal(t, list[0].ProfileID, again[0].ProfileID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListByGenderWithoutRedis(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, nil, NewIDGenerator("", &seqSource{vals: []int{0}}), StoreConfig{}, logger.NewNoOpLogger())
	mock.ExpectQuery("FROM profiles WHERE gender").WillReturnRows(sqlmock.NewRows(profileColumnNames))

	list, err := store.ListByGender(context.Background(), "Male")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestStore_GetNotFound(t *testing.T) {
	store, mock, _ := newTestStore(t, StoreConfig{})
	mock.ExpectQuery("FROM profiles WHERE id = ").WithArgs(int64(42)).WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_CreateRetriesTakenIDs(t *testing.T) {
	store, mock, mr := newTestStore(t, StoreConfig{IDMaxAttempts: 5}, 111, 222, 333)
	require.NoError(t, mr.Set("profiles:stats", `{"totalProfiles":1}`))

	mock.ExpectQuery("SELECT EXISTS").WithArgs("GB-10111").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("GB-10222").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO profiles").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})
	mock.ExpectQuery("SELECT EXISTS").WithArgs("GB-10333").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs("GB-10333", "Rahim", 30, "Male", "Engineer", nil, nil, `5'10"`, nil, nil, nil, nil, 1996).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, fixedNow, fixedNow))

	created, err := store.Create(context.Background(), models.Profile{
		Name: "Rahim", Age: 30, Gender: "Male", Profession: "Engineer", Height: `5'10"`,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "GB-10333", created.ProfileID)
	assert.Equal(t, 1996, created.BirthYear)
	assert.False(t, mr.Exists("profiles:stats"), "writes must drop the stats cache")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateExhaustsIDs(t *testing.T) {
	store, mock, _ := newTestStore(t, StoreConfig{IDMaxAttempts: 2}, 5)
	for i := 0; i < 2; i++ {
		mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	}

	_, err := store.Create(context.Background(), models.Profile{Name: "x", Age: 30, Gender: "Male", Height: `5'10"`})
	assert.ErrorIs(t, err, ErrIDExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateNotFound(t *testing.T) {
	store, mock, _ := newTestStore(t, StoreConfig{})
	mock.ExpectQuery("UPDATE profiles SET").
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "created_at", "updated_at"}))

	_, err := store.Update(context.Background(), 9, models.Profile{Name: "x", Age: 30, Gender: "Male", Height: `5'10"`})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Update(t *testing.T) {
	store, mock, mr := newTestStore(t, StoreConfig{})
	require.NoError(t, mr.Set("profiles:pool:Male", `[]`))

	mock.ExpectQuery("UPDATE profiles SET").
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "created_at", "updated_at"}).
			AddRow(9, "GB-55555", fixedNow.Add(-time.Hour), fixedNow))

	updated, err := store.Update(context.Background(), 9, models.Profile{Name: "Karim", Age: 32, Gender: "Male", Height: `5'9"`, BirthYear: 1994})
	require.NoError(t, err)
	assert.Equal(t, "GB-55555", updated.ProfileID)
	assert.Equal(t, 1994, updated.BirthYear)
	assert.False(t, mr.Exists("profiles:pool:Male"))
}

func TestStore_Delete(t *testing.T) {
	store, mock, _ := newTestStore(t, StoreConfig{})
	mock.ExpectExec("DELETE FROM profiles").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM profiles").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.Delete(context.Background(), 3))
	assert.ErrorIs(t, store.Delete(context.Background(), 4), ErrNotFound)
}

func TestStore_Search(t *testing.T) {
	store, mock, _ := newTestStore(t, StoreConfig{})

	rows := sqlmock.NewRows(profileColumnNames)
	brideRow(rows, 1, "Ayesha")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE gender = $1 AND profession ILIKE $2")).
		WithArgs("Female", "%teach%").
		WillReturnRows(rows)

	list, err := store.Search(context.Background(), Filters{Gender: "Female", Profession: "teach"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name      string
		filters   Filters
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no filters",
			filters:   Filters{},
			wantWhere: " FROM profiles ORDER BY created_at DESC",
		},
		{
			name:      "age becomes birth year",
			filters:   Filters{Age: 30},
			wantWhere: " WHERE birth_year = $1 ORDER BY",
			wantArgs:  []interface{}{1996},
		},
		{
			name:      "age and matching birth year collapse",
			filters:   Filters{Age: 30, BirthYear: 1996},
			wantWhere: " WHERE birth_year = $1 ORDER BY",
			wantArgs:  []interface{}{1996},
		},
		{
			name:      "all filters",
			filters:   Filters{Gender: "Male", Profession: "eng", MaritalStatus: "Single", Height: `5'10"`, BirthYear: 1990, Age: 30},
			wantWhere: " WHERE gender = $1 AND profession ILIKE $2 AND birth_year = $3 AND birth_year = $4 AND height = $5 AND marital_status = $6 ORDER BY",
			wantArgs:  []interface{}{"Male", "%eng%", 1990, 1996, `5'10"`, "Single"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildSearchQuery(tt.filters, fixedNow)
			assert.Contains(t, query, tt.wantWhere)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestStore_StatsCached(t *testing.T) {
	store, mock, _ := newTestStore(t, StoreConfig{StatsCacheTTL: time.Minute})
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"total", "brides", "grooms"}).AddRow(10, 6, 4))

	stats, cached, err := store.Stats(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, models.ProfileStats{TotalProfiles: 10, BrideProfiles: 6, GroomProfiles: 4}, *stats)

	stats, cached, err = store.Stats(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 6, stats.BrideProfiles)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"total", "brides", "grooms"}).AddRow(11, 6, 5))
	stats, cached, err = store.Stats(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 11, stats.TotalProfiles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIDGenerator(t *testing.T) {
	g := NewIDGenerator("GB", &seqSource{vals: []int{0, 89999, 1234}})
	assert.Equal(t, "GB-10000", g.Next())
	assert.Equal(t, "GB-99999", g.Next())
	assert.Equal(t, "GB-11234", g.Next())
}
