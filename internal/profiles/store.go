// internal/profiles/store.go
package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ghotok-workers/internal/common/logger"
	"ghotok-workers/internal/models"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound    = errors.New("profile not found")
	ErrIDExhausted = errors.New("no unique profile id after retries")
)

const (
	poolKeyPrefix = "profiles:pool:"
	statsKey      = "profiles:stats"

	uniqueViolation = "23505"
)

const profileColumns = `id, profile_id, name, age, gender, profession, qualification, marital_status, height,
	profile_picture, profile_picture_original, document, document_original, birth_year, created_at, updated_at`

type StoreConfig struct {
	PoolCacheTTL  time.Duration
	StatsCacheTTL time.Duration
	IDMaxAttempts int
}

// Store reads and writes profiles in postgres. Redis, when set, caches the per-gender
// candidate pools and the stats counts. Every write drops both caches.
type Store struct {
	db     *sql.DB
	redis  *redis.Client
	ids    *IDGenerator
	cfg    StoreConfig
	logger logger.Logger
	now    func() time.Time
}

func NewStore(db *sql.DB, rdb *redis.Client, ids *IDGenerator, cfg StoreConfig, log logger.Logger) *Store {
	if cfg.IDMaxAttempts <= 0 {
		cfg.IDMaxAttempts = 20
	}
	return &Store{
		db:     db,
		redis:  rdb,
		ids:    ids,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "profile-store"}),
		now:    time.Now,
	}
}

// ListByGender returns every profile of gender, newest first.
func (s *Store) ListByGender(ctx context.Context, gender string) ([]models.Profile, error) {
	key := poolKeyPrefix + gender
	var cached []models.Profile
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE gender = $1 ORDER BY created_at DESC", gender)
	if err != nil {
		return nil, fmt.Errorf("list profiles by gender: %w", err)
	}
	list, err := scanProfiles(rows)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, list, s.cfg.PoolCacheTTL)
	return list, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profiles WHERE id = $1", id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %d: %w", id, err)
	}
	return p, nil
}

// Create stores p under a freshly generated profile id. BirthYear defaults to the
// year implied by Age.
func (s *Store) Create(ctx context.Context, p models.Profile) (*models.Profile, error) {
	if p.BirthYear == 0 {
		p.BirthYear = models.BirthYearFor(p.Age, s.now())
	}

	for attempt := 1; attempt <= s.cfg.IDMaxAttempts; attempt++ {
		candidate := s.ids.Next()

		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM profiles WHERE profile_id = $1)`, candidate).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check profile id: %w", err)
		}
		if exists {
			continue
		}

		p.ProfileID = candidate
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO profiles (profile_id, name, age, gender, profession, qualification, marital_status, height,
				profile_picture, profile_picture_original, document, document_original, birth_year, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
			RETURNING id, created_at, updated_at`,
			p.ProfileID, p.Name, p.Age, p.Gender,
			nullString(p.Profession), nullString(p.Qualification), nullString(p.MaritalStatus), p.Height,
			nullString(p.ProfilePicture), nullString(p.ProfilePictureOriginal),
			nullString(p.Document), nullString(p.DocumentOriginal), p.BirthYear,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			s.logger.Debug("profile id taken concurrently", map[string]interface{}{"profileId": candidate, "attempt": attempt})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("insert profile: %w", err)
		}

		s.invalidate(ctx)
		return &p, nil
	}

	return nil, fmt.Errorf("%w: %d attempts", ErrIDExhausted, s.cfg.IDMaxAttempts)
}

// Update replaces the editable fields of profile id. The profile id and creation time
// are kept.
func (s *Store) Update(ctx context.Context, id int64, p models.Profile) (*models.Profile, error) {
	if p.BirthYear == 0 {
		p.BirthYear = models.BirthYearFor(p.Age, s.now())
	}

	err := s.db.QueryRowContext(ctx, `
		UPDATE profiles SET name = $1, age = $2, gender = $3, profession = $4, qualification = $5,
			marital_status = $6, height = $7, profile_picture = $8, profile_picture_original = $9,
			document = $10, document_original = $11, birth_year = $12, updated_at = NOW()
		WHERE id = $13
		RETURNING id, profile_id, created_at, updated_at`,
		p.Name, p.Age, p.Gender,
		nullString(p.Profession), nullString(p.Qualification), nullString(p.MaritalStatus), p.Height,
		nullString(p.ProfilePicture), nullString(p.ProfilePictureOriginal),
		nullString(p.Document), nullString(p.DocumentOriginal), p.BirthYear, id,
	).Scan(&p.ID, &p.ProfileID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile %d: %w", id, err)
	}

	s.invalidate(ctx)
	return &p, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.invalidate(ctx)
	return nil
}

// Search filters profiles in postgres, newest first.
func (s *Store) Search(ctx context.Context, f Filters) ([]models.Profile, error) {
	query, args := buildSearchQuery(f, s.now())
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	return scanProfiles(rows)
}

// Stats counts profiles by side. cached reports whether the counts came from redis.
func (s *Store) Stats(ctx context.Context, forceRefresh bool) (stats *models.ProfileStats, cached bool, err error) {
	if !forceRefresh {
		var hit models.ProfileStats
		if s.cacheGet(ctx, statsKey, &hit) {
			return &hit, true, nil
		}
	}

	var st models.ProfileStats
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE gender = 'Female'),
			COUNT(*) FILTER (WHERE gender = 'Male')
		FROM profiles`).Scan(&st.TotalProfiles, &st.BrideProfiles, &st.GroomProfiles)
	if err != nil {
		return nil, false, fmt.Errorf("count profiles: %w", err)
	}

	s.cacheSet(ctx, statsKey, st, s.cfg.StatsCacheTTL)
	return &st, false, nil
}

func (s *Store) invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, poolKeyPrefix+"Male", poolKeyPrefix+"Female", statsKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate profile caches", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Store) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.redis == nil {
		return false
	}
	val, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		s.logger.Warn("cache entry unreadable", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return true
}

func (s *Store) cacheSet(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if s.redis == nil || ttl <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var (
		p                                      models.Profile
		profession, qualification, marital     sql.NullString
		picture, pictureOriginal, doc, docOrig sql.NullString
	)
	err := row.Scan(&p.ID, &p.ProfileID, &p.Name, &p.Age, &p.Gender, &profession, &qualification, &marital,
		&p.Height, &picture, &pictureOriginal, &doc, &docOrig, &p.BirthYear, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Profession = profession.String
	p.Qualification = qualification.String
	p.MaritalStatus = marital.String
	p.ProfilePicture = picture.String
	p.ProfilePictureOriginal = pictureOriginal.String
	p.Document = doc.String
	p.DocumentOriginal = docOrig.String
	return &p, nil
}

func scanProfiles(rows *sql.Rows) ([]models.Profile, error) {
	defer rows.Close()
	list := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return list, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
