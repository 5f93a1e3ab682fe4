package auth

import (
	"context"
	"testing"
	"time"

	"ghotok-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{"id", "username", "password", "email", "created_at"}

type fixture struct {
	auth *Authenticator
	mock sqlmock.Sqlmock
	mr   *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	a := NewAuthenticator(
		NewUserStore(db),
		NewSessionStore(rdb, time.Hour),
		bcrypt.MinCost,
		Bootstrap{Username: "admin12345", Password: "admin12345"},
		logger.NewTestLogger(t),
	)
	return &fixture{auth: a, mock: mock, mr: mr}
}

func hash(t *testing.T, password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin_ExistingUser(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery("FROM users WHERE username").WithArgs("staff").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(4, "staff", hash(t, "s3cret"), "staff@example.com", time.Now()))

	res, err := f.auth.Login(context.Background(), "staff", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.User.ID)
	assert.False(t, res.Created)
	assert.NotEmpty(t, res.Session.Token)
	assert.True(t, f.mr.Exists("session:4:"+res.Session.Token))
	assert.Equal(t, time.Hour, f.mr.TTL("session:4:"+res.Session.Token))
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery("FROM users WHERE username").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(4, "staff", hash(t, "s3cret"), "staff@example.com", time.Now()))

	_, err := f.auth.Login(context.Background(), "staff", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, f.mr.Keys())
}

func TestLogin_UnknownUser(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery("FROM users WHERE username").WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := f.auth.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_CreatesBootstrapAdmin(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery("FROM users WHERE username").WithArgs("admin12345").
		WillReturnRows(sqlmock.NewRows(userColumns))
	f.mock.ExpectQuery("INSERT INTO users").
		WithArgs("admin12345", sqlmock.AnyArg(), "admin12345").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	res, err := f.auth.Login(context.Background(), "admin12345", "admin12345")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, int64(1), res.User.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.Password), []byte("admin12345")))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestValidate(t *testing.T) {
	f := newFixture(t)
	sess, err := f.auth.Sessions().Create(context.Background(), 4, "staff")
	require.NoError(t, err)

	f.mock.ExpectQuery("FROM users WHERE id").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(4, "staff", "x", "staff@example.com", time.Now()))

	user, got, err := f.auth.Validate(context.Background(), 4, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "staff", user.Username)
	assert.Equal(t, sess.Token, got.Token)

	_, _, err = f.auth.Validate(context.Background(), 5, sess.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, f.auth.Sessions().Revoke(context.Background(), sess.Token))
	_, _, err = f.auth.Validate(context.Background(), 4, sess.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestSessionStore_DeleteAll(t *testing.T) {
	f := newFixture(t)
	store := f.auth.Sessions()
	ctx := context.Background()

	a, err := store.Create(ctx, 7, "staff")
	require.NoError(t, err)
	_, err = store.Create(ctx, 7, "staff")
	require.NoError(t, err)
	other, err := store.Create(ctx, 8, "other")
	require.NoError(t, err)

	existed, err := store.Delete(ctx, 7, a.Token)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = store.Delete(ctx, 7, a.Token)
	require.NoError(t, err)
	assert.False(t, existed)

	n, err := store.DeleteAll(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, f.mr.Exists("session:8:"+other.Token))

	n, err = store.DeleteAll(ctx, 7)
	require.NoError(t, err)
	assert.Zero(t, n)
}
