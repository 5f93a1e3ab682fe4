package adminlogout

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"ghotok-workers/internal/auth"
	"ghotok-workers/internal/common/errors"
	"ghotok-workers/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) (*Handler, *auth.SessionStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	sessions := auth.NewSessionStore(rdb, time.Hour)
	return NewHandler(&Config{Timeout: 5 * time.Second}, sessions, logger.NewTestLogger(t)), sessions, mr
}

func TestExecuteSingleSession(t *testing.T) {
	h, sessions, mr := createTestHandler(t)
	ctx := context.Background()

	sess, err := sessions.Create(ctx, 2, "staff")
	require.NoError(t, err)
	other, err := sessions.Create(ctx, 2, "staff")
	require.NoError(t, err)

	out, err := h.Execute(ctx, &Input{UserID: 2, Token: sess.Token})
	require.NoError(t, err)
	assert.Equal(t, 1, out.SessionsInvalidated)
	assert.True(t, out.TokenRevoked)
	assert.True(t, mr.Exists("token:revoked:"+sess.Token))

	_, err = sessions.Get(ctx, 2, sess.Token)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
	_, err = sessions.Get(ctx, 2, other.Token)
	assert.NoError(t, err)
}

func TestExecuteLogoutAll(t *testing.T) {
	h, sessions, _ := createTestHandler(t)
	ctx := context.Background()

	var tokens []string
	for i := 0; i < 3; i++ {
		sess, err := sessions.Create(ctx, 5, "staff")
		require.NoError(t, err)
		tokens = append(tokens, sess.Token)
	}

	out, err := h.Execute(ctx, &Input{UserID: 5, Token: tokens[0], LogoutAll: true})
	require.NoError(t, err)
	assert.Equal(t, 3, out.SessionsInvalidated)

	_, err = sessions.Get(ctx, 5, tokens[2])
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestExecuteExpiredSession(t *testing.T) {
	h, _, _ := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{UserID: 9, Token: "0123456789abcdef"})
	require.NoError(t, err)
	assert.Zero(t, out.SessionsInvalidated)
	assert.True(t, out.TokenRevoked)
}

func TestExecuteStoreDown(t *testing.T) {
	h, _, mr := createTestHandler(t)
	mr.Close()

	_, err := h.Execute(context.Background(), &Input{UserID: 9, Token: "0123456789abcdef"})
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeSessionStoreFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		wantErr   bool
	}{
		{name: "valid", variables: `{"userId":1,"token":"0123456789abcdef"}`},
		{name: "logout all", variables: `{"userId":1,"token":"0123456789abcdef","logoutAll":true}`},
		{name: "missing token", variables: `{"userId":1}`, wantErr: true},
		{name: "short token", variables: `{"userId":1,"token":"abc"}`, wantErr: true},
		{name: "string user id", variables: `{"userId":"1","token":"0123456789abcdef"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseInput(tt.variables)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
