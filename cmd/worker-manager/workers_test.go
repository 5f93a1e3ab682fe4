package main

import (
	"path/filepath"
	"sort"
	"testing"

	"ghotok-workers/internal/auth"
	"ghotok-workers/internal/common/config"
	"ghotok-workers/internal/common/logger"
	"ghotok-workers/internal/matching"
	"ghotok-workers/internal/options"
	"ghotok-workers/internal/profiles"
	"ghotok-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServices(t *testing.T) *services {
	log := logger.NewTestLogger(t)
	return &services{
		profiles:      profiles.NewStore(nil, nil, profiles.NewIDGenerator("GB", matching.NewSeededSource(1)), profiles.StoreConfig{}, log),
		options:       options.NewStore(nil),
		authenticator: auth.NewAuthenticator(auth.NewUserStore(nil), auth.NewSessionStore(nil, 0), 0, auth.Bootstrap{}, log),
		matcher:       matching.NewMatcher(matching.Options{}),
	}
}

func TestBuildHandlersCoversEveryTaskType(t *testing.T) {
	handlers := buildHandlers(&config.Config{}, testServices(t), logger.NewTestLogger(t))

	var got []string
	for taskType, h := range handlers {
		assert.NotNil(t, h, taskType)
		got = append(got, taskType)
	}
	sort.Strings(got)

	assert.Equal(t, []string{
		"admin-login",
		"admin-logout",
		"create-profile",
		"delete-profile",
		"get-profile",
		"get-profile-stats",
		"manage-custom-options",
		"match-profile",
		"notify-match",
		"search-profiles",
		"update-profile",
		"validate-session",
	}, got)
}

func TestRegistryListsEveryHandler(t *testing.T) {
	reg, err := registry.LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)

	handlers := buildHandlers(&config.Config{}, testServices(t), logger.NewTestLogger(t))
	for taskType := range handlers {
		found := false
		for _, a := range reg.Activities {
			if a.TaskType == taskType {
				found = true
				break
			}
		}
		assert.True(t, found, "%s missing from activity registry", taskType)
	}
	assert.Len(t, reg.Activities, len(handlers))

	match := reg.Find("match-profile")
	require.NotNil(t, match)
	assert.True(t, match.Throws("NO_MATCH_FOUND"))
	assert.True(t, match.Throws("INVALID_INPUT"))
}
