package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzumoe/linktorch-search/internal/service"
)

func runToken(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestTokenCommand(t *testing.T) {
	t.Run("Issues Token For Client", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "cli-secret")

		token, err := runToken(t, "--client", "ops", "--ttl", "1h")
		require.NoError(t, err)

		claims, err := service.NewTokenService("cli-secret", time.Hour).Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "ops", claims.Subject)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("Default Client", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "cli-secret")

		token, err := runToken(t)
		require.NoError(t, err)

		claims, err := service.NewTokenService("cli-secret", time.Hour).Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "cli", claims.Subject)
	})

	t.Run("Missing Secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := runToken(t)
		assert.ErrorIs(t, err, errNoSecret)
	})

	t.Run("Bad TTL", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "cli-secret")

		_, err := runToken(t, "--ttl", "-1h")
		assert.Error(t, err)
	})

	t.Run("Rejects Positional Args", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "cli-secret")

		_, err := runToken(t, "extra")
		assert.Error(t, err)
	})
}
