package service

import (
	"context"
	"testing"
	"time"

	"clinic-records-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionServiceStoreAndExpire(t *testing.T) {
	client, server := testutil.NewRedis(t)
	svc := NewSessionService(client, testutil.NewLogger())
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.Store(ctx, userID, "a1", time.Minute, "r1", time.Hour))

	active, err := svc.IsAccessTokenActive(ctx, userID, "a1")
	require.NoError(t, err)
	assert.True(t, active)

	assert.True(t, server.Exists(refreshKey(userID, "r1")))

	server.FastForward(2 * time.Minute)

	active, err = svc.IsAccessTokenActive(ctx, userID, "a1")
	require.NoError(t, err)
	assert.False(t, active)

	assert.True(t, server.Exists(refreshKey(userID, "r1")))
}

func TestSessionServiceRevokePairOnlyOnce(t *testing.T) {
	client, _ := testutil.NewRedis(t)
	svc := NewSessionService(client, testutil.NewLogger())
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.Store(ctx, userID, "a1", time.Minute, "r1", time.Hour))

	require.NoError(t, svc.RevokePair(ctx, userID, "a1", "r1"))

	active, err := svc.IsAccessTokenActive(ctx, userID, "a1")
	require.NoError(t, err)
	assert.False(t, active)

	assert.ErrorIs(t, svc.RevokePair(ctx, userID, "a1", "r1"), ErrInvalidToken)
}

func TestSessionServiceRevokePairKeepsAccessWhenRefreshUnknown(t *testing.T) {
	client, _ := testutil.NewRedis(t)
	svc := NewSessionService(client, testutil.NewLogger())
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.Store(ctx, userID, "a1", time.Minute, "r1", time.Hour))

	assert.ErrorIs(t, svc.RevokePair(ctx, userID, "a1", "unknown"), ErrInvalidToken)

	active, err := svc.IsAccessTokenActive(ctx, userID, "a1")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestSessionServiceRevokeRefreshToken(t *testing.T) {
	client, _ := testutil.NewRedis(t)
	svc := NewSessionService(client, testutil.NewLogger())
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.Store(ctx, userID, "a1", time.Minute, "r1", time.Hour))

	require.NoError(t, svc.RevokeRefreshToken(ctx, userID, "r1"))
	assert.ErrorIs(t, svc.RevokeRefreshToken(ctx, userID, "r1"), ErrInvalidToken)
}

func TestSessionServiceRevokeAll(t *testing.T) {
	client, _ := testutil.NewRedis(t)
	svc := NewSessionService(client, testutil.NewLogger())
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	require.NoError(t, svc.Store(ctx, userID, "a1", time.Minute, "r1", time.Hour))
	require.NoError(t, svc.Store(ctx, userID, "a2", time.Minute, "r2", time.Hour))
	require.NoError(t, svc.Store(ctx, otherID, "a3", time.Minute, "r3", time.Hour))

	removed, err := svc.RevokeAll(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	active, err := svc.IsAccessTokenActive(ctx, otherID, "a3")
	require.NoError(t, err)
	assert.True(t, active)
}
