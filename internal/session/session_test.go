package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	redisrepo "github.com/utafrali/storefront/internal/repository/redis"
)

func setupManager(t *testing.T) (*Manager, *redisrepo.CredentialStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	creds := redisrepo.NewCredentialStore(client)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewManager(creds, logger), creds
}

func TestManager_Current_Anonymous(t *testing.T) {
	mgr, _ := setupManager(t)

	sess := mgr.Current(context.Background())

	assert.True(t, sess.IsAnonymous())
	assert.Empty(t, sess.OwnerID)
}

func TestManager_Current_User(t *testing.T) {
	mgr, creds := setupManager(t)
	ctx := context.Background()

	require.NoError(t, creds.SetUser(ctx, &domain.Account{ID: "u-1", Name: "Ada"}))

	sess := mgr.Current(ctx)

	assert.True(t, sess.IsUser())
	assert.Equal(t, "u-1", sess.OwnerID)
	assert.Equal(t, "Ada", sess.Name)
}

func TestManager_Current_Seller(t *testing.T) {
	mgr, creds := setupManager(t)
	ctx := context.Background()

	require.NoError(t, creds.SetSeller(ctx, &domain.Account{ID: "s-1", Name: "Shop"}))

	sess := mgr.Current(ctx)

	assert.True(t, sess.IsSeller())
	assert.Equal(t, "s-1", sess.OwnerID)
}

func TestManager_Current_UserWinsOverSeller(t *testing.T) {
	mgr, creds := setupManager(t)
	ctx := context.Background()

	require.NoError(t, creds.SetSeller(ctx, &domain.Account{ID: "s-1"}))
	require.NoError(t, creds.SetUser(ctx, &domain.Account{ID: "u-1"}))

	sess := mgr.Current(ctx)

	assert.True(t, sess.IsUser())
	assert.Equal(t, "u-1", sess.OwnerID)
}
