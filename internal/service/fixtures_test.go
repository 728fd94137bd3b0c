package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"referral_rewards/internal/db"
	"referral_rewards/internal/db/dbtest"
	"referral_rewards/internal/domain"
	"referral_rewards/internal/metrics"
	"referral_rewards/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fixture struct {
	store *db.Store
	svc   *Services
	mr    *miniredis.Miniredis
	cache *utils.Cache
}

// newFixture wires services on a fresh database; withCache adds a miniredis backed cache
func newFixture(t *testing.T, withCache bool) *fixture {
	t.Helper()
	store := db.NewStore(dbtest.New(t))
	f := &fixture{store: store}
	if withCache {
		f.mr = miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: f.mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		f.cache = utils.NewCache(rdb, time.Minute)
	}
	f.svc = New(store, f.cache, metrics.New("test"), testSecret)
	f.svc.Auth.hashCost = bcrypt.MinCost
	return f
}

func (f *fixture) setReward(t *testing.T, reward int64) {
	t.Helper()
	require.NoError(t, f.store.SetSetting(context.Background(), domain.SettingReferralReward, fmt.Sprint(reward)))
}

func (f *fixture) register(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := f.svc.Auth.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    name + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) reload(t *testing.T, id uint) *domain.User {
	t.Helper()
	u, err := f.store.UserByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (f *fixture) set(t *testing.T, id uint, fields map[string]any) {
	t.Helper()
	require.NoError(t, f.store.UpdateUserFields(context.Background(), id, fields))
}
