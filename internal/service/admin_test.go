package service

import (
	"context"
	"testing"

	"referral_rewards/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusRejectsUnknownValues(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	u := f.register(t, "alice")

	_, err := f.svc.Admin.UpdateStatus(ctx, u.ID, "banned")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, domain.StatusActive, f.reload(t, u.ID).Status)

	_, err = f.svc.Admin.UpdateStatus(ctx, 9999, domain.StatusInactive)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusAppliesKnownValues(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	u := f.register(t, "alice")

	for _, status := range []string{domain.StatusSuspended, domain.StatusInactive, domain.StatusActive} {
		updated, err := f.svc.Admin.UpdateStatus(ctx, u.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
		assert.Equal(t, status, f.reload(t, u.ID).Status)
	}
}

func TestDashboardAggregates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.setReward(t, 50)
	owner := f.register(t, "owner")
	a := f.register(t, "a")
	b := f.register(t, "b")
	_, err := f.svc.Referral.Apply(ctx, a.ID, owner.ReferralCode)
	require.NoError(t, err)
	_, err = f.svc.Referral.Apply(ctx, b.ID, owner.ReferralCode)
	require.NoError(t, err)
	f.set(t, b.ID, map[string]any{"status": domain.StatusSuspended})

	d, err := f.svc.Admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.TotalUsers)
	assert.Equal(t, int64(2), d.ActiveUsers)
	assert.Equal(t, int64(4), d.TotalTransactions)
	assert.Equal(t, int64(200), d.TotalCoinsDistributed)
	require.Len(t, d.RecentUsers, 3)
	assert.Equal(t, "b", d.RecentUsers[0].Name)
	require.Len(t, d.TopEarners, 3)
	assert.Equal(t, "owner", d.TopEarners[0].Name)
}

func TestDashboardCacheDroppedOnStatusChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	u := f.register(t, "alice")

	d, err := f.svc.Admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ActiveUsers)

	_, err = f.svc.Admin.UpdateStatus(ctx, u.ID, domain.StatusInactive)
	require.NoError(t, err)
	d, err = f.svc.Admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), d.ActiveUsers)
}

func TestListUsersPaginatesAndFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.register(t, "a")
	f.register(t, "b")
	c := f.register(t, "c")
	f.set(t, c.ID, map[string]any{"status": domain.StatusSuspended})

	page, err := f.svc.Admin.ListUsers(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Users, 2)

	page, err = f.svc.Admin.ListUsers(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Users, 1)

	page, err = f.svc.Admin.ListUsers(ctx, domain.StatusSuspended, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "c", page.Users[0].Name)

	_, err = f.svc.Admin.ListUsers(ctx, "banned", 1, 20)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
