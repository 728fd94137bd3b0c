package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProfileUpdateTouchesOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	u := f.register(t, "alice")
	f.set(t, u.ID, map[string]any{"phone": "555-0100"})

	updated, err := f.svc.Profile.Update(ctx, u.ID, ProfileInput{Company: strPtr("Acme"), Avatar: strPtr("https://img/a.png")})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Name)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "https://img/a.png", updated.Avatar)

	updated, err = f.svc.Profile.Update(ctx, u.ID, ProfileInput{Name: strPtr("Alice B"), Phone: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Empty(t, updated.Phone)
	assert.Equal(t, u.ReferralCode, updated.ReferralCode)
}

func TestProfileUpdateRejectsBlankName(t *testing.T) {
	f := newFixture(t, false)
	u := f.register(t, "alice")

	_, err := f.svc.Profile.Update(context.Background(), u.ID, ProfileInput{Name: strPtr("   ")})
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, "alice", f.reload(t, u.ID).Name)
}

func TestProfileUnknownUser(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.svc.Profile.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Profile.Update(context.Background(), 42, ProfileInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}
