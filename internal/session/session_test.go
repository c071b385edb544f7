// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/cookingrecipes/internal/recipedb"
	"github.com/curioswitch/cookingrecipes/internal/watch"
)

func testManager(t *testing.T) (*Manager, chan watch.ProfileEvent) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	events := make(chan watch.ProfileEvent)
	m := NewManager(ctx, nil)
	m.newEvents = func(context.Context, string) <-chan watch.ProfileEvent {
		return events
	}
	return m, events
}

func waitForState(t *testing.T, m *Manager, userID string, want State) Status {
	t.Helper()
	var status Status
	require.Eventually(t, func() bool {
		status = m.Status(userID)
		return status.State == want
	}, time.Second, time.Millisecond)
	return status
}

func TestIdleWithoutSession(t *testing.T) {
	m, _ := testManager(t)
	assert.Equal(t, StateIdle, m.Status("u1").State)
	assert.Nil(t, m.Profile("u1"))
}

func TestBeginLoadsThenSucceeds(t *testing.T) {
	m, events := testManager(t)

	s := m.Begin("u1")
	assert.Equal(t, StateLoading, s.Status().State)

	events <- watch.ProfileEvent{Profile: &recipedb.UserProfile{ID: "u1", Name: "Ada"}}

	status := waitForState(t, m, "u1", StateSuccess)
	require.NotNil(t, status.Profile)
	assert.Equal(t, "Ada", status.Profile.Name)
}

func TestBeginIsIdempotent(t *testing.T) {
	m, _ := testManager(t)
	s1 := m.Begin("u1")
	s2 := m.Begin("u1")
	assert.Same(t, s1, s2)
}

func TestLoadingToError(t *testing.T) {
	m, events := testManager(t)
	m.Begin("u1")

	events <- watch.ProfileEvent{Err: errors.New("no remote value")}

	status := waitForState(t, m, "u1", StateError)
	assert.Equal(t, "no remote value", status.Message)
	assert.Nil(t, status.Profile)
}

func TestErrorKeepsCacheAndRecovers(t *testing.T) {
	m, events := testManager(t)
	m.Begin("u1")

	events <- watch.ProfileEvent{Profile: &recipedb.UserProfile{ID: "u1", Name: "Ada"}}
	waitForState(t, m, "u1", StateSuccess)

	// A listener error is reported once; the cached profile stays readable.
	events <- watch.ProfileEvent{Err: errors.New("listener hiccup")}
	status := waitForState(t, m, "u1", StateError)
	require.NotNil(t, status.Profile)
	assert.Equal(t, "Ada", status.Profile.Name)

	// The subscription keeps delivering; the next snapshot replaces the
	// payload and clears the error.
	events <- watch.ProfileEvent{Profile: &recipedb.UserProfile{ID: "u1", Name: "Ada2"}}
	status = waitForState(t, m, "u1", StateSuccess)
	assert.Equal(t, "Ada2", status.Profile.Name)
	assert.Empty(t, status.Message)
}

func TestSuccessReplacedNotMerged(t *testing.T) {
	m, events := testManager(t)
	m.Begin("u1")

	events <- watch.ProfileEvent{Profile: &recipedb.UserProfile{
		ID:        "u1",
		Favorites: map[string]string{"0": "r1"},
	}}
	waitForState(t, m, "u1", StateSuccess)

	events <- watch.ProfileEvent{Profile: &recipedb.UserProfile{ID: "u1"}}
	require.Eventually(t, func() bool {
		p := m.Profile("u1")
		return p != nil && len(p.Favorites) == 0
	}, time.Second, time.Millisecond)
}

func TestCachedProfileUntouchedByClonedEdits(t *testing.T) {
	m, events := testManager(t)
	m.Begin("u1")

	events <- watch.ProfileEvent{Profile: &recipedb.UserProfile{
		ID:        "u1",
		Name:      "Ada",
		Favorites: map[string]string{"0": "r1"},
	}}
	waitForState(t, m, "u1", StateSuccess)

	// Edits to a cached profile go through a clone so concurrent readers of
	// the cache never observe them.
	edited := m.Profile("u1").Clone()
	edited.Name = "Grace"
	edited.Favorites["0"] = "r9"

	cached := m.Profile("u1")
	assert.Equal(t, "Ada", cached.Name)
	assert.Equal(t, "r1", cached.Favorites["0"])
}

func TestEndClearsSession(t *testing.T) {
	m, events := testManager(t)
	m.Begin("u1")
	events <- watch.ProfileEvent{Profile: &recipedb.UserProfile{ID: "u1"}}
	waitForState(t, m, "u1", StateSuccess)

	m.End("u1")
	assert.Equal(t, StateIdle, m.Status("u1").State)
	assert.Nil(t, m.Profile("u1"))

	// Ending an unknown session is a no-op.
	m.End("u2")

	// The machine is reentrant: a new session starts fresh.
	s := m.Begin("u1")
	assert.Equal(t, StateLoading, s.Status().State)
}
