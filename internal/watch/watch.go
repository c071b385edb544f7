// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package watch runs the live subscriptions against Firestore. Each watcher
// is a background task delivering whole-value snapshots over a channel:
// every delivery replaces the previous one, nothing is merged, and a
// delivery that was never consumed is dropped when a fresher one arrives.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/cenkalti/backoff/v5"
	"google.golang.org/api/iterator"

	"github.com/curioswitch/cookingrecipes/internal/recipedb"
)

// ErrProfileMissing is delivered when the user's remote profile record does
// not exist.
var ErrProfileMissing = errors.New("watch: profile record missing")

// CatalogWatcher subscribes to the recipe catalog and delivers the full
// collection on every change.
type CatalogWatcher struct {
	store      *firestore.Client
	deliveries chan []recipedb.Recipe
}

// NewCatalogWatcher returns a watcher for the recipe catalog.
func NewCatalogWatcher(store *firestore.Client) *CatalogWatcher {
	return &CatalogWatcher{
		store:      store,
		deliveries: make(chan []recipedb.Recipe, 1),
	}
}

// Deliveries returns the snapshot channel.
func (w *CatalogWatcher) Deliveries() <-chan []recipedb.Recipe {
	return w.deliveries
}

// Run subscribes and keeps delivering until ctx is cancelled, restarting the
// stream with exponential backoff after failures.
func (w *CatalogWatcher) Run(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	for {
		delivered, err := w.watch(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if delivered > 0 {
			b.Reset()
		}
		slog.ErrorContext(ctx, "watch: recipe subscription failed", "error", err)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(b.NextBackOff()):
		}
	}
}

func (w *CatalogWatcher) watch(ctx context.Context) (int, error) {
	iter := w.store.Collection(recipedb.RecipesCollection).Snapshots(ctx)
	defer iter.Stop()

	delivered := 0
	for {
		snap, err := iter.Next()
		if err != nil {
			return delivered, err
		}
		deliver(w.deliveries, decodeCatalog(ctx, snap))
		delivered++
	}
}

func decodeCatalog(ctx context.Context, snap *firestore.QuerySnapshot) []recipedb.Recipe {
	var recipes []recipedb.Recipe
	docs := snap.Documents
	for {
		doc, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			return recipes
		}
		if err != nil {
			slog.ErrorContext(ctx, "watch: iterating catalog snapshot", "error", err)
			return recipes
		}
		var recipe recipedb.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			slog.WarnContext(ctx, "watch: skipping undecodable recipe", "key", doc.Ref.ID, "error", err)
			continue
		}
		recipe.Key = doc.Ref.ID
		recipes = append(recipes, recipe)
	}
}

// ProfileEvent is one delivery from a profile subscription: a full profile
// snapshot, or an error reported once before the subscription keeps going.
type ProfileEvent struct {
	Profile *recipedb.UserProfile
	Err     error
}

// ProfileWatcher subscribes to a single user's profile record.
type ProfileWatcher struct {
	store  *firestore.Client
	userID string
	events chan ProfileEvent
}

// NewProfileWatcher returns a watcher for the given user's profile.
func NewProfileWatcher(store *firestore.Client, userID string) *ProfileWatcher {
	return &ProfileWatcher{
		store:  store,
		userID: userID,
		events: make(chan ProfileEvent, 1),
	}
}

// Events returns the event channel.
func (w *ProfileWatcher) Events() <-chan ProfileEvent {
	return w.events
}

// Run subscribes and keeps delivering until ctx is cancelled, restarting the
// stream with exponential backoff after failures.
func (w *ProfileWatcher) Run(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	for {
		delivered, err := w.watch(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if delivered > 0 {
			b.Reset()
		}
		slog.ErrorContext(ctx, "watch: profile subscription failed", "user", w.userID, "error", err)
		deliver(w.events, ProfileEvent{Err: err})
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(b.NextBackOff()):
		}
	}
}

func (w *ProfileWatcher) watch(ctx context.Context) (int, error) {
	iter := w.store.Collection(recipedb.UsersCollection).Doc(w.userID).Snapshots(ctx)
	defer iter.Stop()

	delivered := 0
	for {
		snap, err := iter.Next()
		if err != nil {
			return delivered, err
		}
		if !snap.Exists() {
			deliver(w.events, ProfileEvent{Err: ErrProfileMissing})
			continue
		}
		var profile recipedb.UserProfile
		if err := snap.DataTo(&profile); err != nil {
			// A profile that stops decoding has historically meant a corrupt
			// favorites list; drop the field so the next snapshot heals.
			slog.ErrorContext(ctx, "watch: undecodable profile, clearing favorites", "user", w.userID, "error", err)
			if cerr := recipedb.ClearFavorites(ctx, w.store, w.userID); cerr != nil {
				slog.ErrorContext(ctx, "watch: clearing favorites", "user", w.userID, "error", cerr)
			}
			deliver(w.events, ProfileEvent{Err: err})
			continue
		}
		profile.ID = w.userID
		delivered++
		deliver(w.events, ProfileEvent{Profile: &profile})
	}
}

// deliver replaces any unconsumed value in a single-slot channel with v.
func deliver[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
