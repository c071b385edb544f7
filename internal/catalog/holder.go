// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package catalog

import (
	"context"
	"sync/atomic"

	"github.com/curioswitch/cookingrecipes/internal/recipedb"
)

// Holder owns the in-memory catalog snapshot. It drains whole-catalog
// deliveries from the live subscription and replaces its snapshot atomically;
// snapshots are never merged, the last delivery wins.
type Holder struct {
	snapshot atomic.Pointer[[]recipedb.Recipe]
}

// NewHolder returns a Holder with an empty snapshot.
func NewHolder() *Holder {
	h := &Holder{}
	empty := []recipedb.Recipe(nil)
	h.snapshot.Store(&empty)
	return h
}

// Run consumes deliveries until the channel closes or ctx is cancelled.
func (h *Holder) Run(ctx context.Context, deliveries <-chan []recipedb.Recipe) {
	for {
		select {
		case <-ctx.Done():
			return
		case recipes, ok := <-deliveries:
			if !ok {
				return
			}
			h.Replace(recipes)
		}
	}
}

// Replace swaps in a new catalog snapshot.
func (h *Holder) Replace(recipes []recipedb.Recipe) {
	h.snapshot.Store(&recipes)
}

// Recipes returns the current snapshot. Callers must not mutate it.
func (h *Holder) Recipes() []recipedb.Recipe {
	return *h.snapshot.Load()
}
