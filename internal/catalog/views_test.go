// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/cookingrecipes/internal/recipedb"
)

func ids(recipes []recipedb.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func TestRecommendationsOrdering(t *testing.T) {
	recipes := []recipedb.Recipe{
		{ID: "a", Top10: 3},
		{ID: "b", Top10: 0},
		{ID: "c", Top10: 1},
		{ID: "d", Top10: 2},
	}

	got := Recommendations(recipes)
	assert.Equal(t, []string{"c", "d", "a"}, ids(got))
}

func TestRecommendationsExcludesUnfeatured(t *testing.T) {
	recipes := make([]recipedb.Recipe, 5)
	for i := range recipes {
		recipes[i] = recipedb.Recipe{ID: "same", Top10: 0}
	}
	assert.Empty(t, Recommendations(recipes))
}

func TestRecommendationsStableOnTie(t *testing.T) {
	recipes := []recipedb.Recipe{
		{ID: "a", Top10: 1},
		{ID: "b", Top10: 1},
		{ID: "c", Top10: 1},
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids(Recommendations(recipes)))
}

func TestOwnedEmptyIDsYieldsEmpty(t *testing.T) {
	recipes := []recipedb.Recipe{{ID: "a"}, {ID: "b"}}
	assert.Empty(t, Owned(recipes, nil))
	assert.Empty(t, Owned(recipes, []string{}))
}

func TestFavoritesMembership(t *testing.T) {
	recipes := []recipedb.Recipe{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := Favorites(recipes, []string{"c", "a", "missing"})
	// Catalog order is preserved; the id list does not impose one.
	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestByTagVocabularyOrderAndEmptyGroups(t *testing.T) {
	recipes := []recipedb.Recipe{
		{ID: "a", Tags: []string{"Italian", "Vegan"}},
		{ID: "b", Tags: []string{"Japanese"}},
	}

	groups := ByTag(recipes)
	require.Len(t, groups, len(recipedb.MainTags))
	for i, tag := range recipedb.MainTags {
		assert.Equal(t, tag, groups[i].Tag)
	}

	byTag := make(map[string][]string)
	for _, g := range groups {
		byTag[g.Tag] = ids(g.Recipes)
	}
	assert.Equal(t, []string{"a"}, byTag["Italian"])
	assert.Equal(t, []string{"a"}, byTag["Vegan"])
	assert.Equal(t, []string{"b"}, byTag["Japanese"])
	assert.Empty(t, byTag["Greek"])
}

func TestByTagUntaggedPartitionCoversCatalog(t *testing.T) {
	recipes := []recipedb.Recipe{
		{ID: "a", Tags: []string{"Italian"}},
		{ID: "b", Tags: []string{"Fusion"}}, // outside the vocabulary
		{ID: "c"},
		{ID: "d", Tags: []string{"Vegan", "Greek"}},
	}

	reached := make(map[string]bool)
	for _, g := range ByTag(recipes) {
		for _, r := range g.Recipes {
			reached[r.ID] = true
		}
	}
	untagged := Untagged(recipes)
	for _, r := range untagged {
		reached[r.ID] = true
	}

	for _, r := range recipes {
		assert.True(t, reached[r.ID], "recipe %s not reachable", r.ID)
	}
	assert.Equal(t, []string{"b", "c"}, ids(untagged))
}

func TestHomeViewsEndToEnd(t *testing.T) {
	recipes := []recipedb.Recipe{
		{ID: "r1", Top10: 2, Tags: []string{"Italian"}},
		{ID: "r2", Top10: 1, Tags: []string{}},
	}

	assert.Equal(t, []string{"r2", "r1"}, ids(Recommendations(recipes)))

	var italian []string
	for _, g := range ByTag(recipes) {
		if g.Tag == "Italian" {
			italian = ids(g.Recipes)
		}
	}
	assert.Equal(t, []string{"r1"}, italian)
	assert.Equal(t, []string{"r2"}, ids(Untagged(recipes)))
}

func TestHolderReplacesWholeSnapshot(t *testing.T) {
	h := NewHolder()
	assert.Empty(t, h.Recipes())

	deliveries := make(chan []recipedb.Recipe)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		h.Run(ctx, deliveries)
		close(done)
	}()

	deliveries <- []recipedb.Recipe{{ID: "a"}, {ID: "b"}}
	deliveries <- []recipedb.Recipe{{ID: "c"}}

	require.Eventually(t, func() bool {
		snap := h.Recipes()
		return len(snap) == 1 && snap[0].ID == "c"
	}, time.Second, time.Millisecond)

	close(deliveries)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("holder did not stop on channel close")
	}
}
