// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package mutate

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/cookingrecipes/internal/recipedb"
)

func TestPlanRatingFirstRating(t *testing.T) {
	profile := &recipedb.UserProfile{
		ID: "u1",
		Ratings: map[string]recipedb.Rating{
			"0": {ID: "other", Rating: 2},
		},
	}
	recipe := &recipedb.Recipe{ID: "r1", Key: "7", RatingSum: 8, RatedNumber: 2}

	plan := PlanRating(profile, recipe, 4.5)

	assert.Equal(t, 1, plan.Index, "first rating appends at lastIndex+1")
	assert.Equal(t, recipedb.Rating{ID: "r1", Rating: 4.5}, plan.Rating)
	assert.InDelta(t, 12.5, plan.RatingSum, 1e-9)
	assert.Equal(t, 3, plan.RatedNumber)
}

func TestPlanRatingFirstRatingEmptyList(t *testing.T) {
	profile := &recipedb.UserProfile{ID: "u1"}
	recipe := &recipedb.Recipe{ID: "r1"}

	plan := PlanRating(profile, recipe, 3)
	assert.Equal(t, 0, plan.Index)
	assert.Equal(t, 1, plan.RatedNumber)
	assert.InDelta(t, 3, plan.RatingSum, 1e-9)
}

func TestPlanRatingRerateKeepsCumulativeSum(t *testing.T) {
	// Re-rating overwrites the user's entry, but ratingSum still grows by
	// the full new value and ratedNumber stays put. The stored aggregates
	// have always drifted this way on updates; do not "fix" this here
	// without migrating the data.
	profile := &recipedb.UserProfile{
		ID: "u1",
		Ratings: map[string]recipedb.Rating{
			"0": {ID: "other", Rating: 2},
			"1": {ID: "r1", Rating: 3},
		},
	}
	recipe := &recipedb.Recipe{ID: "r1", Key: "7", RatingSum: 10, RatedNumber: 3}

	plan := PlanRating(profile, recipe, 5)

	assert.Equal(t, 1, plan.Index, "overwrites the existing position")
	assert.InDelta(t, 15, plan.RatingSum, 1e-9, "cumulative, not replacing")
	assert.Equal(t, 3, plan.RatedNumber, "unchanged on update")
}

func TestFavoriteToggleRoundTrip(t *testing.T) {
	profile := &recipedb.UserProfile{
		ID: "u1",
		Favorites: map[string]string{
			"0": "a",
			"1": "b",
		},
	}

	on := PlanFavoriteOn(profile, "c")
	assert.Equal(t, 2, on.Index)
	assert.Equal(t, "c", on.RecipeID)
	assert.False(t, on.Remove)

	// Apply the append the way the store would.
	profile.Favorites[strconv.Itoa(on.Index)] = on.RecipeID

	pos, ok := profile.FavoriteIndexOf("c")
	require.True(t, ok)
	off := PlanFavoriteOff(pos)
	assert.Equal(t, 2, off.Index)
	assert.True(t, off.Remove)

	delete(profile.Favorites, strconv.Itoa(off.Index))
	assert.Equal(t, map[string]string{"0": "a", "1": "b"}, profile.Favorites)
}

func TestFavoriteAppendSkipsHoles(t *testing.T) {
	profile := &recipedb.UserProfile{
		Favorites: map[string]string{"0": "a", "3": "d"},
	}
	plan := PlanFavoriteOn(profile, "e")
	assert.Equal(t, 4, plan.Index, "holes from positional deletes are never refilled")
}

func TestPlanComment(t *testing.T) {
	profile := &recipedb.UserProfile{
		ID:           "u1",
		Name:         "Ada",
		Picture:      "pic",
		CommentCount: 7,
	}
	recipe := &recipedb.Recipe{
		ID:  "r1",
		Key: "3",
		Comments: map[string]recipedb.Comment{
			"0": {Comment: "existing"},
			"1": {Comment: "existing"},
		},
	}

	plan := PlanComment(profile, recipe, "lovely", 1234)

	assert.Equal(t, 2, plan.Index, "comment index equals the recipe's comment count")
	assert.Equal(t, "Ada", plan.Comment.Username)
	assert.Equal(t, "pic", plan.Comment.Picture)
	assert.Equal(t, int64(1234), plan.Comment.Timestamp)
	assert.Equal(t, "lovely", plan.Comment.Comment)
	assert.Equal(t, 8, plan.CommentCount, "the profile-wide counter, not a per-recipe one")
}

func TestPlanCommentFirstComment(t *testing.T) {
	profile := &recipedb.UserProfile{ID: "u1", Name: "Ada"}
	recipe := &recipedb.Recipe{ID: "r1"}

	plan := PlanComment(profile, recipe, "first!", 1)
	assert.Equal(t, 0, plan.Index)
	assert.Equal(t, 1, plan.CommentCount)
}
