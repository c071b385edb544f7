// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package mutate translates user actions into the remote writes that keep the
// per-user index lists and the recipe's rating aggregate in sync. Plans are
// computed from the caller's current snapshots; the writes themselves are
// independent field updates with no transaction, so concurrent writers can
// lose updates (last write wins per field). That has always been the
// contract of this data set.
package mutate

import (
	"github.com/curioswitch/cookingrecipes/internal/recipedb"
)

// RatingPlan describes the writes for a rating action.
type RatingPlan struct {
	// Index is the position in the user's rating list to write.
	Index int

	// Rating is the entry written at Index.
	Rating recipedb.Rating

	// RatingSum is the recipe's new ratingSum.
	RatingSum float64

	// RatedNumber is the recipe's new ratedNumber. It only changes for a
	// first rating.
	RatedNumber int
}

// PlanRating computes the writes for a user rating a recipe.
//
// A first rating appends at lastIndex+1 and counts: ratedNumber increments
// and ratingSum grows by the value. Re-rating overwrites the existing entry
// but still grows ratingSum by the full new value without subtracting the
// prior one, and leaves ratedNumber unchanged. This matches how the live
// aggregates were always written, so the average drifts when users change a
// rating.
func PlanRating(profile *recipedb.UserProfile, recipe *recipedb.Recipe, value float64) RatingPlan {
	plan := RatingPlan{
		Rating:      recipedb.Rating{ID: recipe.ID, Rating: value},
		RatingSum:   recipe.RatingSum + value,
		RatedNumber: recipe.RatedNumber,
	}
	if i, _, ok := profile.RatingFor(recipe.ID); ok {
		plan.Index = i
		return plan
	}
	plan.Index = profile.LastRatingIndex() + 1
	plan.RatedNumber = recipe.RatedNumber + 1
	return plan
}

// FavoritePlan describes the write for a favorite toggle.
type FavoritePlan struct {
	// Index is the position in the user's favorite list to write or delete.
	Index int

	// RecipeID is the id appended when turning the favorite on.
	RecipeID string

	// Remove is true for a positional delete (favorite turned off).
	Remove bool
}

// PlanFavoriteOn appends the recipe id after the highest occupied position.
func PlanFavoriteOn(profile *recipedb.UserProfile, recipeID string) FavoritePlan {
	return FavoritePlan{
		Index:    profile.LastFavoriteIndex() + 1,
		RecipeID: recipeID,
	}
}

// PlanFavoriteOff deletes the entry at the position the caller observed the
// recipe id at when toggling. The delete is positional, not value-based: a
// stale position removes whatever sits there now.
func PlanFavoriteOff(position int) FavoritePlan {
	return FavoritePlan{Index: position, Remove: true}
}

// CommentPlan describes the writes for posting a comment.
type CommentPlan struct {
	// Index is the comment's position on the recipe, equal to the recipe's
	// comment count at post time.
	Index int

	// Comment is the entry written at Index.
	Comment recipedb.Comment

	// CommentCount is the author's new profile-wide comment counter.
	CommentCount int
}

// PlanComment computes the writes for a user commenting on a recipe. The
// comment lands on the recipe; the counter incremented is the author's
// profile-wide one, not a per-recipe field.
func PlanComment(profile *recipedb.UserProfile, recipe *recipedb.Recipe, text string, timestampMillis int64) CommentPlan {
	return CommentPlan{
		Index: recipe.CommentCount(),
		Comment: recipedb.Comment{
			Username:  profile.Name,
			Picture:   profile.Picture,
			Timestamp: timestampMillis,
			Comment:   text,
		},
		CommentCount: profile.CommentCount + 1,
	}
}
