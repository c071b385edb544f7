// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package mutate

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/curioswitch/cookingrecipes/internal/recipedb"
)

// Coordinator issues the remote writes for user actions. Writes are
// fire-and-forget: failures are logged, never returned, matching the
// contract the app has always had. Callers report acceptance of the action,
// not durability.
type Coordinator struct {
	store *firestore.Client
}

// NewCoordinator returns a Coordinator writing through the given client.
func NewCoordinator(store *firestore.Client) *Coordinator {
	return &Coordinator{store: store}
}

// Rate applies a rating action for the user. profile and recipe are the
// caller's current snapshots.
func (c *Coordinator) Rate(ctx context.Context, profile *recipedb.UserProfile, recipe *recipedb.Recipe, value float64) RatingPlan {
	plan := PlanRating(profile, recipe, value)

	user := c.store.Collection(recipedb.UsersCollection).Doc(profile.ID)
	if _, err := user.Update(ctx, []firestore.Update{
		{Path: "ratings." + strconv.Itoa(plan.Index), Value: plan.Rating},
	}); err != nil {
		slog.ErrorContext(ctx, "mutate: writing user rating", "user", profile.ID, "recipe", recipe.Key, "error", err)
	}

	updates := []firestore.Update{
		{Path: "ratingSum", Value: plan.RatingSum},
	}
	if plan.RatedNumber != recipe.RatedNumber {
		updates = append(updates, firestore.Update{Path: "ratedNumber", Value: plan.RatedNumber})
	}
	rec := c.store.Collection(recipedb.RecipesCollection).Doc(recipe.Key)
	if _, err := rec.Update(ctx, updates); err != nil {
		slog.ErrorContext(ctx, "mutate: writing recipe rating aggregate", "recipe", recipe.Key, "error", err)
	}

	return plan
}

// SetFavorite toggles a favorite for the user. position is the index the
// caller observed the recipe id at and is only used when turning off.
func (c *Coordinator) SetFavorite(ctx context.Context, profile *recipedb.UserProfile, recipeID string, position int, favorite bool) FavoritePlan {
	var plan FavoritePlan
	if favorite {
		plan = PlanFavoriteOn(profile, recipeID)
	} else {
		plan = PlanFavoriteOff(position)
	}

	value := any(plan.RecipeID)
	if plan.Remove {
		value = firestore.Delete
	}
	user := c.store.Collection(recipedb.UsersCollection).Doc(profile.ID)
	if _, err := user.Update(ctx, []firestore.Update{
		{Path: "favorites." + strconv.Itoa(plan.Index), Value: value},
	}); err != nil {
		slog.ErrorContext(ctx, "mutate: writing favorite", "user", profile.ID, "recipe", recipeID, "error", err)
	}

	return plan
}

// Comment posts a comment on the recipe and bumps the author's profile-wide
// comment counter.
func (c *Coordinator) Comment(ctx context.Context, profile *recipedb.UserProfile, recipe *recipedb.Recipe, text string) CommentPlan {
	plan := PlanComment(profile, recipe, text, time.Now().UnixMilli())

	rec := c.store.Collection(recipedb.RecipesCollection).Doc(recipe.Key)
	if _, err := rec.Update(ctx, []firestore.Update{
		{Path: "comments." + strconv.Itoa(plan.Index), Value: plan.Comment},
	}); err != nil {
		slog.ErrorContext(ctx, "mutate: writing comment", "recipe", recipe.Key, "error", err)
	}

	user := c.store.Collection(recipedb.UsersCollection).Doc(profile.ID)
	if _, err := user.Update(ctx, []firestore.Update{
		{Path: "commentCount", Value: plan.CommentCount},
	}); err != nil {
		slog.ErrorContext(ctx, "mutate: writing comment count", "user", profile.ID, "error", err)
	}

	return plan
}
