// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// RecipesCollection is the Firestore collection holding the shared
	// recipe catalog, keyed by sparse incrementing integer document IDs.
	RecipesCollection = "recipes"

	// UsersCollection is the Firestore collection holding user profiles,
	// keyed by auth subject id.
	UsersCollection = "users"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("recipedb: not found")

// GetRecipe retrieves a recipe by its storage key.
func GetRecipe(ctx context.Context, store *firestore.Client, key string) (*Recipe, error) {
	doc, err := store.Collection(RecipesCollection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("recipedb: getting recipe %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("recipedb: getting recipe %q: %w", key, err)
	}
	var recipe Recipe
	if err := doc.DataTo(&recipe); err != nil {
		return nil, fmt.Errorf("recipedb: unmarshalling recipe %q: %w", key, err)
	}
	recipe.Key = doc.Ref.ID
	return &recipe, nil
}

// NextRecipeKey derives the storage key for a new recipe by reading the
// single highest existing key and incrementing it. Concurrent creators can
// race to the same key; the catalog has always accepted that.
func NextRecipeKey(ctx context.Context, store *firestore.Client) (int64, error) {
	doc, err := store.Collection(RecipesCollection).
		OrderBy("key", firestore.Desc).Limit(1).Documents(ctx).Next()
	if err != nil {
		if errors.Is(err, iterator.Done) {
			return 0, nil
		}
		return 0, fmt.Errorf("recipedb: reading last recipe key: %w", err)
	}
	var recipe Recipe
	if err := doc.DataTo(&recipe); err != nil {
		return 0, fmt.Errorf("recipedb: unmarshalling last recipe: %w", err)
	}
	return recipe.KeyIndex + 1, nil
}

// CreateRecipe writes a new recipe under the given storage key.
func CreateRecipe(ctx context.Context, store *firestore.Client, key int64, recipe *Recipe) error {
	recipe.KeyIndex = key
	doc := store.Collection(RecipesCollection).Doc(strconv.FormatInt(key, 10))
	if _, err := doc.Create(ctx, recipe); err != nil {
		return fmt.Errorf("recipedb: creating recipe %d: %w", key, err)
	}
	recipe.Key = doc.ID
	return nil
}

// GetUserProfile retrieves a user profile by auth subject id.
func GetUserProfile(ctx context.Context, store *firestore.Client, userID string) (*UserProfile, error) {
	doc, err := store.Collection(UsersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("recipedb: getting profile %q: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("recipedb: getting profile %q: %w", userID, err)
	}
	var profile UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("recipedb: unmarshalling profile %q: %w", userID, err)
	}
	profile.ID = userID
	return &profile, nil
}

// CreateUserProfile seeds a new user's profile with empty collections.
func CreateUserProfile(ctx context.Context, store *firestore.Client, profile *UserProfile) error {
	doc := store.Collection(UsersCollection).Doc(profile.ID)
	if _, err := doc.Set(ctx, profile); err != nil {
		return fmt.Errorf("recipedb: creating profile %q: %w", profile.ID, err)
	}
	return nil
}

// SaveUserProfile replaces the user's profile record as a whole.
func SaveUserProfile(ctx context.Context, store *firestore.Client, profile *UserProfile) error {
	doc := store.Collection(UsersCollection).Doc(profile.ID)
	if _, err := doc.Set(ctx, profile); err != nil {
		return fmt.Errorf("recipedb: saving profile %q: %w", profile.ID, err)
	}
	return nil
}

// AppendMyRecipe records a recipe id in the author's myRecipes list.
func AppendMyRecipe(ctx context.Context, store *firestore.Client, userID string, recipeID string) error {
	doc := store.Collection(UsersCollection).Doc(userID)
	_, err := doc.Update(ctx, []firestore.Update{
		{Path: "myRecipes", Value: firestore.ArrayUnion(recipeID)},
	})
	if err != nil {
		return fmt.Errorf("recipedb: appending recipe %q to profile %q: %w", recipeID, userID, err)
	}
	return nil
}

// ClearFavorites deletes a user's favorites field. Used as the corrective
// action when a profile snapshot no longer decodes.
func ClearFavorites(ctx context.Context, store *firestore.Client, userID string) error {
	doc := store.Collection(UsersCollection).Doc(userID)
	_, err := doc.Update(ctx, []firestore.Update{
		{Path: "favorites", Value: firestore.Delete},
	})
	if err != nil {
		return fmt.Errorf("recipedb: clearing favorites for %q: %w", userID, err)
	}
	return nil
}
