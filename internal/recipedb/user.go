// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import (
	"maps"
	"slices"
)

// Rating is a single rating a user gave to a recipe. The same shape is
// aggregated on the recipe side as RatingSum / RatedNumber.
type Rating struct {
	// ID is the id of the rated recipe.
	ID string `firestore:"id"`

	// Rating is the rating value, 0.0 to 5.0 in half steps.
	Rating float64 `firestore:"rating"`
}

// UserProfile represents a user's account record stored in Firestore. The
// document ID equals the auth subject id.
//
// Ratings and Favorites are append-only lists addressed by position: entries
// are keyed by their integer index as a string, and removal leaves holes
// rather than reindexing.
type UserProfile struct {
	// ID is the unique identifier of the user, equal to the auth subject id.
	ID string `firestore:"id"`

	// Name is the user's display name.
	Name string `firestore:"name"`

	// Email is the user's email address.
	Email string `firestore:"email"`

	// Picture is the profile picture URL, percent-encoded at rest.
	Picture string `firestore:"picture"`

	// MyRecipes are the ids of recipes the user authored, in creation order.
	MyRecipes []string `firestore:"myRecipes"`

	// Ratings are the user's ratings keyed by storage index. A user has at
	// most one entry per recipe id.
	Ratings map[string]Rating `firestore:"ratings"`

	// Favorites are favorited recipe ids keyed by storage index.
	Favorites map[string]string `firestore:"favorites"`

	// CommentCount is a monotonic counter of comments the user has authored,
	// across all recipes.
	CommentCount int `firestore:"commentCount"`
}

// Clone returns a copy of the profile sharing no mutable state with the
// receiver. Profiles handed out from the session cache are read by concurrent
// goroutines, so edits must go through a clone.
func (p *UserProfile) Clone() *UserProfile {
	c := *p
	c.MyRecipes = slices.Clone(p.MyRecipes)
	c.Ratings = maps.Clone(p.Ratings)
	c.Favorites = maps.Clone(p.Favorites)
	return &c
}

// RatingFor returns the storage index and value of the user's rating for the
// given recipe id, or ok == false if the user has not rated it.
func (p *UserProfile) RatingFor(recipeID string) (int, Rating, bool) {
	for _, i := range sortedIndexes(p.Ratings) {
		if r := p.Ratings[indexKey(i)]; r.ID == recipeID {
			return i, r, true
		}
	}
	return -1, Rating{}, false
}

// LastRatingIndex returns the highest storage index in the rating list, or -1
// when the list is empty.
func (p *UserProfile) LastRatingIndex() int {
	return lastIndex(p.Ratings)
}

// RatingList returns the user's ratings ordered by storage index.
func (p *UserProfile) RatingList() []Rating {
	ratings := make([]Rating, 0, len(p.Ratings))
	for _, i := range sortedIndexes(p.Ratings) {
		ratings = append(ratings, p.Ratings[indexKey(i)])
	}
	return ratings
}

// FavoriteIndexOf returns the storage index where the given recipe id
// currently sits in the favorite list, or ok == false if absent.
func (p *UserProfile) FavoriteIndexOf(recipeID string) (int, bool) {
	for _, i := range sortedIndexes(p.Favorites) {
		if p.Favorites[indexKey(i)] == recipeID {
			return i, true
		}
	}
	return -1, false
}

// LastFavoriteIndex returns the highest storage index in the favorite list,
// or -1 when the list is empty.
func (p *UserProfile) LastFavoriteIndex() int {
	return lastIndex(p.Favorites)
}

// FavoriteIDs returns the favorited recipe ids ordered by storage index.
func (p *UserProfile) FavoriteIDs() []string {
	ids := make([]string, 0, len(p.Favorites))
	for _, i := range sortedIndexes(p.Favorites) {
		ids = append(ids, p.Favorites[indexKey(i)])
	}
	return ids
}

// IsFavorite reports whether the given recipe id is in the favorite list.
func (p *UserProfile) IsFavorite(recipeID string) bool {
	_, ok := p.FavoriteIndexOf(recipeID)
	return ok
}
