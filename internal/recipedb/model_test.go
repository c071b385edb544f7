// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		sum     float64
		num     int
		average float64
	}{
		{name: "unrated", sum: 0, num: 0, average: 0},
		{name: "single", sum: 4.5, num: 1, average: 4.5},
		{name: "several", sum: 12, num: 4, average: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Recipe{RatingSum: tc.sum, RatedNumber: tc.num}
			assert.InDelta(t, tc.average, r.AverageRating(), 1e-9)
		})
	}
}

func TestRecipeCommentList(t *testing.T) {
	r := Recipe{Comments: map[string]Comment{
		"2":  {Comment: "third"},
		"0":  {Comment: "first"},
		"1":  {Comment: "second"},
		"10": {Comment: "last"},
	}}

	list := r.CommentList()
	require.Len(t, list, 4)
	assert.Equal(t, "first", list[0].Comment)
	assert.Equal(t, "second", list[1].Comment)
	assert.Equal(t, "third", list[2].Comment)
	assert.Equal(t, "last", list[3].Comment)
	assert.Equal(t, 4, r.CommentCount())
}

func TestRecipeCommentsNilDistinctFromEmpty(t *testing.T) {
	var r Recipe
	assert.Nil(t, r.Comments)
	assert.Equal(t, 0, r.CommentCount())
	assert.Empty(t, r.CommentList())
}

func TestProfileRatingFor(t *testing.T) {
	p := UserProfile{Ratings: map[string]Rating{
		"0": {ID: "r1", Rating: 3},
		"3": {ID: "r2", Rating: 4.5},
	}}

	i, r, ok := p.RatingFor("r2")
	require.True(t, ok)
	assert.Equal(t, 3, i)
	assert.InDelta(t, 4.5, r.Rating, 1e-9)

	_, _, ok = p.RatingFor("r3")
	assert.False(t, ok)

	assert.Equal(t, 3, p.LastRatingIndex())
}

func TestProfileRatingForEmpty(t *testing.T) {
	var p UserProfile
	_, _, ok := p.RatingFor("r1")
	assert.False(t, ok)
	assert.Equal(t, -1, p.LastRatingIndex())
}

func TestProfileFavoritesSparse(t *testing.T) {
	// Positional deletes leave holes; appends go after the highest index.
	p := UserProfile{Favorites: map[string]string{
		"0": "r1",
		"2": "r3",
	}}

	assert.Equal(t, 2, p.LastFavoriteIndex())
	assert.Equal(t, []string{"r1", "r3"}, p.FavoriteIDs())

	i, ok := p.FavoriteIndexOf("r3")
	require.True(t, ok)
	assert.Equal(t, 2, i)

	assert.True(t, p.IsFavorite("r1"))
	assert.False(t, p.IsFavorite("r2"))
}

func TestIndexMapIgnoresNonNumericKeys(t *testing.T) {
	p := UserProfile{Favorites: map[string]string{
		"0":   "r1",
		"bad": "r9",
	}}
	assert.Equal(t, []string{"r1"}, p.FavoriteIDs())
	assert.Equal(t, 0, p.LastFavoriteIndex())
}

func TestProfileCloneSharesNothing(t *testing.T) {
	p := &UserProfile{
		ID:        "u1",
		Name:      "Ada",
		MyRecipes: []string{"r1"},
		Ratings:   map[string]Rating{"0": {ID: "r1", Rating: 3}},
		Favorites: map[string]string{"0": "r1"},
	}

	c := p.Clone()
	c.Name = "Grace"
	c.MyRecipes[0] = "r9"
	c.Ratings["0"] = Rating{ID: "r9", Rating: 1}
	c.Favorites["0"] = "r9"

	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, []string{"r1"}, p.MyRecipes)
	assert.Equal(t, Rating{ID: "r1", Rating: 3}, p.Ratings["0"])
	assert.Equal(t, "r1", p.Favorites["0"])
}

func TestProfileCloneKeepsNilCollections(t *testing.T) {
	c := (&UserProfile{ID: "u1"}).Clone()
	assert.Nil(t, c.MyRecipes)
	assert.Nil(t, c.Ratings)
	assert.Nil(t, c.Favorites)
}

func TestURLFieldRoundTrip(t *testing.T) {
	u := "https://example.com/images/recipe thumb.png?size=large&v=1"
	encoded := EncodeURLField(u)
	assert.NotContains(t, encoded, " ")
	assert.Equal(t, u, DecodeURLField(encoded))
}

func TestDecodeURLFieldKeepsUndecodable(t *testing.T) {
	// A stray percent sign from an unencoded legacy record.
	assert.Equal(t, "100%", DecodeURLField("100%"))
}
