// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

// Difficulty is the preparation difficulty of a recipe.
type Difficulty string

const (
	DifficultyVeryEasy Difficulty = "Very Easy"
	DifficultyEasy     Difficulty = "Easy"
	DifficultyMedium   Difficulty = "Medium"
	DifficultyHard     Difficulty = "Hard"
	DifficultyVeryHard Difficulty = "Very Hard"
)

// MainTags is the fixed vocabulary of cuisine and diet tags used to group
// recipes on the home screen. Recipes may carry tags outside this vocabulary;
// those only surface through the untagged view.
var MainTags = []string{
	"Vegan",
	"Vegetarian",
	"Italian",
	"Greek",
	"French",
	"Spanish",
	"Japanese",
	"Cuban",
	"German",
}

// Recipe represents a recipe stored in Firestore.
type Recipe struct {
	// Key is the storage key of the recipe, assigned by the catalog on write.
	// It is the document ID and is empty until the recipe is persisted.
	Key string `firestore:"-"`

	// KeyIndex is the numeric value of Key. It is stored so the next storage
	// key can be derived by querying the single highest existing key.
	KeyIndex int64 `firestore:"key"`

	// ID is the unique identifier of the recipe, assigned by the author's
	// client at creation and stable across its lifetime.
	ID string `firestore:"id"`

	// AuthorName is the display name of the user who created the recipe.
	AuthorName string `firestore:"authorName"`

	// Name is the name of the recipe.
	Name string `firestore:"name"`

	// Description is the description of the recipe.
	Description string `firestore:"description"`

	// Difficulty is the preparation difficulty.
	Difficulty Difficulty `firestore:"difficulty"`

	// Portions is the number of portions the recipe yields.
	Portions int `firestore:"portions"`

	// Time is the preparation time in minutes.
	Time int `firestore:"time"`

	// Ingredients are the ingredients of the recipe as free-form text.
	Ingredients []string `firestore:"ingredients"`

	// Directions are the preparation steps in order.
	Directions []string `firestore:"directions"`

	// Calories, Fat, Carbs and Protein are optional nutrition facts, each
	// independently absent.
	Calories *int `firestore:"calories"`
	Fat      *int `firestore:"fat"`
	Carbs    *int `firestore:"carbs"`
	Protein  *int `firestore:"protein"`

	// Tags are unordered labels on the recipe.
	Tags []string `firestore:"tags"`

	// RatedNumber is the count of ratings the recipe has received.
	RatedNumber int `firestore:"ratedNumber"`

	// RatingSum is the sum of all rating values received. RatingSum and
	// RatedNumber are mutated together by every rating write; the displayed
	// average is RatingSum / RatedNumber when RatedNumber > 0.
	RatingSum float64 `firestore:"ratingSum"`

	// Thumbnail is the URL of the recipe thumbnail, percent-encoded at rest.
	Thumbnail string `firestore:"thumbnail"`

	// Top10 is the recommendation rank. 0 means not featured; 1..N order the
	// recommendations view ascending.
	Top10 int `firestore:"top10"`

	// VideoLink is an optional video URL, percent-encoded at rest.
	VideoLink string `firestore:"videolink"`

	// Comments holds the recipe's comments keyed by integer index as a
	// string. A nil map means no comments yet, distinct from an empty one.
	Comments map[string]Comment `firestore:"comments"`
}

// AverageRating returns RatingSum / RatedNumber, or 0 when unrated.
func (r *Recipe) AverageRating() float64 {
	if r.RatedNumber == 0 {
		return 0
	}
	return r.RatingSum / float64(r.RatedNumber)
}

// CommentCount returns the number of comments on the recipe. It is also the
// storage index for the next comment.
func (r *Recipe) CommentCount() int {
	return len(r.Comments)
}

// CommentList returns the recipe's comments ordered by storage index.
func (r *Recipe) CommentList() []Comment {
	comments := make([]Comment, 0, len(r.Comments))
	for _, i := range sortedIndexes(r.Comments) {
		comments = append(comments, r.Comments[indexKey(i)])
	}
	return comments
}

// HasTag reports whether the recipe's tag set contains tag.
func (r *Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
