// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getrecipe

import (
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5"

	"github.com/curioswitch/cookingrecipes/internal/httpjson"
	"github.com/curioswitch/cookingrecipes/internal/recipedb"
	"github.com/curioswitch/cookingrecipes/internal/session"
)

type comment struct {
	Username  string `json:"username"`
	Picture   string `json:"picture"`
	Timestamp int64  `json:"timestamp"`
	Comment   string `json:"comment"`
}

type response struct {
	Key           string    `json:"key"`
	ID            string    `json:"id"`
	AuthorName    string    `json:"authorName"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Difficulty    string    `json:"difficulty"`
	Portions      int       `json:"portions"`
	Time          int       `json:"time"`
	Ingredients   []string  `json:"ingredients"`
	Directions    []string  `json:"directions"`
	Calories      *int      `json:"calories,omitempty"`
	Fat           *int      `json:"fat,omitempty"`
	Carbs         *int      `json:"carbs,omitempty"`
	Protein       *int      `json:"protein,omitempty"`
	Tags          []string  `json:"tags"`
	AverageRating float64   `json:"averageRating"`
	RatedNumber   int       `json:"ratedNumber"`
	Thumbnail     string    `json:"thumbnail"`
	VideoLink     string    `json:"videoLink"`
	Comments      []comment `json:"comments"`
	UserRating    float64   `json:"userRating"`
	Favorite      bool      `json:"favorite"`
}

func NewHandler(store *firestore.Client, sessions *session.Manager) *Handler {
	return &Handler{
		store:    store,
		sessions: sessions,
	}
}

type Handler struct {
	store    *firestore.Client
	sessions *session.Manager
}

// GetRecipe returns the full detail of a recipe by its storage key,
// along with the caller's own rating and favorite state.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	recipe, err := recipedb.GetRecipe(r.Context(), h.store, key)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	res := response{
		Key:           recipe.Key,
		ID:            recipe.ID,
		AuthorName:    recipe.AuthorName,
		Name:          recipe.Name,
		Description:   recipe.Description,
		Difficulty:    string(recipe.Difficulty),
		Portions:      recipe.Portions,
		Time:          recipe.Time,
		Ingredients:   recipe.Ingredients,
		Directions:    recipe.Directions,
		Calories:      recipe.Calories,
		Fat:           recipe.Fat,
		Carbs:         recipe.Carbs,
		Protein:       recipe.Protein,
		Tags:          recipe.Tags,
		AverageRating: recipe.AverageRating(),
		RatedNumber:   recipe.RatedNumber,
		Thumbnail:     recipedb.DecodeURLField(recipe.Thumbnail),
		VideoLink:     recipedb.DecodeURLField(recipe.VideoLink),
		Comments:      make([]comment, 0, len(recipe.Comments)),
	}
	for _, c := range recipe.CommentList() {
		res.Comments = append(res.Comments, comment{
			Username:  c.Username,
			Picture:   recipedb.DecodeURLField(c.Picture),
			Timestamp: c.Timestamp,
			Comment:   c.Comment,
		})
	}

	userID := firebaseauth.TokenFromContext(r.Context()).UID
	if profile := h.sessions.Profile(userID); profile != nil {
		if _, rating, ok := profile.RatingFor(recipe.ID); ok {
			res.UserRating = rating.Rating
		}
		res.Favorite = profile.IsFavorite(recipe.ID)
	}

	httpjson.Write(w, res)
}
