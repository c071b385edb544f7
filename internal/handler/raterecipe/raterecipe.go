// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package raterecipe

import (
	"math"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5"

	"github.com/curioswitch/cookingrecipes/internal/httpjson"
	"github.com/curioswitch/cookingrecipes/internal/mutate"
	"github.com/curioswitch/cookingrecipes/internal/recipedb"
	"github.com/curioswitch/cookingrecipes/internal/session"
)

type request struct {
	Rating float64 `json:"rating"`
}

type response struct {
	Accepted      bool    `json:"accepted"`
	AverageRating float64 `json:"averageRating"`
	RatedNumber   int     `json:"ratedNumber"`
}

func NewHandler(store *firestore.Client, mutations *mutate.Coordinator, sessions *session.Manager) *Handler {
	return &Handler{
		store:     store,
		mutations: mutations,
		sessions:  sessions,
	}
}

type Handler struct {
	store     *firestore.Client
	mutations *mutate.Coordinator
	sessions  *session.Manager
}

// RateRecipe records the caller's star rating on a recipe. Ratings are 0
// to 5 stars in half steps.
func (h *Handler) RateRecipe(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid request payload")
		return
	}
	if req.Rating < 0 || req.Rating > 5 || req.Rating*2 != math.Trunc(req.Rating*2) {
		httpjson.BadRequest(w, "rating must be between 0 and 5 in half steps")
		return
	}

	ctx := r.Context()
	key := chi.URLParam(r, "key")

	recipe, err := recipedb.GetRecipe(ctx, h.store, key)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	userID := firebaseauth.TokenFromContext(ctx).UID
	profile := h.sessions.Profile(userID)
	if profile == nil {
		p, err := recipedb.GetUserProfile(ctx, h.store, userID)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		profile = p
	}

	plan := h.mutations.Rate(ctx, profile, recipe, req.Rating)

	average := 0.0
	if plan.RatedNumber > 0 {
		average = plan.RatingSum / float64(plan.RatedNumber)
	}
	httpjson.Write(w, response{
		Accepted:      true,
		AverageRating: average,
		RatedNumber:   plan.RatedNumber,
	})
}
