// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package favoriterecipe

import (
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
	Favorite bool `json:"favorite"`
}

type response struct {
	Accepted bool `json:"accepted"`
	Favorite bool `json:"favorite"`
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

// FavoriteRecipe turns a favorite on or off for the caller. Removal
// targets the slot the recipe id currently occupies in their favorites.
func (h *Handler) FavoriteRecipe(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid request payload")
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

	position := -1
	if !req.Favorite {
		i, ok := profile.FavoriteIndexOf(recipe.ID)
		if !ok {
			// Not currently a favorite, nothing to remove.
			httpjson.Write(w, response{Accepted: true, Favorite: false})
			return
		}
		position = i
	}

	h.mutations.SetFavorite(ctx, profile, recipe.ID, position, req.Favorite)

	httpjson.Write(w, response{
		Accepted: true,
		Favorite: req.Favorite,
	})
}
