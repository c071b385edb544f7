// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package commentrecipe

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
	Comment string `json:"comment"`
}

type response struct {
	Accepted  bool   `json:"accepted"`
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
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

// CommentRecipe posts a comment on a recipe under the caller's name.
func (h *Handler) CommentRecipe(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid request payload")
		return
	}
	if req.Comment == "" {
		httpjson.BadRequest(w, "comment text required")
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

	plan := h.mutations.Comment(ctx, profile, recipe, req.Comment)

	httpjson.Write(w, response{
		Accepted:  true,
		Username:  plan.Comment.Username,
		Timestamp: plan.Comment.Timestamp,
	})
}
