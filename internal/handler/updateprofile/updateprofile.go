// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package updateprofile

import (
	"fmt"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/cookingrecipes/internal/httpjson"
	"github.com/curioswitch/cookingrecipes/internal/recipedb"
	"github.com/curioswitch/cookingrecipes/internal/session"
)

type request struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type response struct {
	Updated bool `json:"updated"`
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

// UpdateProfile overwrites the caller's profile record with the edited
// display fields, preserving their recipes, ratings and favorites.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid request payload")
		return
	}

	userID := firebaseauth.TokenFromContext(r.Context()).UID

	profile := h.sessions.Profile(userID)
	if profile == nil {
		p, err := recipedb.GetUserProfile(r.Context(), h.store, userID)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		profile = p
	} else {
		// The cached profile is shared with concurrent readers; edit a copy.
		profile = profile.Clone()
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Picture != "" {
		profile.Picture = recipedb.EncodeURLField(req.Picture)
	}

	if err := recipedb.SaveUserProfile(r.Context(), h.store, profile); err != nil {
		httpjson.WriteError(w, fmt.Errorf("updateprofile: saving profile: %w", err))
		return
	}

	httpjson.Write(w, response{Updated: true})
}
