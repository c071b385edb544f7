// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getprofile

import (
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/cookingrecipes/internal/httpjson"
	"github.com/curioswitch/cookingrecipes/internal/recipedb"
	"github.com/curioswitch/cookingrecipes/internal/session"
)

type profile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Picture      string   `json:"picture"`
	MyRecipes    []string `json:"myRecipes"`
	Favorites    []string `json:"favorites"`
	CommentCount int      `json:"commentCount"`
}

type response struct {
	State   string   `json:"state"`
	Message string   `json:"message,omitempty"`
	Profile *profile `json:"profile,omitempty"`
}

func NewHandler(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

type Handler struct {
	sessions *session.Manager
}

// GetProfile returns the caller's session state along with the most
// recently synchronized profile, if one has been delivered.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := firebaseauth.TokenFromContext(r.Context()).UID

	status := h.sessions.Status(userID)

	res := response{
		State:   status.State.String(),
		Message: status.Message,
	}
	if p := status.Profile; p != nil {
		res.Profile = &profile{
			ID:           p.ID,
			Name:         p.Name,
			Email:        p.Email,
			Picture:      recipedb.DecodeURLField(p.Picture),
			MyRecipes:    p.MyRecipes,
			Favorites:    p.FavoriteIDs(),
			CommentCount: p.CommentCount,
		}
	}

	httpjson.Write(w, res)
}
