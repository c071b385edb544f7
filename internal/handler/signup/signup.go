// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package signup

import (
	"fmt"
	"net/http"

	"cloud.google.com/go/firestore"

	"github.com/curioswitch/cookingrecipes/internal/auth"
	"github.com/curioswitch/cookingrecipes/internal/httpjson"
	"github.com/curioswitch/cookingrecipes/internal/recipedb"
	"github.com/curioswitch/cookingrecipes/internal/session"
)

type request struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type response struct {
	UserID           string `json:"userId"`
	IDToken          string `json:"idToken"`
	PasswordStrength string `json:"passwordStrength"`
}

func NewHandler(authClient *auth.Client, store *firestore.Client, sessions *session.Manager) *Handler {
	return &Handler{
		auth:     authClient,
		store:    store,
		sessions: sessions,
	}
}

type Handler struct {
	auth     *auth.Client
	store    *firestore.Client
	sessions *session.Manager
}

// SignUp registers a new user, seeds their profile record with empty
// collections, and begins a session.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid request payload")
		return
	}
	if !auth.IsValidEmail(req.Email) {
		httpjson.BadRequest(w, "invalid email address")
		return
	}
	strength := auth.CheckPasswordStrength(req.Password)
	if strength == auth.PasswordVeryWeak {
		httpjson.BadRequest(w, fmt.Sprintf("password too short (%s)", strength))
		return
	}
	if req.Username == "" {
		httpjson.BadRequest(w, "username required")
		return
	}

	creds, err := h.auth.SignUp(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	profile := recipedb.UserProfile{
		ID:        creds.UserID,
		Name:      req.Username,
		Email:     req.Email,
		Picture:   "",
		MyRecipes: []string{},
	}
	if err := recipedb.CreateUserProfile(r.Context(), h.store, &profile); err != nil {
		httpjson.WriteError(w, fmt.Errorf("signup: seeding profile: %w", err))
		return
	}

	h.sessions.Begin(creds.UserID)

	httpjson.Write(w, response{
		UserID:           creds.UserID,
		IDToken:          creds.IDToken,
		PasswordStrength: strength.String(),
	})
}
