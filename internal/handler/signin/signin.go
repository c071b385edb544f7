// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package signin

import (
	"net/http"

	"github.com/curioswitch/cookingrecipes/internal/auth"
	"github.com/curioswitch/cookingrecipes/internal/httpjson"
	"github.com/curioswitch/cookingrecipes/internal/session"
)

type request struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type response struct {
	UserID  string `json:"userId"`
	IDToken string `json:"idToken"`
}

func NewHandler(authClient *auth.Client, sessions *session.Manager) *Handler {
	return &Handler{
		auth:     authClient,
		sessions: sessions,
	}
}

type Handler struct {
	auth     *auth.Client
	sessions *session.Manager
}

// SignIn verifies the user's password and begins a session that keeps
// their profile synchronized.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid request payload")
		return
	}
	if !auth.IsValidEmail(req.Email) {
		httpjson.BadRequest(w, "invalid email address")
		return
	}

	creds, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	h.sessions.Begin(creds.UserID)

	httpjson.Write(w, response{
		UserID:  creds.UserID,
		IDToken: creds.IDToken,
	})
}
