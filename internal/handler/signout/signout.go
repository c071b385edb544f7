// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package signout

import (
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/cookingrecipes/internal/auth"
	"github.com/curioswitch/cookingrecipes/internal/httpjson"
	"github.com/curioswitch/cookingrecipes/internal/session"
)

type response struct {
	SignedOut bool `json:"signedOut"`
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

// SignOut tears down the caller's session and revokes their refresh
// tokens so existing clients must authenticate again.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	userID := firebaseauth.TokenFromContext(r.Context()).UID

	h.sessions.End(userID)

	if err := h.auth.SignOut(r.Context(), userID); err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, response{SignedOut: true})
}
