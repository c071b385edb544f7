// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package resetpassword

import (
	"net/http"

	"github.com/curioswitch/cookingrecipes/internal/auth"
	"github.com/curioswitch/cookingrecipes/internal/httpjson"
)

type request struct {
	Email string `json:"email"`
}

type response struct {
	Sent bool `json:"sent"`
}

func NewHandler(authClient *auth.Client) *Handler {
	return &Handler{auth: authClient}
}

type Handler struct {
	auth *auth.Client
}

// ResetPassword sends a password reset email to the given address.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid request payload")
		return
	}
	if !auth.IsValidEmail(req.Email) {
		httpjson.BadRequest(w, "invalid email address")
		return
	}

	if err := h.auth.SendPasswordReset(r.Context(), req.Email); err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, response{Sent: true})
}
