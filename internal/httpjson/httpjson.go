// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package httpjson has the JSON plumbing shared by the API handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/curioswitch/cookingrecipes/internal/auth"
	"github.com/curioswitch/cookingrecipes/internal/recipedb"
)

// Decode reads the request body into v.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Write sends v as a JSON response.
func Write(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("httpjson: encoding response", "error", err)
	}
}

// BadRequest reports a malformed or invalid request.
func BadRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}

// WriteError maps an error to a status code and sends it as JSON.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recipedb.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, auth.ErrAuthFailed):
		writeError(w, http.StatusUnauthorized, "authentication failed")
	default:
		slog.Error("httpjson: request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		slog.Error("httpjson: encoding error response", "error", err)
	}
}
