// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package auth wraps the managed auth service: email/password sign-in and
// sign-up through the Identity Toolkit API, token revocation through the
// Firebase Admin SDK.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// ErrAuthFailed is returned for any failed credential check. Causes are not
// differentiated to the caller; the user sees one fixed message.
var ErrAuthFailed = errors.New("auth: authentication failed")

// Credentials identify a signed-in user.
type Credentials struct {
	// UserID is the auth subject id.
	UserID string

	// IDToken is the bearer token for subsequent API calls.
	IDToken string
}

// Client talks to the managed auth service.
type Client struct {
	fb  *fbauth.Client
	itk *identitytoolkit.Service
}

// NewClient creates a Client for the Firebase app, using apiKey for the
// password-credential endpoints.
func NewClient(ctx context.Context, app *firebase.App, apiKey string) (*Client, error) {
	fb, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: create firebase auth client: %w", err)
	}
	itk, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("auth: create identity toolkit service: %w", err)
	}
	return &Client{fb: fb, itk: itk}, nil
}

// SignIn checks the email/password credentials and returns the user's
// credentials.
func (c *Client) SignIn(ctx context.Context, email string, password string) (*Credentials, error) {
	res, err := c.itk.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             strings.TrimSpace(email),
		Password:          strings.TrimSpace(password),
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		slog.ErrorContext(ctx, "auth: sign in failed", "error", err)
		return nil, ErrAuthFailed
	}
	return &Credentials{UserID: res.LocalId, IDToken: res.IdToken}, nil
}

// SignUp registers a new email/password user and returns their credentials.
func (c *Client) SignUp(ctx context.Context, email string, password string, username string) (*Credentials, error) {
	res, err := c.itk.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:       strings.TrimSpace(email),
		Password:    strings.TrimSpace(password),
		DisplayName: strings.TrimSpace(username),
	}).Context(ctx).Do()
	if err != nil {
		slog.ErrorContext(ctx, "auth: sign up failed", "error", err)
		return nil, ErrAuthFailed
	}
	return &Credentials{UserID: res.LocalId, IDToken: res.IdToken}, nil
}

// SignOut revokes the user's refresh tokens. Existing ID tokens expire on
// their own within the hour.
func (c *Client) SignOut(ctx context.Context, userID string) error {
	if err := c.fb.RevokeRefreshTokens(ctx, userID); err != nil {
		return fmt.Errorf("auth: revoking tokens for %q: %w", userID, err)
	}
	return nil
}

// SendPasswordReset sends a password reset mail to the address.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	_, err := c.itk.Relyingparty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "PASSWORD_RESET",
		Email:       strings.TrimSpace(email),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("auth: sending password reset: %w", err)
	}
	return nil
}
