// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package createrecipe

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/google/uuid"

	"github.com/curioswitch/cookingrecipes/internal/httpjson"
	"github.com/curioswitch/cookingrecipes/internal/recipedb"
	"github.com/curioswitch/cookingrecipes/internal/session"
)

type request struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Difficulty       string   `json:"difficulty"`
	Portions         int      `json:"portions"`
	Time             int      `json:"time"`
	Ingredients      []string `json:"ingredients"`
	Directions       []string `json:"directions"`
	Calories         *int     `json:"calories"`
	Fat              *int     `json:"fat"`
	Carbs            *int     `json:"carbs"`
	Protein          *int     `json:"protein"`
	Tags             []string `json:"tags"`
	ThumbnailDataURL string   `json:"thumbnailDataUrl"`
	VideoLink        string   `json:"videoLink"`
}

type response struct {
	Key string `json:"key"`
	ID  string `json:"id"`
}

func NewHandler(store *firestore.Client, storageClient *storage.Client, publicBucket string, sessions *session.Manager) *Handler {
	return &Handler{
		store:        store,
		storage:      storageClient,
		publicBucket: publicBucket,
		sessions:     sessions,
	}
}

type Handler struct {
	store        *firestore.Client
	storage      *storage.Client
	publicBucket string
	sessions     *session.Manager
}

// CreateRecipe persists a new recipe under the next storage key and
// records it in the author's profile. A thumbnail supplied as a data
// URL is uploaded to the public bucket first.
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid request payload")
		return
	}
	if req.Name == "" {
		httpjson.BadRequest(w, "recipe name required")
		return
	}
	if len(req.Ingredients) == 0 || len(req.Directions) == 0 {
		httpjson.BadRequest(w, "ingredients and directions required")
		return
	}

	ctx := r.Context()
	userID := firebaseauth.TokenFromContext(ctx).UID

	authorName := ""
	if profile := h.sessions.Profile(userID); profile != nil {
		authorName = profile.Name
	} else if profile, err := recipedb.GetUserProfile(ctx, h.store, userID); err == nil {
		authorName = profile.Name
	}

	recipe := recipedb.Recipe{
		ID:          uuid.NewString(),
		AuthorName:  authorName,
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  recipedb.Difficulty(req.Difficulty),
		Portions:    req.Portions,
		Time:        req.Time,
		Ingredients: req.Ingredients,
		Directions:  req.Directions,
		Calories:    req.Calories,
		Fat:         req.Fat,
		Carbs:       req.Carbs,
		Protein:     req.Protein,
		Tags:        req.Tags,
	}
	if req.VideoLink != "" {
		recipe.VideoLink = recipedb.EncodeURLField(req.VideoLink)
	}
	if req.ThumbnailDataURL != "" {
		url, err := h.saveImage(ctx, fmt.Sprintf("recipes/%s/thumbnail", recipe.ID), req.ThumbnailDataURL)
		if err != nil {
			httpjson.WriteError(w, fmt.Errorf("createrecipe: saving thumbnail: %w", err))
			return
		}
		recipe.Thumbnail = recipedb.EncodeURLField(url)
	}

	key, err := recipedb.NextRecipeKey(ctx, h.store)
	if err != nil {
		httpjson.WriteError(w, fmt.Errorf("createrecipe: allocating key: %w", err))
		return
	}

	if err := recipedb.CreateRecipe(ctx, h.store, key, &recipe); err != nil {
		httpjson.WriteError(w, fmt.Errorf("createrecipe: creating recipe in firestore: %w", err))
		return
	}

	if err := recipedb.AppendMyRecipe(ctx, h.store, userID, recipe.ID); err != nil {
		httpjson.WriteError(w, fmt.Errorf("createrecipe: recording authored recipe: %w", err))
		return
	}

	httpjson.Write(w, response{
		Key: recipe.Key,
		ID:  recipe.ID,
	})
}

func (h *Handler) saveImage(ctx context.Context, pathNoExt string, dataURL string) (string, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", fmt.Errorf("createrecipe: invalid data URL %q", dataURL)
	}
	ct, contents, ok := strings.Cut(rest, ";")
	if !ok {
		return "", fmt.Errorf("createrecipe: invalid data URL %q", dataURL)
	}

	ext, ok := strings.CutPrefix(ct, "image/")
	if !ok {
		return "", fmt.Errorf("createrecipe: only image data URLs supported, got %q", ct)
	}

	b64, ok := strings.CutPrefix(contents, "base64,")
	if !ok {
		return "", fmt.Errorf("createrecipe: only base64 data URL supported, got %q", dataURL)
	}
	bytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("createrecipe: decoding base64 data URL: %w", err)
	}
	path := pathNoExt + "." + ext

	ow := h.storage.Bucket(h.publicBucket).Object(path).NewWriter(ctx)
	defer func() {
		_ = ow.Close()
	}()
	ow.ContentType = ct
	if _, err := ow.Write(bytes); err != nil {
		return "", fmt.Errorf("createrecipe: save image: %w", err)
	}
	if err := ow.Close(); err != nil {
		return "", fmt.Errorf("createrecipe: closing writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", h.publicBucket, path), nil
}
