// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listrecipes

import (
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/cookingrecipes/internal/catalog"
	"github.com/curioswitch/cookingrecipes/internal/httpjson"
	"github.com/curioswitch/cookingrecipes/internal/recipedb"
	"github.com/curioswitch/cookingrecipes/internal/session"
)

type summary struct {
	Key           string   `json:"key"`
	ID            string   `json:"id"`
	AuthorName    string   `json:"authorName"`
	Name          string   `json:"name"`
	Difficulty    string   `json:"difficulty"`
	Time          int      `json:"time"`
	AverageRating float64  `json:"averageRating"`
	RatedNumber   int      `json:"ratedNumber"`
	Thumbnail     string   `json:"thumbnail"`
	Tags          []string `json:"tags"`
}

type tagGroup struct {
	Tag     string    `json:"tag"`
	Recipes []summary `json:"recipes"`
}

type response struct {
	Recipes []summary  `json:"recipes,omitempty"`
	Groups  []tagGroup `json:"groups,omitempty"`
}

func NewHandler(recipes *catalog.Holder, sessions *session.Manager) *Handler {
	return &Handler{
		recipes:  recipes,
		sessions: sessions,
	}
}

type Handler struct {
	recipes  *catalog.Holder
	sessions *session.Manager
}

// ListRecipes serves the requested view over the in-memory recipe
// snapshot. The view query parameter selects between the recommended
// list, the caller's own or favorite recipes, a per-tag grouping, a
// single tag, or recipes with no recognized tag.
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	all := h.recipes.Recipes()

	switch view := r.URL.Query().Get("view"); view {
	case "", "recommended":
		httpjson.Write(w, response{Recipes: summaries(catalog.Recommendations(all))})
	case "mine":
		profile := h.profile(r)
		if profile == nil {
			httpjson.Write(w, response{})
			return
		}
		httpjson.Write(w, response{Recipes: summaries(catalog.Owned(all, profile.MyRecipes))})
	case "favorites":
		profile := h.profile(r)
		if profile == nil {
			httpjson.Write(w, response{})
			return
		}
		httpjson.Write(w, response{Recipes: summaries(catalog.Favorites(all, profile.FavoriteIDs()))})
	case "bytag":
		groups := catalog.ByTag(all)
		res := response{Groups: make([]tagGroup, 0, len(groups))}
		for _, g := range groups {
			res.Groups = append(res.Groups, tagGroup{Tag: g.Tag, Recipes: summaries(g.Recipes)})
		}
		httpjson.Write(w, res)
	case "untagged":
		httpjson.Write(w, response{Recipes: summaries(catalog.Untagged(all))})
	case "tag":
		tag := r.URL.Query().Get("tag")
		if tag == "" {
			httpjson.BadRequest(w, "tag parameter required")
			return
		}
		var matched []recipedb.Recipe
		for _, recipe := range all {
			if recipe.HasTag(tag) {
				matched = append(matched, recipe)
			}
		}
		httpjson.Write(w, response{Recipes: summaries(matched)})
	default:
		httpjson.BadRequest(w, "unknown view "+view)
	}
}

func (h *Handler) profile(r *http.Request) *recipedb.UserProfile {
	return h.sessions.Profile(firebaseauth.TokenFromContext(r.Context()).UID)
}

func summaries(recipes []recipedb.Recipe) []summary {
	res := make([]summary, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, summary{
			Key:           recipe.Key,
			ID:            recipe.ID,
			AuthorName:    recipe.AuthorName,
			Name:          recipe.Name,
			Difficulty:    string(recipe.Difficulty),
			Time:          recipe.Time,
			AverageRating: recipe.AverageRating(),
			RatedNumber:   recipe.RatedNumber,
			Thumbnail:     recipedb.DecodeURLField(recipe.Thumbnail),
			Tags:          recipe.Tags,
		})
	}
	return res
}
