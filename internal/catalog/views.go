// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package catalog derives view-ready groupings from the recipe catalog
// snapshot. All functions are pure: they never mutate their input and degrade
// to empty results when data is absent.
package catalog

import (
	"sort"

	"github.com/curioswitch/cookingrecipes/internal/recipedb"
)

// TagGroup is the sub-list of recipes carrying one vocabulary tag.
type TagGroup struct {
	Tag     string
	Recipes []recipedb.Recipe
}

// Recommendations returns the featured recipes (top10 != 0) ordered ascending
// by rank. Ranks are unique by construction; ties keep their original
// relative order.
func Recommendations(recipes []recipedb.Recipe) []recipedb.Recipe {
	var featured []recipedb.Recipe
	for _, r := range recipes {
		if r.Top10 != 0 {
			featured = append(featured, r)
		}
	}
	sort.SliceStable(featured, func(i, j int) bool {
		return featured[i].Top10 < featured[j].Top10
	})
	return featured
}

// Owned returns the recipes whose id is in ownedIDs. An empty id list yields
// an empty result, never the whole catalog, so an anonymous session cannot
// accidentally list everything.
func Owned(recipes []recipedb.Recipe, ownedIDs []string) []recipedb.Recipe {
	return byMembership(recipes, ownedIDs)
}

// Favorites returns the recipes whose id is in favoriteIDs, under the same
// contract as Owned.
func Favorites(recipes []recipedb.Recipe, favoriteIDs []string) []recipedb.Recipe {
	return byMembership(recipes, favoriteIDs)
}

func byMembership(recipes []recipedb.Recipe, ids []string) []recipedb.Recipe {
	if len(ids) == 0 {
		return nil
	}
	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		members[id] = struct{}{}
	}
	var matched []recipedb.Recipe
	for _, r := range recipes {
		if _, ok := members[r.ID]; ok {
			matched = append(matched, r)
		}
	}
	return matched
}

// ByTag groups recipes by the fixed tag vocabulary, one group per vocabulary
// tag in vocabulary order, empty groups included. A recipe matching several
// vocabulary tags appears in each of its groups.
func ByTag(recipes []recipedb.Recipe) []TagGroup {
	groups := make([]TagGroup, 0, len(recipedb.MainTags))
	for _, tag := range recipedb.MainTags {
		group := TagGroup{Tag: tag}
		for _, r := range recipes {
			if r.HasTag(tag) {
				group.Recipes = append(group.Recipes, r)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// Untagged returns the recipes whose tag set has no intersection with the
// vocabulary: the complement of ByTag, so together they reach every recipe.
func Untagged(recipes []recipedb.Recipe) []recipedb.Recipe {
	var untagged []recipedb.Recipe
	for _, r := range recipes {
		matched := false
		for _, tag := range recipedb.MainTags {
			if r.HasTag(tag) {
				matched = true
				break
			}
		}
		if !matched {
			untagged = append(untagged, r)
		}
	}
	return untagged
}
