// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import (
	"sort"
	"strconv"
)

// Index-keyed maps mirror the original database layout where list entries
// live under integer child keys. Keys that do not parse as integers are
// ignored rather than treated as corruption.

func indexKey(i int) string {
	return strconv.Itoa(i)
}

func sortedIndexes[V any](m map[string]V) []int {
	indexes := make([]int, 0, len(m))
	for k := range m {
		i, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes
}

// lastIndex returns the highest integer key in the map, or -1 when it has
// none. The next append position is always lastIndex + 1, so holes left by
// positional deletes are never refilled.
func lastIndex[V any](m map[string]V) int {
	last := -1
	for k := range m {
		i, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		if i > last {
			last = i
		}
	}
	return last
}
