// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

// Comment represents a comment on a recipe. Comments are immutable once
// written and keyed per recipe by the recipe's comment count at post time.
type Comment struct {
	// Username is the display name of the comment author.
	Username string `firestore:"username"`

	// Picture is the author's profile picture URL, percent-encoded at rest.
	Picture string `firestore:"picture"`

	// Timestamp is the creation time in epoch milliseconds.
	Timestamp int64 `firestore:"timestamp"`

	// Comment is the comment text.
	Comment string `firestore:"comment"`
}
