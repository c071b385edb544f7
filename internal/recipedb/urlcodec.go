// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import "net/url"

// URL-valued fields (thumbnails, profile pictures, video links) are stored
// percent-encoded and decoded when served.

// EncodeURLField percent-encodes a URL for storage.
func EncodeURLField(s string) string {
	return url.QueryEscape(s)
}

// DecodeURLField decodes a stored URL. A value that does not decode is
// returned as-is, since older records were written unencoded.
func DecodeURLField(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
