// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Firebase struct {
	// APIKey is the web API key of the Firebase project, used for the
	// password verification endpoints of the identity toolkit.
	APIKey string `koanf:"apikey"`
}

type Config struct {
	config.Common

	// Firebase is the configuration for Firebase authentication.
	Firebase Firebase `koanf:"firebase"`
}
