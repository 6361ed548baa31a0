// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	ErrInvalidValue   = errors.New("invalid config value")
	ErrUnknownBackend = errors.New("unknown audio backend")
)
