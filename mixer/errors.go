// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid mixer config")
	ErrNoFreeVoice        = errors.New("no free voice")
	ErrUnknownSound       = errors.New("unknown sound")
	ErrUnknownBus         = errors.New("unknown bus")
	ErrDecode             = errors.New("cannot decode sound")
	ErrBackend            = errors.New("audio backend failure")
	ErrAlreadyInitialized = errors.New("mixer already initialized")
	ErrClosed             = errors.New("mixer is shut down")
)
