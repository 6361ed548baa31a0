// SPDX-License-Identifier: EPL-2.0

package backend

import "errors"

var (
	ErrInvalidStreamConfig = errors.New("invalid stream config")
	ErrStreamClosed        = errors.New("stream closed")
)
