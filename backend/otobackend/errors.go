// SPDX-License-Identifier: EPL-2.0

package otobackend

import "errors"

var ErrFormatMismatch = errors.New("oto context already open with a different format")
