// SPDX-License-Identifier: MIT
// Package bnb: sentinel error set.

package bnb

import "errors"

// ErrOptionViolation is returned by New when an invalid Option is supplied.
var ErrOptionViolation = errors.New("bnb: invalid option supplied")
