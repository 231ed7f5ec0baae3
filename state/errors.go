// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidState is returned when the change log bookkeeping is violated.
	// The caller must abort the enclosing transaction or block.
	ErrInvalidState = errors.New("invalid storage state")

	// ErrSstoreSentry is returned when an SSTORE runs with no more than the sentry gas left.
	ErrSstoreSentry = errors.New("not enough gas for sstore reentrancy sentry")
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func invalidState(format string, args ...any) error {
	err := errors.Wrapf(ErrInvalidState, format, args...)
	logger.Error("storage bookkeeping violated", "err", err)
	return err
}
