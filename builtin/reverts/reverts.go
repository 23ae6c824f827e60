// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts holds the failures a built-in contract call can revert with.
// A revert aborts the call and undoes all of its state changes.
package reverts

import (
	"errors"
)

var (
	ErrInvalidPool           = New("pool: invalid pool id")
	ErrDuplicatePool         = New("pool: token already listed")
	ErrInsufficientStake     = New("withdraw: not good")
	ErrInsufficientBalance   = New("token: transfer amount exceeds balance")
	ErrInsufficientAllowance = New("token: transfer amount exceeds allowance")
	ErrUnauthorized          = New("operator: caller is not the operator")
	ErrZeroAddress           = New("operator: zero address")
	ErrReentrant             = New("reentrancy: reentrant call")
	ErrInvalidWindow         = New("window: end block must be after start block")
	ErrAlreadyInitialized    = New("contract: already initialized")
	ErrNotInitialized        = New("contract: not initialized")
	ErrRecoverForbidden      = New("recover: token is protected until the grace period ends")
	ErrAlreadyDistributed    = New("token: reward already distributed")
	ErrOverflow              = New("math: overflow")
	ErrDivisionByZero        = New("math: division by zero")
)

type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}
