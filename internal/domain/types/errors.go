package types

import "errors"

// Purchase validation failures, in the order they are checked.
var (
	ErrProgramNotFound          = errors.New("rewards: program not found")
	ErrMissingDate              = errors.New("rewards: purchase date is required")
	ErrInvalidAmount            = errors.New("rewards: purchase amount must be a finite number greater than zero")
	ErrStaleState               = errors.New("rewards: balance changed since it was read")
	ErrRedemptionExceedsBalance = errors.New("rewards: cannot redeem more points than the balance")
	ErrInvalidRedemptionAmount  = errors.New("rewards: points do not match the program's redemption rules")
)

// Persistence failures. Both are recoverable: the in-memory ledger stays
// authoritative for the session.
var (
	ErrPersistenceParse = errors.New("rewards: saved ledger could not be parsed")
	ErrPersistenceWrite = errors.New("rewards: ledger could not be saved")
)

var (
	// ErrNegativeBalance signals a caller bug: a balance below zero reached the ledger.
	ErrNegativeBalance = errors.New("rewards: balance would drop below zero")
	// ErrInvalidProgram is returned for malformed catalog entries.
	ErrInvalidProgram = errors.New("rewards: invalid program")
)
