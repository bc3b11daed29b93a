package domain

import (
	interfaces "rewardtrack/internal/domain/interfaces"
	types "rewardtrack/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ProgramID   = types.ProgramID
	Date        = types.Date
	Tier        = types.Tier
	TierStatus  = types.TierStatus
	Transaction = types.Transaction
	Receipt     = types.Receipt
	Preview     = types.Preview
	Plan        = types.Plan

	PurchaseRequest = interfaces.PurchaseRequest
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SnapshotStore  = interfaces.SnapshotStore
	RewardsService = interfaces.RewardsService
)

// Failure sentinels, re-exported for callers that only import domain.
var (
	ErrProgramNotFound          = types.ErrProgramNotFound
	ErrMissingDate              = types.ErrMissingDate
	ErrInvalidAmount            = types.ErrInvalidAmount
	ErrStaleState               = types.ErrStaleState
	ErrRedemptionExceedsBalance = types.ErrRedemptionExceedsBalance
	ErrInvalidRedemptionAmount  = types.ErrInvalidRedemptionAmount
	ErrPersistenceParse         = types.ErrPersistenceParse
	ErrPersistenceWrite         = types.ErrPersistenceWrite
	ErrNegativeBalance          = types.ErrNegativeBalance
)
