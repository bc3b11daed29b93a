// Package policy implements the earning, valuation and redemption rules of a
// reward program.
//
// A program's rules are one of a closed set of variants:
//
//   - FlatRate           a fixed cash value per point, redeemable in steps
//   - StepTiered         a fixed cash value per step of points
//   - DayMultiplier      points per currency divisor, multiplied on a bonus weekday
//   - InterpolatedTiers  named tiers with non-linear values
//
// All variants are pure: they hold only their parameters and never touch the
// ledger.
package policy
