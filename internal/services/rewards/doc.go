// Package rewards records purchases against the ledger and answers balance and
// valuation queries.
//
// RecordPurchase validates a purchase against the program's policy, computes
// earned points and the redemption discount, appends the transaction to the
// ledger and saves the full snapshot, all under one lock. Validation failures
// are returned as errors wrapping the sentinels in domain/types; a failed save
// is reported on the Receipt instead because the in-memory ledger is still
// correct.
package rewards
