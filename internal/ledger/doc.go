// Package ledger holds each program's points balance and purchase history and
// converts them to and from the persisted snapshot.
//
// The ledger performs no business validation; callers check purchases before
// calling Append. It only refuses to let a balance go below zero.
//
// Snapshot format (JSON):
//
//	{
//	  "<programId>": {
//	    "points": 1637,
//	    "history": [
//	      {"date": "2025-01-08", "amount": 100, "pointsEarned": 15, "pointsRedeemed": 0, "discount": 0}
//	    ]
//	  }
//	}
//
// History is ordered most recent first.
package ledger
