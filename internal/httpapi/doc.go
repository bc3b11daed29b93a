// Package httpapi serves the rewards engine over JSON/HTTP.
//
// Routes
//
//   - GET  /programs                       programs with balances and tiers
//   - GET  /programs/{id}                  one program
//   - GET  /programs/{id}/history          transactions, most recent first
//   - GET  /programs/{id}/preview?points=N what-if redemption value
//   - GET  /programs/{id}/plan?amount=&points=
//   - POST /programs/{id}/purchases        record a purchase
//   - GET  /metrics                        Prometheus exposition
//   - GET  /healthz                        liveness
//
// Failures are returned as {"error": ..., "reason": ...} with 400 for bad
// input, 404 for an unknown program and 409 for balance conflicts.
package httpapi
