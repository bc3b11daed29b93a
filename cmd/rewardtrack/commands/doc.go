// Package commands defines the rewardtrack CLI and wires dependencies for subcommands.
//
// Commands
//
//   - programs   List programs with balances and earning rules
//   - balance    Print the balance of one or every program
//   - history    Print a program's transactions, most recent first
//   - purchase   Record a purchase, optionally redeeming points
//   - preview    Value a redemption without recording anything
//   - plan       Estimate the savings of paying with points
//   - serve      Serve the HTTP API and Prometheus metrics
//
// # Implementation
//
// The root command resolves configuration (defaults, YAML file, environment,
// then flags), sets up logging and builds the app before any subcommand runs.
// The app is closed again after the subcommand returns.
package commands
