// Package api defines the famledger.v1 RPC messages.
//
// Messages are plain structs encoded as JSON on the wire. Money is a decimal
// string, calendar dates are "YYYY-MM-DD" and timestamps are unix seconds.
package api
