// Package models defines the core domain models for famledger.
//
// # Ownership
//
// Every row belongs to a profile through UserID. The storage layer scopes
// all reads and writes by that ID, which replaces row-level security in the
// hosted backend the original app ran against.
//
// # Families
//
// A profile may belong to a Family. FamilyMember rows describe the people in
// a household (kids, partners) and may optionally link to their own profile.
// Transactions can be attributed to a member via FamilyMemberID.
//
// # Money and time
//
//   - Amounts are decimal.Decimal and stored as TEXT to avoid float drift.
//   - Transaction dates are calendar days at UTC midnight.
//   - Audit timestamps (CreatedAt, UpdatedAt) are Unix seconds.
//
// # Derived rows
//
// TransactionPattern and TransactionSuggestion are written by the curator,
// never directly by users. Suggestions move from pending to accepted or
// rejected when a user reviews them.
package models
