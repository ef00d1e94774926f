// Package models defines the core domain models for SplatTrack.
//
// # Models
//
//   - Player: a roster member with a cumulative total of money paid in
//   - Event: a dated team cost (practice, tournament, social) split equally
//     across its attendees
//   - GearOrder / LineItem: a dated order where every line item carries its
//     own cost and its own subset of purchasers
//   - User: a login account; access is gated on the account email being
//     present in the roster
//
// # Design Principles
//
//  1. Players and users are separate: an admin rosters a player long before
//     that player ever creates a login.
//  2. Relationships use ID strings, never pointers, to keep records
//     serializable and avoid circular references.
//  3. Monetary amounts are float64 kept at full precision; rounding to two
//     decimals happens only at presentation time.
//  4. Validation is enforced on the write path. Records that reach storage
//     always have non-empty attendee/purchaser sets.
package models
