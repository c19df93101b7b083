// Package models defines the core domain models for Kora Time.
//
// # Models
//
//   - Player: a rated member of the shared player pool
//   - Match: a scheduled pickup game with a venue cost and a roster snapshot
//   - RosterEntry: per-match attendance and payment state for one player
//   - User: a registered account (organizers log in to manage the pool)
//
// # Design Principles
//
//  1. **Snapshot rosters**: a match's roster is frozen at creation time from
//     the player registry. Later edits or deletions of a Player never alter
//     past rosters; entries carry only the player ID reference.
//  2. **Decoupled flags**: a roster entry's Present and Paid flags are
//     independent. Marking someone absent does not clear their payment.
//  3. **Whole-document writes**: roster mutations persist by replacing the
//     entire match record. There is no per-entry patch; the last write wins.
//  4. **Fail-fast validation**: malformed dates, times, and amounts are
//     rejected with a ValidationError before any state is touched.
package models
