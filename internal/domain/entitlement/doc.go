// Package entitlement decides whether a user may access a piece of content
// and computes the monetary and lifecycle figures around tiers, subscriptions,
// grants and creator earnings.
//
// Every function works on entity snapshots and an injected Clock. Nothing in
// this package touches the database; callers load the snapshots, call in, and
// write mutations back inside their own transaction.
package entitlement
