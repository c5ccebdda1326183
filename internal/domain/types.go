package domain

import (
	"strings"
	"time"
)

// ArtistKey is the normalized artist identity used everywhere inside the
// engine. Raw display names are normalized exactly once at the boundary
// (message consumer, API handler); all store lookups and locks key on the
// normalized form.
type ArtistKey string

// NormalizeArtist lowercases, trims, and collapses internal whitespace in a
// raw artist display name.
func NormalizeArtist(name string) ArtistKey {
	return ArtistKey(strings.Join(strings.Fields(strings.ToLower(name)), " "))
}

// String returns the key as a plain string
func (k ArtistKey) String() string {
	return string(k)
}

// Valid reports whether the key is non-empty after normalization
func (k ArtistKey) Valid() bool {
	return k != ""
}

// MemberPlayCount is one entry of a play-count ranking for an artist
type MemberPlayCount struct {
	MemberID  uint64 `json:"member_id"`
	PlayCount int    `json:"play_count"`
}

// Member is a community member as served by the member directory, used for
// display only
type Member struct {
	ID          uint64
	DisplayName string
}

// EvaluationAction describes what a crown evaluation did
type EvaluationAction string

const (
	// ActionNone means no ownership change was needed (or crowns are disabled)
	ActionNone EvaluationAction = "none"
	// ActionCreated means a new active crown row was created
	ActionCreated EvaluationAction = "created"
	// ActionTransferred means the crown moved to a different member
	ActionTransferred EvaluationAction = "transferred"
	// ActionRetired means the crown was retired with no eligible successor
	ActionRetired EvaluationAction = "retired"
)

// EvaluationResult is the outcome of a single crown evaluation
type EvaluationResult struct {
	Action      EvaluationAction `json:"action"`
	CommunityID uint64           `json:"community_id"`
	ArtistKey   ArtistKey        `json:"artist_key"`
	// OwnerID is the active holder after the evaluation; zero when no active
	// crown exists (ActionRetired, or ActionNone on an uncrowned artist)
	OwnerID   uint64 `json:"owner_id,omitempty"`
	PlayCount int    `json:"play_count,omitempty"`
	Seeded    bool   `json:"seeded,omitempty"`
}

// PlayCountUpdateEvent is published by the ingestion pipeline whenever a
// member's tracked play count for an artist changes. The worker consumes
// these and schedules a crown evaluation for the artist.
type PlayCountUpdateEvent struct {
	// EventID is a ULID, unique and time-sortable
	EventID     string `json:"event_id"`
	CommunityID uint64 `json:"community_id"`
	// ArtistName is the raw display name as tracked by ingestion; the
	// consumer normalizes it before evaluating
	ArtistName string    `json:"artist_name"`
	MemberID   uint64    `json:"member_id"`
	PlayCount  int       `json:"play_count"`
	Timestamp  time.Time `json:"timestamp"`
}
