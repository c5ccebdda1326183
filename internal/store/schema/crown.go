package schema

import (
	"time"
)

// Crown represents the crowns table - one row per ownership episode of an
// artist's crown within a community. The currently held crown is the row
// with active = true; retired rows are kept as history.
//
// Invariant: at most one active row exists per (community_id, artist_key),
// enforced by a partial unique index so that concurrent evaluations racing
// on the create path cannot produce two holders.
type Crown struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CommunityID scopes the crown to a single community; no cross-community sharing
	CommunityID uint64 `gorm:"column:community_id;not null;index:idx_crowns_community_artist,priority:1;uniqueIndex:idx_crowns_one_active,priority:1,where:active"`
	// ArtistKey is the normalized artist identity (see domain.NormalizeArtist)
	ArtistKey string `gorm:"column:artist_key;not null;type:text;index:idx_crowns_community_artist,priority:2;uniqueIndex:idx_crowns_one_active,priority:2,where:active"`
	// OwnerID is the member holding (or who held) the crown
	OwnerID uint64 `gorm:"column:owner_id;not null;index:idx_crowns_owner"`
	// PlayCount is the owner's eligible play count at the last evaluation;
	// a snapshot, refreshed whenever the artist is re-evaluated
	PlayCount int `gorm:"column:play_count;not null"`
	// CapturedAt is when this owner took the crown
	CapturedAt time.Time `gorm:"column:captured_at;not null;type:timestamptz"`
	// Seeded is true when the row was created by a bulk reseed rather than
	// an organic overtake; organic transfers always clear it
	Seeded bool `gorm:"column:seeded;not null;default:false"`
	// Active marks the current holder's row
	Active bool `gorm:"column:active;not null;default:true"`
	// TransferredAt is set when the row is retired (stolen or holder lost
	// eligibility); nil on active rows
	TransferredAt *time.Time `gorm:"column:transferred_at;type:timestamptz"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Crown model
func (Crown) TableName() string {
	return "crowns"
}
