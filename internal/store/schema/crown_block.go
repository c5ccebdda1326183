package schema

import (
	"time"
)

// CrownBlock represents the crown_blocks table - members barred from
// holding crowns in a community. Blocking does not delete existing crowns;
// the next evaluation of each artist treats the blocked member as absent
// from the ranking.
type CrownBlock struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CommunityID scopes the block to a single community
	CommunityID uint64 `gorm:"column:community_id;not null;uniqueIndex:idx_crown_blocks_community_member,priority:1"`
	// MemberID is the blocked member
	MemberID uint64 `gorm:"column:member_id;not null;uniqueIndex:idx_crown_blocks_community_member,priority:2"`
	// CreatedAt is when the block was placed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the CrownBlock model
func (CrownBlock) TableName() string {
	return "crown_blocks"
}
