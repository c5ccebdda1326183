package schema

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultMinimumPlayCount is the play-count floor applied when a community
// has no settings row
const DefaultMinimumPlayCount = 5

// CommunityCrownSettings represents the community_crown_settings table -
// per-community crown configuration. A community without a row uses
// DefaultSettings.
type CommunityCrownSettings struct {
	// CommunityID is the primary key; settings are 1:1 with the community
	CommunityID uint64 `gorm:"column:community_id;primaryKey"`
	// MinimumPlayCount is the floor below which members are never eligible
	MinimumPlayCount int `gorm:"column:minimum_play_count;not null;default:5"`
	// ActivityThresholdDays excludes members whose last bot interaction is
	// older than this many days; nil disables the check
	ActivityThresholdDays *int `gorm:"column:activity_threshold_days"`
	// CrownsEnabled is the community-wide kill switch; when false the
	// engine performs no writes but reads still serve display
	CrownsEnabled bool `gorm:"column:crowns_enabled;not null;default:true"`
	// BlockedRoleIDs holds role IDs whose members are excluded (JSONB array)
	BlockedRoleIDs datatypes.JSONSlice[uint64] `gorm:"column:blocked_role_ids"`
	// AllowedRoleIDs, when non-empty, restricts eligibility to members
	// holding at least one of these roles (JSONB array)
	AllowedRoleIDs datatypes.JSONSlice[uint64] `gorm:"column:allowed_role_ids"`
	// UpdatedAt is the timestamp when the settings were last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the CommunityCrownSettings model
func (CommunityCrownSettings) TableName() string {
	return "community_crown_settings"
}

// DefaultSettings returns the settings used for a community that has never
// been configured
func DefaultSettings(communityID uint64) *CommunityCrownSettings {
	return &CommunityCrownSettings{
		CommunityID:      communityID,
		MinimumPlayCount: DefaultMinimumPlayCount,
		CrownsEnabled:    true,
	}
}

// RoleFilterConfigured reports whether any role-based eligibility rule is set
func (s *CommunityCrownSettings) RoleFilterConfigured() bool {
	return len(s.BlockedRoleIDs) > 0 || len(s.AllowedRoleIDs) > 0
}
