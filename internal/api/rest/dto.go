package rest

import (
	"errors"

	"github.com/chartbot/crown-engine/internal/audit"
	"github.com/chartbot/crown-engine/internal/store/schema"
)

// KillRequest is the body of the two-step mass deletion endpoints. Without a
// token the call previews the deletion; with one it confirms it.
type KillRequest struct {
	Token string `json:"token,omitempty"`
}

// DeletedResponse reports how many crown rows a deletion removed
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// ListCrownsResponse is the paginated active-crown listing
type ListCrownsResponse struct {
	Crowns []audit.CrownEntry `json:"crowns"`
	Total  uint64             `json:"total"`
	Limit  int                `json:"limit"`
	Offset uint64             `json:"offset"`
}

// ListStolenResponse is the paginated steal history
type ListStolenResponse struct {
	Stolen []audit.StolenEntry `json:"stolen"`
	Total  uint64              `json:"total"`
	Limit  int                 `json:"limit"`
	Offset uint64              `json:"offset"`
}

// ListBlocksResponse is the community's crown block list
type ListBlocksResponse struct {
	Blocked []audit.BlockedEntry `json:"blocked"`
}

// SettingsRequest is the body of PUT /crown-settings; it replaces the
// community's settings wholesale
type SettingsRequest struct {
	MinimumPlayCount      int      `json:"minimum_play_count"`
	ActivityThresholdDays *int     `json:"activity_threshold_days,omitempty"`
	CrownsEnabled         bool     `json:"crowns_enabled"`
	BlockedRoleIDs        []uint64 `json:"blocked_role_ids,omitempty"`
	AllowedRoleIDs        []uint64 `json:"allowed_role_ids,omitempty"`
}

// Validate validates the settings request
func (r *SettingsRequest) Validate() error {
	if r.MinimumPlayCount < 0 {
		return errors.New("minimum_play_count must not be negative")
	}
	if r.ActivityThresholdDays != nil && *r.ActivityThresholdDays <= 0 {
		return errors.New("activity_threshold_days must be positive when set")
	}
	return nil
}

// SettingsResponse is the community's crown settings as served by the API
type SettingsResponse struct {
	CommunityID           uint64   `json:"community_id"`
	MinimumPlayCount      int      `json:"minimum_play_count"`
	ActivityThresholdDays *int     `json:"activity_threshold_days,omitempty"`
	CrownsEnabled         bool     `json:"crowns_enabled"`
	BlockedRoleIDs        []uint64 `json:"blocked_role_ids,omitempty"`
	AllowedRoleIDs        []uint64 `json:"allowed_role_ids,omitempty"`
}

func settingsResponseFromSchema(s *schema.CommunityCrownSettings) SettingsResponse {
	return SettingsResponse{
		CommunityID:           s.CommunityID,
		MinimumPlayCount:      s.MinimumPlayCount,
		ActivityThresholdDays: s.ActivityThresholdDays,
		CrownsEnabled:         s.CrownsEnabled,
		BlockedRoleIDs:        s.BlockedRoleIDs,
		AllowedRoleIDs:        s.AllowedRoleIDs,
	}
}
