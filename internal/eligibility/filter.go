// Package eligibility decides which members of a ranking may hold a crown.
// Filtering is pure: all inputs, including the current time, are passed in,
// so the same inputs always produce the same ordered result.
package eligibility

import (
	"sort"
	"time"

	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/store/schema"
)

// Input carries everything a single eligibility pass needs
type Input struct {
	// Ranking is the raw per-member play counts for one artist
	Ranking []domain.MemberPlayCount
	// Settings is the community configuration; never nil
	Settings *schema.CommunityCrownSettings
	// Blocked is the set of members barred from holding crowns
	Blocked map[uint64]struct{}
	// LastActive maps member to last bot interaction; a member missing
	// from the map has never interacted
	LastActive map[uint64]time.Time
	// Roles maps member to role IDs; consulted only when the settings
	// configure a role filter
	Roles map[uint64][]uint64
	// Now anchors the inactivity window
	Now time.Time
}

// Filter returns the eligible members ordered by play count descending,
// ties broken by lowest member ID. The first entry, when present, is the
// rightful crown holder.
func Filter(in Input) []domain.MemberPlayCount {
	eligible := make([]domain.MemberPlayCount, 0, len(in.Ranking))

	for _, m := range in.Ranking {
		if m.PlayCount < in.Settings.MinimumPlayCount {
			continue
		}
		if _, blocked := in.Blocked[m.MemberID]; blocked {
			continue
		}
		if !activeEnough(in, m.MemberID) {
			continue
		}
		if !rolesAllow(in.Settings, in.Roles[m.MemberID]) {
			continue
		}
		eligible = append(eligible, m)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].PlayCount != eligible[j].PlayCount {
			return eligible[i].PlayCount > eligible[j].PlayCount
		}
		return eligible[i].MemberID < eligible[j].MemberID
	})

	return eligible
}

func activeEnough(in Input, memberID uint64) bool {
	if in.Settings.ActivityThresholdDays == nil {
		return true
	}

	lastActive, ok := in.LastActive[memberID]
	if !ok {
		// Never interacted: fails any configured activity threshold
		return false
	}

	window := time.Duration(*in.Settings.ActivityThresholdDays) * 24 * time.Hour
	return in.Now.Sub(lastActive) <= window
}

func rolesAllow(settings *schema.CommunityCrownSettings, memberRoles []uint64) bool {
	if len(settings.BlockedRoleIDs) > 0 {
		for _, role := range memberRoles {
			for _, blocked := range settings.BlockedRoleIDs {
				if role == blocked {
					return false
				}
			}
		}
	}

	if len(settings.AllowedRoleIDs) > 0 {
		for _, role := range memberRoles {
			for _, allowed := range settings.AllowedRoleIDs {
				if role == allowed {
					return true
				}
			}
		}
		return false
	}

	return true
}
