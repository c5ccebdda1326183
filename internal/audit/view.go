// Package audit serves the read-only crown views: current standings,
// recent captures, recent steals, and the block list. Views never mutate
// ownership; they read whatever the engine last persisted.
package audit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/logger"
	"github.com/chartbot/crown-engine/internal/ranking"
	"github.com/chartbot/crown-engine/internal/store"
)

// CrownEntry is one active crown in a standings view
type CrownEntry struct {
	ArtistKey  domain.ArtistKey `json:"artist_key"`
	OwnerID    uint64           `json:"owner_id"`
	OwnerName  string           `json:"owner_name,omitempty"`
	PlayCount  int              `json:"play_count"`
	CapturedAt time.Time        `json:"captured_at"`
	Seeded     bool             `json:"seeded"`
}

// StolenEntry is one retired crown in the steal history
type StolenEntry struct {
	ArtistKey         domain.ArtistKey `json:"artist_key"`
	PreviousOwnerID   uint64           `json:"previous_owner_id"`
	PreviousOwnerName string           `json:"previous_owner_name,omitempty"`
	StolenAt          time.Time        `json:"stolen_at"`
	// TakenBy is nil when the crown was retired without a successor
	TakenBy          *uint64 `json:"taken_by,omitempty"`
	TakenByName      string  `json:"taken_by_name,omitempty"`
	TakenByPlayCount *int    `json:"taken_by_play_count,omitempty"`
}

// BlockedEntry is one member on the community's crown block list
type BlockedEntry struct {
	MemberID    uint64    `json:"member_id"`
	DisplayName string    `json:"display_name,omitempty"`
	BlockedAt   time.Time `json:"blocked_at"`
}

// Viewer serves the audit views
//
//go:generate mockgen -source=view.go -destination=../mocks/audit.go -package=mocks -mock_names=Viewer=MockAuditViewer
type Viewer interface {
	// ByPlayCount returns active crowns ordered by captured play count
	ByPlayCount(ctx context.Context, communityID uint64, limit int, offset uint64) ([]CrownEntry, uint64, error)
	// RecentlyEarned returns active crowns ordered by capture time
	RecentlyEarned(ctx context.Context, communityID uint64, limit int, offset uint64) ([]CrownEntry, uint64, error)
	// RecentlyStolen returns retired crowns newest first with the member
	// who took each one, when there is one
	RecentlyStolen(ctx context.Context, communityID uint64, limit int, offset uint64) ([]StolenEntry, uint64, error)
	// BlockedMembers returns the community's crown block list
	BlockedMembers(ctx context.Context, communityID uint64) ([]BlockedEntry, error)
}

type viewer struct {
	store     store.Store
	directory ranking.MemberDirectory
}

// NewViewer creates a Viewer
func NewViewer(s store.Store, d ranking.MemberDirectory) Viewer {
	return &viewer{
		store:     s,
		directory: d,
	}
}

func (v *viewer) ByPlayCount(ctx context.Context, communityID uint64, limit int, offset uint64) ([]CrownEntry, uint64, error) {
	return v.listActive(ctx, communityID, store.OrderByPlayCount, limit, offset)
}

func (v *viewer) RecentlyEarned(ctx context.Context, communityID uint64, limit int, offset uint64) ([]CrownEntry, uint64, error) {
	return v.listActive(ctx, communityID, store.OrderByCapturedAt, limit, offset)
}

func (v *viewer) listActive(ctx context.Context, communityID uint64, order store.CrownOrder, limit int, offset uint64) ([]CrownEntry, uint64, error) {
	crowns, total, err := v.store.ListActiveCrowns(ctx, communityID, order, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list active crowns: %w", err)
	}

	memberIDs := make([]uint64, 0, len(crowns))
	for _, c := range crowns {
		memberIDs = append(memberIDs, c.OwnerID)
	}
	names := v.resolveNames(ctx, communityID, memberIDs)

	entries := make([]CrownEntry, 0, len(crowns))
	for _, c := range crowns {
		entries = append(entries, CrownEntry{
			ArtistKey:  domain.ArtistKey(c.ArtistKey),
			OwnerID:    c.OwnerID,
			OwnerName:  names[c.OwnerID],
			PlayCount:  c.PlayCount,
			CapturedAt: c.CapturedAt,
			Seeded:     c.Seeded,
		})
	}

	return entries, total, nil
}

func (v *viewer) RecentlyStolen(ctx context.Context, communityID uint64, limit int, offset uint64) ([]StolenEntry, uint64, error) {
	stolen, total, err := v.store.ListStolenCrowns(ctx, communityID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stolen crowns: %w", err)
	}

	memberIDs := make([]uint64, 0, len(stolen)*2)
	for _, s := range stolen {
		memberIDs = append(memberIDs, s.Crown.OwnerID)
		if s.TakenBy != nil {
			memberIDs = append(memberIDs, *s.TakenBy)
		}
	}
	names := v.resolveNames(ctx, communityID, memberIDs)

	entries := make([]StolenEntry, 0, len(stolen))
	for _, s := range stolen {
		entry := StolenEntry{
			ArtistKey:         domain.ArtistKey(s.Crown.ArtistKey),
			PreviousOwnerID:   s.Crown.OwnerID,
			PreviousOwnerName: names[s.Crown.OwnerID],
			TakenBy:           s.TakenBy,
			TakenByPlayCount:  s.TakenByPlayCount,
		}
		if s.Crown.TransferredAt != nil {
			entry.StolenAt = *s.Crown.TransferredAt
		}
		if s.TakenBy != nil {
			entry.TakenByName = names[*s.TakenBy]
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (v *viewer) BlockedMembers(ctx context.Context, communityID uint64) ([]BlockedEntry, error) {
	blocks, err := v.store.ListCrownBlocks(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list crown blocks: %w", err)
	}

	memberIDs := make([]uint64, 0, len(blocks))
	for _, b := range blocks {
		memberIDs = append(memberIDs, b.MemberID)
	}
	names := v.resolveNames(ctx, communityID, memberIDs)

	entries := make([]BlockedEntry, 0, len(blocks))
	for _, b := range blocks {
		entries = append(entries, BlockedEntry{
			MemberID:    b.MemberID,
			DisplayName: names[b.MemberID],
			BlockedAt:   b.CreatedAt,
		})
	}

	return entries, nil
}

// resolveNames maps members to display names, best effort. Views are
// display-only, so a directory outage degrades to bare IDs instead of
// failing the request.
func (v *viewer) resolveNames(ctx context.Context, communityID uint64, memberIDs []uint64) map[uint64]string {
	if len(memberIDs) == 0 {
		return map[uint64]string{}
	}

	members, err := v.directory.GetMembers(ctx, communityID, memberIDs)
	if err != nil {
		logger.WarnCtx(ctx, "failed to resolve member names",
			zap.Uint64("community_id", communityID),
			zap.Error(err))
		return map[uint64]string{}
	}

	names := make(map[uint64]string, len(members))
	for id, m := range members {
		names[id] = m.DisplayName
	}
	return names
}
