// Package ranking reaches the external play-count and member systems. The
// engine treats both as authoritative: ranking data is never cached, so an
// unavailable source aborts the evaluation rather than serving stale counts.
package ranking

import (
	"context"
	"time"

	"github.com/chartbot/crown-engine/internal/domain"
)

// RankingSource serves tracked play counts and member activity
//
//go:generate mockgen -source=ranking.go -destination=../mocks/ranking.go -package=mocks -mock_names=RankingSource=MockRankingSource,MemberDirectory=MockMemberDirectory
type RankingSource interface {
	// GetRanking returns the per-member play counts for one artist, in no
	// particular order. Failures wrap domain.ErrRankingUnavailable.
	GetRanking(ctx context.Context, communityID uint64, artist domain.ArtistKey) ([]domain.MemberPlayCount, error)
	// ListArtists returns every artist key with tracked plays in the
	// community; used by bulk reseeds
	ListArtists(ctx context.Context, communityID uint64) ([]domain.ArtistKey, error)
	// GetLastActive returns last bot interaction times for the given
	// members; members who never interacted are absent from the map
	GetLastActive(ctx context.Context, communityID uint64, memberIDs []uint64) (map[uint64]time.Time, error)
}

// MemberDirectory serves community membership data
type MemberDirectory interface {
	// GetRoles returns role IDs per member. Failures wrap
	// domain.ErrDirectoryUnavailable.
	GetRoles(ctx context.Context, communityID uint64, memberIDs []uint64) (map[uint64][]uint64, error)
	// GetMembers resolves members to display entries
	GetMembers(ctx context.Context, communityID uint64, memberIDs []uint64) (map[uint64]domain.Member, error)
}
