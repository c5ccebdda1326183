package store

import (
	"context"
	"time"

	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/store/schema"
)

// CrownOrder selects the ordering of an active-crown listing
type CrownOrder string

const (
	// OrderByPlayCount orders by the captured play count, highest first
	OrderByPlayCount CrownOrder = "play_count"
	// OrderByCapturedAt orders by capture time, newest first
	OrderByCapturedAt CrownOrder = "captured_at"
)

// ApplyEvaluationInput carries one artist's eligible ranking into the
// transactional crown decision
type ApplyEvaluationInput struct {
	CommunityID uint64
	ArtistKey   domain.ArtistKey
	// Eligible is the filtered ranking, ordered by play count descending
	// with ties broken by lowest member ID; empty means no eligible holder
	Eligible []domain.MemberPlayCount
	// ForceSeeded marks a crown created by a bulk reseed; transfers are
	// never seeded regardless of this flag
	ForceSeeded bool
	Now         time.Time
}

// StolenCrown is a retired crown row joined to the successor active row
type StolenCrown struct {
	Crown schema.Crown
	// TakenBy is the member now holding the artist's crown; nil when the
	// crown was retired without a successor
	TakenBy          *uint64
	TakenByPlayCount *int
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetCommunitySettings returns the community's crown settings, or the
	// defaults when the community has never been configured
	GetCommunitySettings(ctx context.Context, communityID uint64) (*schema.CommunityCrownSettings, error)
	// UpsertCommunitySettings creates or replaces the community's settings
	UpsertCommunitySettings(ctx context.Context, settings *schema.CommunityCrownSettings) error

	// ListCrownBlocks returns every crown block for the community
	ListCrownBlocks(ctx context.Context, communityID uint64) ([]schema.CrownBlock, error)
	// AddCrownBlock blocks a member from holding crowns; idempotent
	AddCrownBlock(ctx context.Context, communityID, memberID uint64) error
	// RemoveCrownBlock lifts a block; returns false when no block existed
	RemoveCrownBlock(ctx context.Context, communityID, memberID uint64) (bool, error)

	// GetActiveCrown returns the active crown row for an artist, or nil
	GetActiveCrown(ctx context.Context, communityID uint64, artistKey domain.ArtistKey) (*schema.Crown, error)
	// ApplyEvaluation runs the create/transfer/retire decision for one
	// artist inside a single transaction, locking the active row. Returns
	// domain.ErrWriteConflict when a concurrent evaluation won the row.
	ApplyEvaluation(ctx context.Context, input ApplyEvaluationInput) (*schema.Crown, domain.EvaluationAction, error)

	// DeleteArtistCrowns hard-deletes all rows for one artist; 0 is success
	DeleteArtistCrowns(ctx context.Context, communityID uint64, artistKey domain.ArtistKey) (int64, error)
	// DeleteCommunityCrowns hard-deletes every crown row of the community
	DeleteCommunityCrowns(ctx context.Context, communityID uint64) (int64, error)
	// DeleteSeededCrowns hard-deletes only rows with seeded = true
	DeleteSeededCrowns(ctx context.Context, communityID uint64) (int64, error)
	// DeleteMemberCrowns hard-deletes every row owned by the member
	DeleteMemberCrowns(ctx context.Context, communityID, memberID uint64) (int64, error)
	// CountCommunityCrowns counts every crown row of the community
	CountCommunityCrowns(ctx context.Context, communityID uint64) (int64, error)
	// CountSeededCrowns counts rows with seeded = true
	CountSeededCrowns(ctx context.Context, communityID uint64) (int64, error)

	// ListActiveCrowns returns active rows with the requested ordering and
	// the total count for pagination
	ListActiveCrowns(ctx context.Context, communityID uint64, order CrownOrder, limit int, offset uint64) ([]schema.Crown, uint64, error)
	// ListStolenCrowns returns retired rows newest-transfer first, each
	// joined to the successor active holder when one exists
	ListStolenCrowns(ctx context.Context, communityID uint64, limit int, offset uint64) ([]StolenCrown, uint64, error)
}
