// Package maintenance implements the bulk crown operations: reseeding a
// whole community, targeted kills, and the confirmed mass deletions.
package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chartbot/crown-engine/internal/adapter"
	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/engine"
	"github.com/chartbot/crown-engine/internal/logger"
	"github.com/chartbot/crown-engine/internal/ranking"
	"github.com/chartbot/crown-engine/internal/store"
)

// ConfirmationTTL is how long a kill confirmation token stays valid
const ConfirmationTTL = 5 * time.Minute

// KillPreview is the first half of a two-step mass deletion: the caller
// shows the count to the operator and passes the token back to confirm
type KillPreview struct {
	Token      string    `json:"token"`
	Count      int64     `json:"count"`
	SeededOnly bool      `json:"seeded_only"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// SeedSummary aggregates a bulk reseed's per-artist outcomes
type SeedSummary struct {
	Artists     int `json:"artists"`
	Created     int `json:"created"`
	Transferred int `json:"transferred"`
	Retired     int `json:"retired"`
	Unchanged   int `json:"unchanged"`
	Failed      int `json:"failed"`
}

// Service exposes the maintenance operations
//
//go:generate mockgen -source=maintenance.go -destination=../mocks/maintenance.go -package=mocks -mock_names=Service=MockMaintenanceService
type Service interface {
	// Seed evaluates every artist with tracked plays in the community;
	// per-artist failures are counted, not fatal
	Seed(ctx context.Context, communityID uint64) (*SeedSummary, error)
	// KillOne deletes all crown rows for one artist; deleting a crown that
	// does not exist is a successful no-op
	KillOne(ctx context.Context, communityID uint64, artist domain.ArtistKey) (int64, error)
	// RequestKill previews a mass deletion and issues a single-use
	// confirmation token
	RequestKill(ctx context.Context, communityID uint64, seededOnly bool) (*KillPreview, error)
	// ConfirmKill executes a previously requested mass deletion. An
	// unknown, expired, or already-used token returns
	// domain.ErrInvalidConfirmation.
	ConfirmKill(ctx context.Context, communityID uint64, token string) (int64, error)
	// RemoveForMember deletes every crown row owned by the member, e.g.
	// when they leave the community
	RemoveForMember(ctx context.Context, communityID, memberID uint64) (int64, error)
}

type pendingKill struct {
	communityID uint64
	seededOnly  bool
	expiresAt   time.Time
}

type service struct {
	store   store.Store
	engine  engine.Engine
	ranking ranking.RankingSource
	clock   adapter.Clock

	seedPoolSize  int
	seedQueueSize int

	mu      sync.Mutex
	pending map[string]pendingKill
}

// New creates a maintenance Service
func New(
	s store.Store,
	e engine.Engine,
	r ranking.RankingSource,
	clock adapter.Clock,
	seedPoolSize int,
	seedQueueSize int,
) Service {
	return &service{
		store:         s,
		engine:        e,
		ranking:       r,
		clock:         clock,
		seedPoolSize:  seedPoolSize,
		seedQueueSize: seedQueueSize,
		pending:       make(map[string]pendingKill),
	}
}

func (s *service) KillOne(ctx context.Context, communityID uint64, artist domain.ArtistKey) (int64, error) {
	if !artist.Valid() {
		return 0, fmt.Errorf("invalid artist key")
	}

	deleted, err := s.store.DeleteArtistCrowns(ctx, communityID, artist)
	if err != nil {
		return 0, fmt.Errorf("failed to delete artist crowns: %w", err)
	}

	logger.InfoCtx(ctx, "killed artist crowns")
	return deleted, nil
}

func (s *service) RequestKill(ctx context.Context, communityID uint64, seededOnly bool) (*KillPreview, error) {
	var (
		count int64
		err   error
	)
	if seededOnly {
		count, err = s.store.CountSeededCrowns(ctx, communityID)
	} else {
		count, err = s.store.CountCommunityCrowns(ctx, communityID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to count crowns: %w", err)
	}

	token := uuid.NewString()
	expiresAt := s.clock.Now().Add(ConfirmationTTL)

	s.mu.Lock()
	s.pending[token] = pendingKill{
		communityID: communityID,
		seededOnly:  seededOnly,
		expiresAt:   expiresAt,
	}
	s.mu.Unlock()

	return &KillPreview{
		Token:      token,
		Count:      count,
		SeededOnly: seededOnly,
		ExpiresAt:  expiresAt,
	}, nil
}

func (s *service) ConfirmKill(ctx context.Context, communityID uint64, token string) (int64, error) {
	s.mu.Lock()
	pending, ok := s.pending[token]
	// Single use: the token is consumed whether or not the deletion runs
	delete(s.pending, token)
	s.mu.Unlock()

	if !ok || pending.communityID != communityID || s.clock.Now().After(pending.expiresAt) {
		return 0, domain.ErrInvalidConfirmation
	}

	var (
		deleted int64
		err     error
	)
	if pending.seededOnly {
		deleted, err = s.store.DeleteSeededCrowns(ctx, communityID)
	} else {
		deleted, err = s.store.DeleteCommunityCrowns(ctx, communityID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to delete crowns: %w", err)
	}

	logger.InfoCtx(ctx, "executed confirmed crown deletion")
	return deleted, nil
}

func (s *service) RemoveForMember(ctx context.Context, communityID, memberID uint64) (int64, error) {
	deleted, err := s.store.DeleteMemberCrowns(ctx, communityID, memberID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete member crowns: %w", err)
	}

	return deleted, nil
}
