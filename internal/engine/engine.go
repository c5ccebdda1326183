// Package engine orchestrates crown evaluations: gate on community settings,
// fetch the authoritative ranking, filter for eligibility, and hand the
// ordered result to the store's transactional decision.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chartbot/crown-engine/internal/adapter"
	"github.com/chartbot/crown-engine/internal/cache"
	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/eligibility"
	"github.com/chartbot/crown-engine/internal/logger"
	"github.com/chartbot/crown-engine/internal/ranking"
	"github.com/chartbot/crown-engine/internal/store"
	"github.com/chartbot/crown-engine/internal/store/schema"
)

// Engine evaluates crown ownership
//
//go:generate mockgen -source=engine.go -destination=../mocks/engine.go -package=mocks -mock_names=Engine=MockEngine
type Engine interface {
	// Evaluate recomputes one artist's crown. It is idempotent: evaluating
	// twice with unchanged inputs yields ActionNone the second time.
	Evaluate(ctx context.Context, communityID uint64, artist domain.ArtistKey) (*domain.EvaluationResult, error)
	// Seed evaluates one artist as part of a bulk reseed; a crown created
	// by it is marked seeded
	Seed(ctx context.Context, communityID uint64, artist domain.ArtistKey) (*domain.EvaluationResult, error)
}

type engine struct {
	store     store.Store
	cache     cache.Provider
	ranking   ranking.RankingSource
	directory ranking.MemberDirectory
	clock     adapter.Clock
}

// New creates an Engine
func New(
	s store.Store,
	c cache.Provider,
	r ranking.RankingSource,
	d ranking.MemberDirectory,
	clock adapter.Clock,
) Engine {
	return &engine{
		store:     s,
		cache:     c,
		ranking:   r,
		directory: d,
		clock:     clock,
	}
}

func (e *engine) Evaluate(ctx context.Context, communityID uint64, artist domain.ArtistKey) (*domain.EvaluationResult, error) {
	return e.evaluate(ctx, communityID, artist, false)
}

func (e *engine) Seed(ctx context.Context, communityID uint64, artist domain.ArtistKey) (*domain.EvaluationResult, error) {
	return e.evaluate(ctx, communityID, artist, true)
}

func (e *engine) evaluate(ctx context.Context, communityID uint64, artist domain.ArtistKey, seeded bool) (*domain.EvaluationResult, error) {
	if !artist.Valid() {
		return nil, fmt.Errorf("invalid artist key")
	}

	snap, err := e.cache.Community(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load community snapshot: %w", err)
	}

	noop := &domain.EvaluationResult{
		Action:      domain.ActionNone,
		CommunityID: communityID,
		ArtistKey:   artist,
	}

	// Disabled communities take no writes at all; existing crowns stay put
	if !snap.Settings.CrownsEnabled {
		return noop, nil
	}

	// The ranking is authoritative. If it cannot be fetched the evaluation
	// is abandoned; existing ownership must not change on guesses.
	rawRanking, err := e.ranking.GetRanking(ctx, communityID, artist)
	if err != nil {
		return nil, err
	}

	eligible, err := e.filterEligible(ctx, communityID, snap, rawRanking)
	if err != nil {
		return nil, err
	}

	crown, action, err := e.apply(ctx, store.ApplyEvaluationInput{
		CommunityID: communityID,
		ArtistKey:   artist,
		Eligible:    eligible,
		ForceSeeded: seeded,
		Now:         e.clock.Now(),
	})
	if errors.Is(err, domain.ErrWriteConflict) {
		// A concurrent evaluation of the same artist won; its result is as
		// fresh as ours would have been
		logger.InfoCtx(ctx, "concurrent evaluation won the crown row, abandoning")
		return noop, nil
	}
	if err != nil {
		return nil, err
	}

	result := &domain.EvaluationResult{
		Action:      action,
		CommunityID: communityID,
		ArtistKey:   artist,
	}
	if crown != nil && crown.Active {
		result.OwnerID = crown.OwnerID
		result.PlayCount = crown.PlayCount
		result.Seeded = crown.Seeded
	}

	return result, nil
}

// apply runs the store decision, retrying once on a write conflict
func (e *engine) apply(ctx context.Context, input store.ApplyEvaluationInput) (*schema.Crown, domain.EvaluationAction, error) {
	crown, action, err := e.store.ApplyEvaluation(ctx, input)
	if errors.Is(err, domain.ErrWriteConflict) {
		crown, action, err = e.store.ApplyEvaluation(ctx, input)
	}
	return crown, action, err
}

// filterEligible batches the activity and role lookups the filter needs and
// runs the pure eligibility pass. Members already out on the cheap local
// filters are excluded from the collaborator calls.
func (e *engine) filterEligible(ctx context.Context, communityID uint64, snap *cache.Snapshot, rawRanking []domain.MemberPlayCount) ([]domain.MemberPlayCount, error) {
	memberIDs := make([]uint64, 0, len(rawRanking))
	for _, m := range rawRanking {
		if m.PlayCount < snap.Settings.MinimumPlayCount {
			continue
		}
		if _, blocked := snap.Blocked[m.MemberID]; blocked {
			continue
		}
		memberIDs = append(memberIDs, m.MemberID)
	}

	var lastActive map[uint64]time.Time
	if snap.Settings.ActivityThresholdDays != nil && len(memberIDs) > 0 {
		var err error
		lastActive, err = e.ranking.GetLastActive(ctx, communityID, memberIDs)
		if err != nil {
			return nil, err
		}
	}

	var roles map[uint64][]uint64
	if snap.Settings.RoleFilterConfigured() && len(memberIDs) > 0 {
		var err error
		roles, err = e.directory.GetRoles(ctx, communityID, memberIDs)
		if err != nil {
			return nil, err
		}
	}

	return eligibility.Filter(eligibility.Input{
		Ranking:    rawRanking,
		Settings:   snap.Settings,
		Blocked:    snap.Blocked,
		LastActive: lastActive,
		Roles:      roles,
		Now:        e.clock.Now(),
	}), nil
}
