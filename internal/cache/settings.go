// Package cache holds a short-lived per-community snapshot of settings and
// crown blocks so bursts of evaluations do not hammer the database.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/chartbot/crown-engine/internal/store"
	"github.com/chartbot/crown-engine/internal/store/schema"
)

// DefaultTTL bounds how stale a snapshot may be; settings changes also
// invalidate synchronously, the TTL only covers out-of-band writes
const DefaultTTL = 30 * time.Second

// DefaultSize is the maximum number of communities held at once
const DefaultSize = 1024

// Snapshot is one community's cached evaluation inputs
type Snapshot struct {
	Settings *schema.CommunityCrownSettings
	// Blocked is the community's crown-block set keyed by member ID
	Blocked map[uint64]struct{}
}

// Provider serves community snapshots
//
//go:generate mockgen -source=settings.go -destination=../mocks/cache.go -package=mocks -mock_names=Provider=MockCacheProvider
type Provider interface {
	// Community returns the community's snapshot, loading it on a miss
	Community(ctx context.Context, communityID uint64) (*Snapshot, error)
	// Invalidate drops the community's snapshot; called on every settings
	// or block write so the next read observes the change
	Invalidate(communityID uint64)
}

type lruProvider struct {
	store store.Store
	lru   *expirable.LRU[uint64, *Snapshot]
}

// NewProvider creates an LRU-backed Provider; size and ttl fall back to the
// package defaults when zero
func NewProvider(s store.Store, size int, ttl time.Duration) Provider {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &lruProvider{
		store: s,
		lru:   expirable.NewLRU[uint64, *Snapshot](size, nil, ttl),
	}
}

func (p *lruProvider) Community(ctx context.Context, communityID uint64) (*Snapshot, error) {
	if snap, ok := p.lru.Get(communityID); ok {
		return snap, nil
	}

	settings, err := p.store.GetCommunitySettings(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load community settings: %w", err)
	}

	blocks, err := p.store.ListCrownBlocks(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load crown blocks: %w", err)
	}

	blocked := make(map[uint64]struct{}, len(blocks))
	for _, b := range blocks {
		blocked[b.MemberID] = struct{}{}
	}

	snap := &Snapshot{
		Settings: settings,
		Blocked:  blocked,
	}
	p.lru.Add(communityID, snap)

	return snap, nil
}

func (p *lruProvider) Invalidate(communityID uint64) {
	p.lru.Remove(communityID)
}
