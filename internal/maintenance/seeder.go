package maintenance

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/alitto/pond/v2"

	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/logger"
	"go.uber.org/zap"
)

// Seed fans the community's artists out over a worker pool and evaluates
// each one as seeded. A failed artist does not stop the sweep.
func (s *service) Seed(ctx context.Context, communityID uint64) (*SeedSummary, error) {
	artists, err := s.ranking.ListArtists(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}

	var created, transferred, retired, unchanged, failed atomic.Int32

	pool := pond.NewPool(
		s.seedPoolSize,
		pond.WithQueueSize(s.seedQueueSize),
		pond.WithContext(ctx),
	)

	for _, artist := range artists {
		pool.Submit(func() {
			result, err := s.engine.Seed(ctx, communityID, artist)
			if err != nil {
				failed.Add(1)
				logger.WarnCtx(ctx, "seed evaluation failed",
					zap.Uint64("community_id", communityID),
					zap.String("artist", artist.String()),
					zap.Error(err))
				return
			}

			switch result.Action {
			case domain.ActionCreated:
				created.Add(1)
			case domain.ActionTransferred:
				transferred.Add(1)
			case domain.ActionRetired:
				retired.Add(1)
			default:
				unchanged.Add(1)
			}
		})
	}

	pool.StopAndWait()

	summary := &SeedSummary{
		Artists:     len(artists),
		Created:     int(created.Load()),
		Transferred: int(transferred.Load()),
		Retired:     int(retired.Load()),
		Unchanged:   int(unchanged.Load()),
		Failed:      int(failed.Load()),
	}

	logger.InfoCtx(ctx, "bulk reseed finished",
		zap.Uint64("community_id", communityID),
		zap.Int("artists", summary.Artists),
		zap.Int("created", summary.Created),
		zap.Int("transferred", summary.Transferred),
		zap.Int("retired", summary.Retired),
		zap.Int("unchanged", summary.Unchanged),
		zap.Int("failed", summary.Failed))

	return summary, nil
}
