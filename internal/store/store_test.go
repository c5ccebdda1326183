package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/store/schema"
)

var evalTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// buildEvaluationInput creates an ApplyEvaluation input with the eligible
// ranking already ordered by play count descending
func buildEvaluationInput(communityID uint64, artist string, eligible ...domain.MemberPlayCount) ApplyEvaluationInput {
	return ApplyEvaluationInput{
		CommunityID: communityID,
		ArtistKey:   domain.NormalizeArtist(artist),
		Eligible:    eligible,
		Now:         evalTime,
	}
}

// RunStoreTests runs the store test suite against a fresh store per test
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	t.Run("ApplyEvaluationCreatesCrown", func(t *testing.T) {
		testApplyEvaluationCreatesCrown(t, initDB(t))
	})
	t.Run("ApplyEvaluationIsIdempotent", func(t *testing.T) {
		testApplyEvaluationIsIdempotent(t, initDB(t))
	})
	t.Run("ApplyEvaluationTransfersCrown", func(t *testing.T) {
		testApplyEvaluationTransfersCrown(t, initDB(t))
	})
	t.Run("ApplyEvaluationTransfersToRunnerUpWhenHolderFilteredOut", func(t *testing.T) {
		testApplyEvaluationTransfersToRunnerUpWhenHolderFilteredOut(t, initDB(t))
	})
	t.Run("ApplyEvaluationTieKeepsHolder", func(t *testing.T) {
		testApplyEvaluationTieKeepsHolder(t, initDB(t))
	})
	t.Run("ApplyEvaluationRefreshesSnapshot", func(t *testing.T) {
		testApplyEvaluationRefreshesSnapshot(t, initDB(t))
	})
	t.Run("ApplyEvaluationRetiresCrown", func(t *testing.T) {
		testApplyEvaluationRetiresCrown(t, initDB(t))
	})
	t.Run("ApplyEvaluationSeededFlag", func(t *testing.T) {
		testApplyEvaluationSeededFlag(t, initDB(t))
	})
	t.Run("CommunitySettings", func(t *testing.T) {
		testCommunitySettings(t, initDB(t))
	})
	t.Run("CrownBlocks", func(t *testing.T) {
		testCrownBlocks(t, initDB(t))
	})
	t.Run("DeletesAndCounts", func(t *testing.T) {
		testDeletesAndCounts(t, initDB(t))
	})
	t.Run("ListActiveCrowns", func(t *testing.T) {
		testListActiveCrowns(t, initDB(t))
	})
	t.Run("ListStolenCrowns", func(t *testing.T) {
		testListStolenCrowns(t, initDB(t))
	})
}

func testApplyEvaluationCreatesCrown(t *testing.T, store Store) {
	ctx := context.Background()

	crown, action, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42},
		domain.MemberPlayCount{MemberID: 2, PlayCount: 17},
	))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreated, action)
	require.NotNil(t, crown)
	assert.Equal(t, uint64(1), crown.OwnerID)
	assert.Equal(t, 42, crown.PlayCount)
	assert.True(t, crown.Active)
	assert.False(t, crown.Seeded)
	assert.Nil(t, crown.TransferredAt)

	active, err := store.GetActiveCrown(ctx, 100, domain.NormalizeArtist("Radiohead"))
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, uint64(1), active.OwnerID)
}

func testApplyEvaluationIsIdempotent(t *testing.T, store Store) {
	ctx := context.Background()
	input := buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42},
	)

	_, action, err := store.ApplyEvaluation(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreated, action)

	crown, action, err := store.ApplyEvaluation(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionNone, action)
	require.NotNil(t, crown)
	assert.Equal(t, uint64(1), crown.OwnerID)

	count, err := store.CountCommunityCrowns(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func testApplyEvaluationTransfersCrown(t *testing.T, store Store) {
	ctx := context.Background()

	_, _, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42},
	))
	require.NoError(t, err)

	// Member 2 strictly overtakes member 1
	crown, action, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 2, PlayCount: 50},
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42},
	))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionTransferred, action)
	require.NotNil(t, crown)
	assert.Equal(t, uint64(2), crown.OwnerID)
	assert.Equal(t, 50, crown.PlayCount)
	assert.True(t, crown.Active)

	// The old row is kept as history
	stolen, total, err := store.ListStolenCrowns(ctx, 100, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, stolen, 1)
	assert.Equal(t, uint64(1), stolen[0].Crown.OwnerID)
	assert.False(t, stolen[0].Crown.Active)
	require.NotNil(t, stolen[0].Crown.TransferredAt)
}

func testApplyEvaluationTransfersToRunnerUpWhenHolderFilteredOut(t *testing.T, store Store) {
	ctx := context.Background()

	_, _, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42},
	))
	require.NoError(t, err)

	// The holder was filtered out of the eligible ranking (e.g. blocked);
	// the runner-up takes the crown even with fewer plays than the holder's
	// captured count, and the successor row is organic, never seeded
	crown, action, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 2, PlayCount: 30},
	))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionTransferred, action)
	require.NotNil(t, crown)
	assert.Equal(t, uint64(2), crown.OwnerID)
	assert.Equal(t, 30, crown.PlayCount)
	assert.True(t, crown.Active)
	assert.False(t, crown.Seeded)

	stolen, total, err := store.ListStolenCrowns(ctx, 100, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, stolen, 1)
	assert.Equal(t, uint64(1), stolen[0].Crown.OwnerID)
	assert.False(t, stolen[0].Crown.Active)
	require.NotNil(t, stolen[0].Crown.TransferredAt)
	require.NotNil(t, stolen[0].TakenBy)
	assert.Equal(t, uint64(2), *stolen[0].TakenBy)
}

func testApplyEvaluationTieKeepsHolder(t *testing.T, store Store) {
	ctx := context.Background()

	_, _, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 5, PlayCount: 42},
	))
	require.NoError(t, err)

	// A challenger matching the holder's count must not take the crown, even
	// when ordered first by the lower-member-ID tie break
	crown, action, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 2, PlayCount: 42},
		domain.MemberPlayCount{MemberID: 5, PlayCount: 42},
	))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionNone, action)
	require.NotNil(t, crown)
	assert.Equal(t, uint64(5), crown.OwnerID)
}

func testApplyEvaluationRefreshesSnapshot(t *testing.T, store Store) {
	ctx := context.Background()

	_, _, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42},
	))
	require.NoError(t, err)

	// Holder's count grew; ownership unchanged but the snapshot refreshes
	crown, action, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 1, PlayCount: 60},
	))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionNone, action)
	require.NotNil(t, crown)
	assert.Equal(t, 60, crown.PlayCount)

	active, err := store.GetActiveCrown(ctx, 100, domain.NormalizeArtist("Radiohead"))
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, 60, active.PlayCount)
}

func testApplyEvaluationRetiresCrown(t *testing.T, store Store) {
	ctx := context.Background()

	// Nobody eligible and nobody crowned: nothing to do
	crown, action, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead"))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionNone, action)
	assert.Nil(t, crown)

	_, _, err = store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42},
	))
	require.NoError(t, err)

	// Holder lost eligibility with no successor: retire without replacement
	crown, action, err = store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead"))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRetired, action)
	require.NotNil(t, crown)
	assert.False(t, crown.Active)
	require.NotNil(t, crown.TransferredAt)

	active, err := store.GetActiveCrown(ctx, 100, domain.NormalizeArtist("Radiohead"))
	require.NoError(t, err)
	assert.Nil(t, active)
}

func testApplyEvaluationSeededFlag(t *testing.T, store Store) {
	ctx := context.Background()

	seededInput := buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42},
	)
	seededInput.ForceSeeded = true

	crown, action, err := store.ApplyEvaluation(ctx, seededInput)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreated, action)
	assert.True(t, crown.Seeded)

	// An organic overtake clears the flag even when the reseed requested it
	transferInput := buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 2, PlayCount: 50},
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42},
	)
	transferInput.ForceSeeded = true

	crown, action, err = store.ApplyEvaluation(ctx, transferInput)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionTransferred, action)
	assert.False(t, crown.Seeded)
}

func testCommunitySettings(t *testing.T, store Store) {
	ctx := context.Background()

	// Unconfigured communities serve the defaults
	settings, err := store.GetCommunitySettings(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, schema.DefaultMinimumPlayCount, settings.MinimumPlayCount)
	assert.True(t, settings.CrownsEnabled)
	assert.Nil(t, settings.ActivityThresholdDays)

	threshold := 30
	err = store.UpsertCommunitySettings(ctx, &schema.CommunityCrownSettings{
		CommunityID:           100,
		MinimumPlayCount:      10,
		ActivityThresholdDays: &threshold,
		CrownsEnabled:         false,
		BlockedRoleIDs:        datatypes.JSONSlice[uint64]{555},
		UpdatedAt:             evalTime,
	})
	require.NoError(t, err)

	settings, err = store.GetCommunitySettings(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, settings.MinimumPlayCount)
	require.NotNil(t, settings.ActivityThresholdDays)
	assert.Equal(t, 30, *settings.ActivityThresholdDays)
	assert.False(t, settings.CrownsEnabled)
	assert.Equal(t, datatypes.JSONSlice[uint64]{555}, settings.BlockedRoleIDs)

	// Upsert replaces the existing row
	err = store.UpsertCommunitySettings(ctx, &schema.CommunityCrownSettings{
		CommunityID:      100,
		MinimumPlayCount: 3,
		CrownsEnabled:    true,
		UpdatedAt:        evalTime.Add(time.Hour),
	})
	require.NoError(t, err)

	settings, err = store.GetCommunitySettings(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, settings.MinimumPlayCount)
	assert.Nil(t, settings.ActivityThresholdDays)
	assert.True(t, settings.CrownsEnabled)
}

func testCrownBlocks(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.AddCrownBlock(ctx, 100, 7))
	// Blocking twice is a no-op, not an error
	require.NoError(t, store.AddCrownBlock(ctx, 100, 7))
	require.NoError(t, store.AddCrownBlock(ctx, 100, 9))

	blocks, err := store.ListCrownBlocks(ctx, 100)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	removed, err := store.RemoveCrownBlock(ctx, 100, 7)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.RemoveCrownBlock(ctx, 100, 7)
	require.NoError(t, err)
	assert.False(t, removed)

	blocks, err = store.ListCrownBlocks(ctx, 100)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, uint64(9), blocks[0].MemberID)
}

func testDeletesAndCounts(t *testing.T, store Store) {
	ctx := context.Background()

	seeded := buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42})
	seeded.ForceSeeded = true
	_, _, err := store.ApplyEvaluation(ctx, seeded)
	require.NoError(t, err)

	_, _, err = store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Autechre",
		domain.MemberPlayCount{MemberID: 2, PlayCount: 17}))
	require.NoError(t, err)

	_, _, err = store.ApplyEvaluation(ctx, buildEvaluationInput(200, "Radiohead",
		domain.MemberPlayCount{MemberID: 1, PlayCount: 8}))
	require.NoError(t, err)

	count, err := store.CountCommunityCrowns(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = store.CountSeededCrowns(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Deleting an artist with no crowns is a successful no-op
	deleted, err := store.DeleteArtistCrowns(ctx, 100, domain.NormalizeArtist("Boards of Canada"))
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = store.DeleteSeededCrowns(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = store.DeleteMemberCrowns(ctx, 100, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// Community 200 is untouched by community 100 deletions
	count, err = store.CountCommunityCrowns(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	deleted, err = store.DeleteCommunityCrowns(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func testListActiveCrowns(t *testing.T, store Store) {
	ctx := context.Background()

	artists := []struct {
		name  string
		owner uint64
		plays int
	}{
		{"Radiohead", 1, 90},
		{"Autechre", 2, 40},
		{"Boards of Canada", 3, 70},
	}
	for _, a := range artists {
		_, _, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, a.name,
			domain.MemberPlayCount{MemberID: a.owner, PlayCount: a.plays}))
		require.NoError(t, err)
	}

	crowns, total, err := store.ListActiveCrowns(ctx, 100, OrderByPlayCount, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, crowns, 2)
	assert.Equal(t, "radiohead", crowns[0].ArtistKey)
	assert.Equal(t, "boards of canada", crowns[1].ArtistKey)

	crowns, total, err = store.ListActiveCrowns(ctx, 100, OrderByPlayCount, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, crowns, 1)
	assert.Equal(t, "autechre", crowns[0].ArtistKey)

	crowns, _, err = store.ListActiveCrowns(ctx, 100, OrderByCapturedAt, 10, 0)
	require.NoError(t, err)
	require.Len(t, crowns, 3)
}

func testListStolenCrowns(t *testing.T, store Store) {
	ctx := context.Background()

	_, _, err := store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42}))
	require.NoError(t, err)

	// Stolen by member 2
	_, _, err = store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Radiohead",
		domain.MemberPlayCount{MemberID: 2, PlayCount: 50},
		domain.MemberPlayCount{MemberID: 1, PlayCount: 42}))
	require.NoError(t, err)

	// Retired with no successor
	_, _, err = store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Autechre",
		domain.MemberPlayCount{MemberID: 3, PlayCount: 20}))
	require.NoError(t, err)
	_, _, err = store.ApplyEvaluation(ctx, buildEvaluationInput(100, "Autechre"))
	require.NoError(t, err)

	stolen, total, err := store.ListStolenCrowns(ctx, 100, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, stolen, 2)

	byArtist := make(map[string]StolenCrown, len(stolen))
	for _, s := range stolen {
		byArtist[s.Crown.ArtistKey] = s
	}

	radiohead := byArtist["radiohead"]
	assert.Equal(t, uint64(1), radiohead.Crown.OwnerID)
	require.NotNil(t, radiohead.TakenBy)
	assert.Equal(t, uint64(2), *radiohead.TakenBy)
	require.NotNil(t, radiohead.TakenByPlayCount)
	assert.Equal(t, 50, *radiohead.TakenByPlayCount)

	autechre := byArtist["autechre"]
	assert.Equal(t, uint64(3), autechre.Crown.OwnerID)
	assert.Nil(t, autechre.TakenBy)
	assert.Nil(t, autechre.TakenByPlayCount)
}
