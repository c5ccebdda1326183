package engine

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartbot/crown-engine/internal/cache"
	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/logger"
	"github.com/chartbot/crown-engine/internal/mocks"
	"github.com/chartbot/crown-engine/internal/store"
	"github.com/chartbot/crown-engine/internal/store/schema"
)

type testEngineMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	cache     *mocks.MockCacheProvider
	ranking   *mocks.MockRankingSource
	directory *mocks.MockMemberDirectory
	clock     *mocks.MockClock
}

func setupTestEngine(t *testing.T) (Engine, *testEngineMocks) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	m := &testEngineMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		cache:     mocks.NewMockCacheProvider(ctrl),
		ranking:   mocks.NewMockRankingSource(ctrl),
		directory: mocks.NewMockMemberDirectory(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	return New(m.store, m.cache, m.ranking, m.directory, m.clock), m
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func defaultSnapshot(communityID uint64) *cache.Snapshot {
	return &cache.Snapshot{
		Settings: schema.DefaultSettings(communityID),
		Blocked:  map[uint64]struct{}{},
	}
}

func TestEvaluateDisabledCommunityWritesNothing(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	artist := domain.NormalizeArtist("Aphex Twin")

	settings := schema.DefaultSettings(100)
	settings.CrownsEnabled = false

	m.cache.EXPECT().
		Community(ctx, uint64(100)).
		Return(&cache.Snapshot{Settings: settings, Blocked: map[uint64]struct{}{}}, nil)
	// No ranking fetch, no store write

	result, err := engine.Evaluate(ctx, 100, artist)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionNone, result.Action)
	assert.Zero(t, result.OwnerID)
}

func TestEvaluateCreatesCrown(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	artist := domain.NormalizeArtist("Aphex Twin")

	m.cache.EXPECT().Community(ctx, uint64(100)).Return(defaultSnapshot(100), nil)
	m.ranking.EXPECT().
		GetRanking(ctx, uint64(100), artist).
		Return([]domain.MemberPlayCount{
			{MemberID: 2, PlayCount: 17},
			{MemberID: 1, PlayCount: 42},
		}, nil)
	m.clock.EXPECT().Now().Return(testNow).Times(2)
	m.store.EXPECT().
		ApplyEvaluation(ctx, store.ApplyEvaluationInput{
			CommunityID: 100,
			ArtistKey:   artist,
			Eligible: []domain.MemberPlayCount{
				{MemberID: 1, PlayCount: 42},
				{MemberID: 2, PlayCount: 17},
			},
			Now: testNow,
		}).
		Return(&schema.Crown{
			CommunityID: 100,
			ArtistKey:   artist.String(),
			OwnerID:     1,
			PlayCount:   42,
			Active:      true,
		}, domain.ActionCreated, nil)

	result, err := engine.Evaluate(ctx, 100, artist)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreated, result.Action)
	assert.Equal(t, uint64(1), result.OwnerID)
	assert.Equal(t, 42, result.PlayCount)
	assert.False(t, result.Seeded)
}

func TestEvaluateIdempotent(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	artist := domain.NormalizeArtist("Aphex Twin")

	m.cache.EXPECT().Community(ctx, uint64(100)).Return(defaultSnapshot(100), nil).Times(2)
	m.ranking.EXPECT().
		GetRanking(ctx, uint64(100), artist).
		Return([]domain.MemberPlayCount{{MemberID: 1, PlayCount: 42}}, nil).
		Times(2)
	m.clock.EXPECT().Now().Return(testNow).AnyTimes()

	holder := &schema.Crown{CommunityID: 100, ArtistKey: artist.String(), OwnerID: 1, PlayCount: 42, Active: true}
	gomock.InOrder(
		m.store.EXPECT().
			ApplyEvaluation(ctx, gomock.Any()).
			Return(holder, domain.ActionCreated, nil),
		m.store.EXPECT().
			ApplyEvaluation(ctx, gomock.Any()).
			Return(holder, domain.ActionNone, nil),
	)

	first, err := engine.Evaluate(ctx, 100, artist)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreated, first.Action)

	second, err := engine.Evaluate(ctx, 100, artist)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionNone, second.Action)
	assert.Equal(t, uint64(1), second.OwnerID)
}

func TestEvaluateRankingUnavailableAbandons(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	artist := domain.NormalizeArtist("Aphex Twin")

	m.cache.EXPECT().Community(ctx, uint64(100)).Return(defaultSnapshot(100), nil)
	m.ranking.EXPECT().
		GetRanking(ctx, uint64(100), artist).
		Return(nil, domain.ErrRankingUnavailable)
	// The store must not be touched

	result, err := engine.Evaluate(ctx, 100, artist)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrRankingUnavailable)
}

func TestEvaluateRetriesOnceOnWriteConflict(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	artist := domain.NormalizeArtist("Aphex Twin")

	m.cache.EXPECT().Community(ctx, uint64(100)).Return(defaultSnapshot(100), nil)
	m.ranking.EXPECT().
		GetRanking(ctx, uint64(100), artist).
		Return([]domain.MemberPlayCount{{MemberID: 1, PlayCount: 42}}, nil)
	m.clock.EXPECT().Now().Return(testNow).AnyTimes()

	gomock.InOrder(
		m.store.EXPECT().
			ApplyEvaluation(ctx, gomock.Any()).
			Return(nil, domain.ActionNone, domain.ErrWriteConflict),
		m.store.EXPECT().
			ApplyEvaluation(ctx, gomock.Any()).
			Return(&schema.Crown{OwnerID: 1, PlayCount: 42, Active: true}, domain.ActionNone, nil),
	)

	result, err := engine.Evaluate(ctx, 100, artist)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.OwnerID)
}

func TestEvaluateAbandonsAfterSecondConflict(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	artist := domain.NormalizeArtist("Aphex Twin")

	m.cache.EXPECT().Community(ctx, uint64(100)).Return(defaultSnapshot(100), nil)
	m.ranking.EXPECT().
		GetRanking(ctx, uint64(100), artist).
		Return([]domain.MemberPlayCount{{MemberID: 1, PlayCount: 42}}, nil)
	m.clock.EXPECT().Now().Return(testNow).AnyTimes()

	m.store.EXPECT().
		ApplyEvaluation(ctx, gomock.Any()).
		Return(nil, domain.ActionNone, domain.ErrWriteConflict).
		Times(2)

	// A lost race is not an error: the winner's evaluation is just as fresh
	result, err := engine.Evaluate(ctx, 100, artist)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionNone, result.Action)
}

func TestEvaluateFetchesActivityOnlyWhenConfigured(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	artist := domain.NormalizeArtist("Aphex Twin")

	threshold := 30
	settings := schema.DefaultSettings(100)
	settings.ActivityThresholdDays = &threshold

	m.cache.EXPECT().
		Community(ctx, uint64(100)).
		Return(&cache.Snapshot{Settings: settings, Blocked: map[uint64]struct{}{}}, nil)
	m.ranking.EXPECT().
		GetRanking(ctx, uint64(100), artist).
		Return([]domain.MemberPlayCount{
			{MemberID: 1, PlayCount: 42},
			{MemberID: 2, PlayCount: 30},
		}, nil)
	m.ranking.EXPECT().
		GetLastActive(ctx, uint64(100), []uint64{1, 2}).
		Return(map[uint64]time.Time{
			2: testNow.Add(-24 * time.Hour),
			// member 1 never interacted
		}, nil)
	m.clock.EXPECT().Now().Return(testNow).AnyTimes()

	m.store.EXPECT().
		ApplyEvaluation(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.ApplyEvaluationInput) (*schema.Crown, domain.EvaluationAction, error) {
			// Member 1 is filtered by inactivity; member 2 leads
			require.Len(t, input.Eligible, 1)
			assert.Equal(t, uint64(2), input.Eligible[0].MemberID)
			return &schema.Crown{OwnerID: 2, PlayCount: 30, Active: true}, domain.ActionCreated, nil
		})

	result, err := engine.Evaluate(ctx, 100, artist)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.OwnerID)
}

func TestEvaluateSkipsLookupsForLocallyFilteredMembers(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	artist := domain.NormalizeArtist("Aphex Twin")

	threshold := 30
	settings := schema.DefaultSettings(100)
	settings.ActivityThresholdDays = &threshold

	// Member 7 is blocked and member 9 is below the play-count floor; the
	// activity lookup must only carry the surviving member
	m.cache.EXPECT().
		Community(ctx, uint64(100)).
		Return(&cache.Snapshot{
			Settings: settings,
			Blocked:  map[uint64]struct{}{7: {}},
		}, nil)
	m.ranking.EXPECT().
		GetRanking(ctx, uint64(100), artist).
		Return([]domain.MemberPlayCount{
			{MemberID: 1, PlayCount: 42},
			{MemberID: 7, PlayCount: 40},
			{MemberID: 9, PlayCount: 2},
		}, nil)
	m.ranking.EXPECT().
		GetLastActive(ctx, uint64(100), []uint64{1}).
		Return(map[uint64]time.Time{
			1: testNow.Add(-24 * time.Hour),
		}, nil)
	m.clock.EXPECT().Now().Return(testNow).AnyTimes()

	m.store.EXPECT().
		ApplyEvaluation(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.ApplyEvaluationInput) (*schema.Crown, domain.EvaluationAction, error) {
			require.Len(t, input.Eligible, 1)
			assert.Equal(t, uint64(1), input.Eligible[0].MemberID)
			return &schema.Crown{OwnerID: 1, PlayCount: 42, Active: true}, domain.ActionCreated, nil
		})

	result, err := engine.Evaluate(ctx, 100, artist)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.OwnerID)
}

func TestEvaluateDirectoryUnavailableAbandons(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	artist := domain.NormalizeArtist("Aphex Twin")

	settings := schema.DefaultSettings(100)
	settings.AllowedRoleIDs = []uint64{555}

	m.cache.EXPECT().
		Community(ctx, uint64(100)).
		Return(&cache.Snapshot{Settings: settings, Blocked: map[uint64]struct{}{}}, nil)
	m.ranking.EXPECT().
		GetRanking(ctx, uint64(100), artist).
		Return([]domain.MemberPlayCount{{MemberID: 1, PlayCount: 42}}, nil)
	m.directory.EXPECT().
		GetRoles(ctx, uint64(100), []uint64{1}).
		Return(nil, domain.ErrDirectoryUnavailable)

	result, err := engine.Evaluate(ctx, 100, artist)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
}

func TestSeedMarksCrownSeeded(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	artist := domain.NormalizeArtist("Aphex Twin")

	m.cache.EXPECT().Community(ctx, uint64(100)).Return(defaultSnapshot(100), nil)
	m.ranking.EXPECT().
		GetRanking(ctx, uint64(100), artist).
		Return([]domain.MemberPlayCount{{MemberID: 1, PlayCount: 42}}, nil)
	m.clock.EXPECT().Now().Return(testNow).AnyTimes()

	m.store.EXPECT().
		ApplyEvaluation(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.ApplyEvaluationInput) (*schema.Crown, domain.EvaluationAction, error) {
			assert.True(t, input.ForceSeeded)
			return &schema.Crown{OwnerID: 1, PlayCount: 42, Seeded: true, Active: true}, domain.ActionCreated, nil
		})

	result, err := engine.Seed(ctx, 100, artist)
	require.NoError(t, err)
	assert.True(t, result.Seeded)
}

func TestEvaluateRejectsInvalidArtistKey(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	result, err := engine.Evaluate(context.Background(), 100, domain.NormalizeArtist("   "))
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestEvaluateRetiredCrownHasNoOwner(t *testing.T) {
	engine, m := setupTestEngine(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	artist := domain.NormalizeArtist("Aphex Twin")

	m.cache.EXPECT().Community(ctx, uint64(100)).Return(defaultSnapshot(100), nil)
	m.ranking.EXPECT().
		GetRanking(ctx, uint64(100), artist).
		Return([]domain.MemberPlayCount{{MemberID: 1, PlayCount: 2}}, nil)
	m.clock.EXPECT().Now().Return(testNow).AnyTimes()

	retiredAt := testNow
	m.store.EXPECT().
		ApplyEvaluation(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.ApplyEvaluationInput) (*schema.Crown, domain.EvaluationAction, error) {
			// Below the floor: everyone filtered out
			assert.Empty(t, input.Eligible)
			return &schema.Crown{
				OwnerID:       1,
				Active:        false,
				TransferredAt: &retiredAt,
			}, domain.ActionRetired, nil
		})

	result, err := engine.Evaluate(ctx, 100, artist)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRetired, result.Action)
	assert.Zero(t, result.OwnerID)
}
