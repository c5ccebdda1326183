package ranking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/mocks"
)

type testRankingMocks struct {
	ctrl *gomock.Controller
	http *mocks.MockHTTPClient
}

func setupTestRanking(t *testing.T) (RankingSource, MemberDirectory, *testRankingMocks) {
	ctrl := gomock.NewController(t)
	m := &testRankingMocks{
		ctrl: ctrl,
		http: mocks.NewMockHTTPClient(ctrl),
	}
	return NewHTTPRankingSource(m.http, "https://ranking.example.com/"),
		NewHTTPMemberDirectory(m.http, "https://directory.example.com"),
		m
}

func TestGetRanking(t *testing.T) {
	source, _, m := setupTestRanking(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.http.EXPECT().
		GetJSON(ctx, "https://ranking.example.com/communities/100/artists/nine%20inch%20nails/ranking", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
			resp := result.(*rankingResponseDTO)
			resp.Ranking = []rankingEntryDTO{
				{MemberID: 1, PlayCount: 42},
				{MemberID: 2, PlayCount: 17},
			}
			return nil
		})

	ranking, err := source.GetRanking(ctx, 100, domain.NormalizeArtist("Nine Inch Nails"))
	require.NoError(t, err)
	assert.Equal(t, []domain.MemberPlayCount{
		{MemberID: 1, PlayCount: 42},
		{MemberID: 2, PlayCount: 17},
	}, ranking)
}

func TestGetRankingWrapsFailures(t *testing.T) {
	source, _, m := setupTestRanking(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.http.EXPECT().
		GetJSON(ctx, gomock.Any(), gomock.Any()).
		Return(errors.New("status 503"))

	ranking, err := source.GetRanking(ctx, 100, domain.NormalizeArtist("Boards of Canada"))
	assert.Nil(t, ranking)
	assert.ErrorIs(t, err, domain.ErrRankingUnavailable)
}

func TestListArtistsNormalizesAndDedupes(t *testing.T) {
	source, _, m := setupTestRanking(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.http.EXPECT().
		GetJSON(ctx, "https://ranking.example.com/communities/100/artists", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
			resp := result.(*artistsResponseDTO)
			resp.Artists = []string{"Radiohead", "  radiohead ", "RADIOHEAD", "Autechre", "   "}
			return nil
		})

	artists, err := source.ListArtists(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []domain.ArtistKey{
		domain.NormalizeArtist("radiohead"),
		domain.NormalizeArtist("autechre"),
	}, artists)
}

func TestGetLastActive(t *testing.T) {
	source, _, m := setupTestRanking(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	seen := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	m.http.EXPECT().
		GetJSON(ctx, "https://ranking.example.com/communities/100/last-active?member_ids=1,2,3", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
			resp := result.(*lastActiveResponseDTO)
			resp.Members = []lastActiveEntryDTO{
				{MemberID: 1, LastActive: seen},
			}
			return nil
		})

	lastActive, err := source.GetLastActive(ctx, 100, []uint64{1, 2, 3})
	require.NoError(t, err)
	assert.Len(t, lastActive, 1)
	assert.Equal(t, seen, lastActive[1])
}

func TestGetLastActiveEmptyInput(t *testing.T) {
	source, _, m := setupTestRanking(t)
	defer m.ctrl.Finish()

	// No HTTP call expected
	lastActive, err := source.GetLastActive(context.Background(), 100, nil)
	require.NoError(t, err)
	assert.Empty(t, lastActive)
}

func TestGetRoles(t *testing.T) {
	_, directory, m := setupTestRanking(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.http.EXPECT().
		GetJSON(ctx, "https://directory.example.com/communities/100/members/roles?member_ids=1,2", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
			resp := result.(*rolesResponseDTO)
			resp.Members = []rolesEntryDTO{
				{MemberID: 1, RoleIDs: []uint64{555, 777}},
				{MemberID: 2, RoleIDs: nil},
			}
			return nil
		})

	roles, err := directory.GetRoles(ctx, 100, []uint64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []uint64{555, 777}, roles[1])
	assert.Empty(t, roles[2])
}

func TestGetRolesWrapsFailures(t *testing.T) {
	_, directory, m := setupTestRanking(t)
	defer m.ctrl.Finish()

	m.http.EXPECT().
		GetJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))

	roles, err := directory.GetRoles(context.Background(), 100, []uint64{1})
	assert.Nil(t, roles)
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
}

func TestGetMembers(t *testing.T) {
	_, directory, m := setupTestRanking(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.http.EXPECT().
		GetJSON(ctx, "https://directory.example.com/communities/100/members?member_ids=7", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
			resp := result.(*membersResponseDTO)
			resp.Members = []memberEntryDTO{
				{MemberID: 7, DisplayName: "luna"},
			}
			return nil
		})

	members, err := directory.GetMembers(ctx, 100, []uint64{7})
	require.NoError(t, err)
	assert.Equal(t, domain.Member{ID: 7, DisplayName: "luna"}, members[7])
}
