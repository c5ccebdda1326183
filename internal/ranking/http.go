package ranking

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chartbot/crown-engine/internal/adapter"
	"github.com/chartbot/crown-engine/internal/domain"
)

type httpRankingSource struct {
	client  adapter.HTTPClient
	baseURL string
}

// NewHTTPRankingSource creates a RankingSource backed by the play-count
// service's REST API
func NewHTTPRankingSource(client adapter.HTTPClient, baseURL string) RankingSource {
	return &httpRankingSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type rankingEntryDTO struct {
	MemberID  uint64 `json:"member_id"`
	PlayCount int    `json:"play_count"`
}

type rankingResponseDTO struct {
	Ranking []rankingEntryDTO `json:"ranking"`
}

func (s *httpRankingSource) GetRanking(ctx context.Context, communityID uint64, artist domain.ArtistKey) ([]domain.MemberPlayCount, error) {
	endpoint := fmt.Sprintf("%s/communities/%d/artists/%s/ranking",
		s.baseURL, communityID, url.PathEscape(artist.String()))

	var resp rankingResponseDTO
	if err := s.client.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRankingUnavailable, err)
	}

	ranking := make([]domain.MemberPlayCount, 0, len(resp.Ranking))
	for _, e := range resp.Ranking {
		ranking = append(ranking, domain.MemberPlayCount{
			MemberID:  e.MemberID,
			PlayCount: e.PlayCount,
		})
	}

	return ranking, nil
}

type artistsResponseDTO struct {
	Artists []string `json:"artists"`
}

func (s *httpRankingSource) ListArtists(ctx context.Context, communityID uint64) ([]domain.ArtistKey, error) {
	endpoint := fmt.Sprintf("%s/communities/%d/artists", s.baseURL, communityID)

	var resp artistsResponseDTO
	if err := s.client.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRankingUnavailable, err)
	}

	// The service returns raw names; normalize and dedupe so callers see
	// one key per artist identity
	seen := make(map[domain.ArtistKey]struct{}, len(resp.Artists))
	keys := make([]domain.ArtistKey, 0, len(resp.Artists))
	for _, name := range resp.Artists {
		key := domain.NormalizeArtist(name)
		if !key.Valid() {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	return keys, nil
}

type lastActiveEntryDTO struct {
	MemberID   uint64    `json:"member_id"`
	LastActive time.Time `json:"last_active"`
}

type lastActiveResponseDTO struct {
	Members []lastActiveEntryDTO `json:"members"`
}

func (s *httpRankingSource) GetLastActive(ctx context.Context, communityID uint64, memberIDs []uint64) (map[uint64]time.Time, error) {
	if len(memberIDs) == 0 {
		return map[uint64]time.Time{}, nil
	}

	endpoint := fmt.Sprintf("%s/communities/%d/last-active?member_ids=%s",
		s.baseURL, communityID, joinIDs(memberIDs))

	var resp lastActiveResponseDTO
	if err := s.client.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRankingUnavailable, err)
	}

	lastActive := make(map[uint64]time.Time, len(resp.Members))
	for _, e := range resp.Members {
		lastActive[e.MemberID] = e.LastActive
	}

	return lastActive, nil
}

func joinIDs(ids []uint64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(id, 10))
	}
	return strings.Join(parts, ",")
}
