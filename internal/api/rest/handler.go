package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chartbot/crown-engine/internal/audit"
	"github.com/chartbot/crown-engine/internal/cache"
	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/engine"
	"github.com/chartbot/crown-engine/internal/maintenance"
	"github.com/chartbot/crown-engine/internal/store"
	"github.com/chartbot/crown-engine/internal/store/schema"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// EvaluateArtist recomputes one artist's crown on demand
	// POST /api/v1/communities/:community_id/artists/:artist/evaluate
	EvaluateArtist(c *gin.Context)

	// SeedCommunity evaluates every tracked artist in the community
	// POST /api/v1/communities/:community_id/crowns/seed
	SeedCommunity(c *gin.Context)

	// KillArtistCrowns deletes all crown rows for one artist
	// DELETE /api/v1/communities/:community_id/crowns/artist/:artist
	KillArtistCrowns(c *gin.Context)

	// KillAllCrowns previews or confirms deleting every crown in the community
	// POST /api/v1/communities/:community_id/crowns/kill-all
	KillAllCrowns(c *gin.Context)

	// KillSeededCrowns previews or confirms deleting seeded crowns only
	// POST /api/v1/communities/:community_id/crowns/kill-seeded
	KillSeededCrowns(c *gin.Context)

	// RemoveMemberCrowns deletes every crown row owned by a member
	// DELETE /api/v1/communities/:community_id/crowns/members/:member_id
	RemoveMemberCrowns(c *gin.Context)

	// ListCrowns retrieves active crowns ordered by play count or capture time
	// GET /api/v1/communities/:community_id/crowns?order=<play_count|recent>&limit=<limit>&offset=<offset>
	ListCrowns(c *gin.Context)

	// ListStolenCrowns retrieves the steal history, newest first
	// GET /api/v1/communities/:community_id/crowns/stolen?limit=<limit>&offset=<offset>
	ListStolenCrowns(c *gin.Context)

	// ListCrownBlocks retrieves the community's crown block list
	// GET /api/v1/communities/:community_id/crown-blocks
	ListCrownBlocks(c *gin.Context)

	// BlockMember blocks a member from holding crowns
	// PUT /api/v1/communities/:community_id/crown-blocks/:member_id
	BlockMember(c *gin.Context)

	// UnblockMember lifts a member's crown block
	// DELETE /api/v1/communities/:community_id/crown-blocks/:member_id
	UnblockMember(c *gin.Context)

	// GetSettings retrieves the community's crown settings
	// GET /api/v1/communities/:community_id/crown-settings
	GetSettings(c *gin.Context)

	// UpdateSettings replaces the community's crown settings
	// PUT /api/v1/communities/:community_id/crown-settings
	UpdateSettings(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	engine      engine.Engine
	maintenance maintenance.Service
	viewer      audit.Viewer
	store       store.Store
	cache       cache.Provider
}

// NewHandler creates a new REST API handler
func NewHandler(
	e engine.Engine,
	m maintenance.Service,
	v audit.Viewer,
	s store.Store,
	cp cache.Provider,
) Handler {
	return &handler{
		engine:      e,
		maintenance: m,
		viewer:      v,
		store:       s,
		cache:       cp,
	}
}

// EvaluateArtist recomputes one artist's crown on demand
func (h *handler) EvaluateArtist(c *gin.Context) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	artist := domain.NormalizeArtist(c.Param("artist"))
	if !artist.Valid() {
		respondBadRequest(c, "Invalid artist name")
		return
	}

	result, err := h.engine.Evaluate(c.Request.Context(), communityID, artist)
	if err != nil {
		if errors.Is(err, domain.ErrRankingUnavailable) || errors.Is(err, domain.ErrDirectoryUnavailable) {
			respondUpstreamError(c, err, "Ranking source unavailable, crown left unchanged")
			return
		}
		respondInternalError(c, err, "Failed to evaluate crown")
		return
	}

	c.JSON(http.StatusOK, result)
}

// SeedCommunity evaluates every tracked artist in the community
func (h *handler) SeedCommunity(c *gin.Context) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	summary, err := h.maintenance.Seed(c.Request.Context(), communityID)
	if err != nil {
		if errors.Is(err, domain.ErrRankingUnavailable) {
			respondUpstreamError(c, err, "Ranking source unavailable, seeding aborted")
			return
		}
		respondInternalError(c, err, "Failed to seed crowns")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// KillArtistCrowns deletes all crown rows for one artist
func (h *handler) KillArtistCrowns(c *gin.Context) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	artist := domain.NormalizeArtist(c.Param("artist"))
	if !artist.Valid() {
		respondBadRequest(c, "Invalid artist name")
		return
	}

	deleted, err := h.maintenance.KillOne(c.Request.Context(), communityID, artist)
	if err != nil {
		respondInternalError(c, err, "Failed to delete artist crowns")
		return
	}

	c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

// KillAllCrowns previews or confirms deleting every crown in the community
func (h *handler) KillAllCrowns(c *gin.Context) {
	h.killCrowns(c, false)
}

// KillSeededCrowns previews or confirms deleting seeded crowns only
func (h *handler) KillSeededCrowns(c *gin.Context) {
	h.killCrowns(c, true)
}

// killCrowns implements the two-step mass deletion: a request without a token
// previews the deletion and issues one, a request with a token executes it
func (h *handler) killCrowns(c *gin.Context, seededOnly bool) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	var req KillRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
			return
		}
	}

	if req.Token == "" {
		preview, err := h.maintenance.RequestKill(c.Request.Context(), communityID, seededOnly)
		if err != nil {
			respondInternalError(c, err, "Failed to prepare crown deletion")
			return
		}
		c.JSON(http.StatusOK, preview)
		return
	}

	deleted, err := h.maintenance.ConfirmKill(c.Request.Context(), communityID, req.Token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfirmation) {
			respondConfirmationError(c, "Confirmation token is unknown, expired, or already used")
			return
		}
		respondInternalError(c, err, "Failed to delete crowns")
		return
	}

	c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

// RemoveMemberCrowns deletes every crown row owned by a member
func (h *handler) RemoveMemberCrowns(c *gin.Context) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	memberID, ok := parseUint64Param(c, "member_id")
	if !ok {
		respondBadRequest(c, "Invalid member ID")
		return
	}

	deleted, err := h.maintenance.RemoveForMember(c.Request.Context(), communityID, memberID)
	if err != nil {
		respondInternalError(c, err, "Failed to delete member crowns")
		return
	}

	c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

// ListCrowns retrieves active crowns with the requested ordering
func (h *handler) ListCrowns(c *gin.Context) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	params, err := ParseListCrownsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	var (
		crowns []audit.CrownEntry
		total  uint64
	)
	if params.Order == CrownOrderRecent {
		crowns, total, err = h.viewer.RecentlyEarned(c.Request.Context(), communityID, params.Limit, params.Offset)
	} else {
		crowns, total, err = h.viewer.ByPlayCount(c.Request.Context(), communityID, params.Limit, params.Offset)
	}
	if err != nil {
		respondInternalError(c, err, "Failed to list crowns")
		return
	}

	c.JSON(http.StatusOK, ListCrownsResponse{
		Crowns: crowns,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
}

// ListStolenCrowns retrieves the steal history
func (h *handler) ListStolenCrowns(c *gin.Context) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	params, err := ParseListStolenQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	stolen, total, err := h.viewer.RecentlyStolen(c.Request.Context(), communityID, params.Limit, params.Offset)
	if err != nil {
		respondInternalError(c, err, "Failed to list stolen crowns")
		return
	}

	c.JSON(http.StatusOK, ListStolenResponse{
		Stolen: stolen,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
}

// ListCrownBlocks retrieves the community's crown block list
func (h *handler) ListCrownBlocks(c *gin.Context) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	blocked, err := h.viewer.BlockedMembers(c.Request.Context(), communityID)
	if err != nil {
		respondInternalError(c, err, "Failed to list crown blocks")
		return
	}

	c.JSON(http.StatusOK, ListBlocksResponse{Blocked: blocked})
}

// BlockMember blocks a member from holding crowns
func (h *handler) BlockMember(c *gin.Context) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	memberID, ok := parseUint64Param(c, "member_id")
	if !ok {
		respondBadRequest(c, "Invalid member ID")
		return
	}

	if err := h.store.AddCrownBlock(c.Request.Context(), communityID, memberID); err != nil {
		respondInternalError(c, err, "Failed to block member")
		return
	}

	// Evaluations must see the new block immediately, not after cache expiry
	h.cache.Invalidate(communityID)

	c.Status(http.StatusNoContent)
}

// UnblockMember lifts a member's crown block
func (h *handler) UnblockMember(c *gin.Context) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	memberID, ok := parseUint64Param(c, "member_id")
	if !ok {
		respondBadRequest(c, "Invalid member ID")
		return
	}

	removed, err := h.store.RemoveCrownBlock(c.Request.Context(), communityID, memberID)
	if err != nil {
		respondInternalError(c, err, "Failed to unblock member")
		return
	}
	if !removed {
		respondNotFound(c, "Member is not blocked")
		return
	}

	h.cache.Invalidate(communityID)

	c.Status(http.StatusNoContent)
}

// GetSettings retrieves the community's crown settings
func (h *handler) GetSettings(c *gin.Context) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	settings, err := h.store.GetCommunitySettings(c.Request.Context(), communityID)
	if err != nil {
		respondInternalError(c, err, "Failed to get crown settings")
		return
	}

	c.JSON(http.StatusOK, settingsResponseFromSchema(settings))
}

// UpdateSettings replaces the community's crown settings
func (h *handler) UpdateSettings(c *gin.Context) {
	communityID, ok := parseUint64Param(c, "community_id")
	if !ok {
		respondBadRequest(c, "Invalid community ID")
		return
	}

	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	settings := &schema.CommunityCrownSettings{
		CommunityID:           communityID,
		MinimumPlayCount:      req.MinimumPlayCount,
		ActivityThresholdDays: req.ActivityThresholdDays,
		CrownsEnabled:         req.CrownsEnabled,
		BlockedRoleIDs:        req.BlockedRoleIDs,
		AllowedRoleIDs:        req.AllowedRoleIDs,
	}

	if err := h.store.UpsertCommunitySettings(c.Request.Context(), settings); err != nil {
		respondInternalError(c, err, "Failed to update crown settings")
		return
	}

	h.cache.Invalidate(communityID)

	c.JSON(http.StatusOK, settingsResponseFromSchema(settings))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "crown-engine-api",
	})
}
