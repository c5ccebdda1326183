package ranking

import (
	"context"
	"fmt"
	"strings"

	"github.com/chartbot/crown-engine/internal/adapter"
	"github.com/chartbot/crown-engine/internal/domain"
)

type httpMemberDirectory struct {
	client  adapter.HTTPClient
	baseURL string
}

// NewHTTPMemberDirectory creates a MemberDirectory backed by the community
// platform's REST API
func NewHTTPMemberDirectory(client adapter.HTTPClient, baseURL string) MemberDirectory {
	return &httpMemberDirectory{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type rolesEntryDTO struct {
	MemberID uint64   `json:"member_id"`
	RoleIDs  []uint64 `json:"role_ids"`
}

type rolesResponseDTO struct {
	Members []rolesEntryDTO `json:"members"`
}

func (d *httpMemberDirectory) GetRoles(ctx context.Context, communityID uint64, memberIDs []uint64) (map[uint64][]uint64, error) {
	if len(memberIDs) == 0 {
		return map[uint64][]uint64{}, nil
	}

	endpoint := fmt.Sprintf("%s/communities/%d/members/roles?member_ids=%s",
		d.baseURL, communityID, joinIDs(memberIDs))

	var resp rolesResponseDTO
	if err := d.client.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDirectoryUnavailable, err)
	}

	roles := make(map[uint64][]uint64, len(resp.Members))
	for _, e := range resp.Members {
		roles[e.MemberID] = e.RoleIDs
	}

	return roles, nil
}

type memberEntryDTO struct {
	MemberID    uint64 `json:"member_id"`
	DisplayName string `json:"display_name"`
}

type membersResponseDTO struct {
	Members []memberEntryDTO `json:"members"`
}

func (d *httpMemberDirectory) GetMembers(ctx context.Context, communityID uint64, memberIDs []uint64) (map[uint64]domain.Member, error) {
	if len(memberIDs) == 0 {
		return map[uint64]domain.Member{}, nil
	}

	endpoint := fmt.Sprintf("%s/communities/%d/members?member_ids=%s",
		d.baseURL, communityID, joinIDs(memberIDs))

	var resp membersResponseDTO
	if err := d.client.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDirectoryUnavailable, err)
	}

	members := make(map[uint64]domain.Member, len(resp.Members))
	for _, e := range resp.Members {
		members[e.MemberID] = domain.Member{
			ID:          e.MemberID,
			DisplayName: e.DisplayName,
		}
	}

	return members, nil
}
