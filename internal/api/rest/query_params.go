package rest

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chartbot/crown-engine/internal/store"
)

const MAX_PAGE_SIZE = 100

// CrownOrderParam is the order query value of the crown listing
type CrownOrderParam string

const (
	CrownOrderPlayCount CrownOrderParam = "play_count"
	CrownOrderRecent    CrownOrderParam = "recent"
)

// StoreOrder maps the query value onto the store ordering
func (o CrownOrderParam) StoreOrder() store.CrownOrder {
	if o == CrownOrderRecent {
		return store.OrderByCapturedAt
	}
	return store.OrderByPlayCount
}

// Valid reports whether the value is a supported ordering
func (o CrownOrderParam) Valid() bool {
	return o == CrownOrderPlayCount || o == CrownOrderRecent
}

// ListCrownsQueryParams holds query parameters for GET /crowns
type ListCrownsQueryParams struct {
	Order CrownOrderParam `form:"order,default=play_count"`

	// Pagination
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListCrownsQuery parses query parameters for GET /crowns
func ParseListCrownsQuery(c *gin.Context) (*ListCrownsQueryParams, error) {
	var params ListCrownsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Limit <= 0 {
		params.Limit = 20
	}

	// Validate order
	if !params.Order.Valid() {
		params.Order = CrownOrderPlayCount
	}

	return &params, nil
}

// ListStolenQueryParams holds query parameters for GET /crowns/stolen
type ListStolenQueryParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListStolenQuery parses query parameters for GET /crowns/stolen
func ParseListStolenQuery(c *gin.Context) (*ListStolenQueryParams, error) {
	var params ListStolenQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Limit <= 0 {
		params.Limit = 20
	}

	return &params, nil
}

// parseUint64Param parses a numeric path parameter
func parseUint64Param(c *gin.Context, name string) (uint64, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return value, true
}
