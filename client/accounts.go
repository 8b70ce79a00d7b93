package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/jsonmodels"
)

const routeAccounts = "/accounts"

// Order is the sort direction of a search.
type Order string

const (
	// OrderAsc sorts ascending.
	OrderAsc Order = "asc"
	// OrderDesc sorts descending.
	OrderDesc Order = "desc"
)

// AccountOrderBy is the field accounts are sorted by.
type AccountOrderBy string

const (
	// AccountOrderByID sorts accounts by their database id.
	AccountOrderByID AccountOrderBy = "id"
	// AccountOrderByBalance sorts accounts by the balance of the mosaic of the criteria.
	AccountOrderByBalance AccountOrderBy = "balance"
)

// SearchCriteria restricts and pages the result of an account search. Zero values are not sent.
type SearchCriteria struct {
	PageSize   int
	PageNumber int
	Order      Order
	OrderBy    AccountOrderBy
	MosaicID   *catapult.MosaicID
}

// QueryParams returns the criteria as query parameters.
func (s SearchCriteria) QueryParams() (params map[string]string, err error) {
	params = make(map[string]string)
	if s.PageSize < 0 || s.PageNumber < 0 {
		return nil, errors.Errorf("page size and page number must not be negative: %w", faults.ErrFormat)
	}
	if s.PageSize > 0 {
		params["pageSize"] = strconv.Itoa(s.PageSize)
	}
	if s.PageNumber > 0 {
		params["pageNumber"] = strconv.Itoa(s.PageNumber)
	}

	switch s.Order {
	case "":
	case OrderAsc, OrderDesc:
		params["order"] = string(s.Order)
	default:
		return nil, errors.Errorf("unknown order '%s': %w", s.Order, faults.ErrFormat)
	}

	switch s.OrderBy {
	case "":
	case AccountOrderByID:
		params["orderBy"] = string(s.OrderBy)
	case AccountOrderByBalance:
		if s.MosaicID == nil {
			return nil, errors.Errorf("ordering by balance requires a mosaic id: %w", faults.ErrFormat)
		}
		params["orderBy"] = string(s.OrderBy)
	default:
		return nil, errors.Errorf("unknown order field '%s': %w", s.OrderBy, faults.ErrFormat)
	}

	if s.MosaicID != nil {
		params["mosaicId"] = s.MosaicID.Hex()
	}

	return params, nil
}

// SearchAccounts gets one page of the accounts that match the criteria.
func (c *Client) SearchAccounts(ctx context.Context, criteria SearchCriteria) (*jsonmodels.AccountsResponse, error) {
	params, err := criteria.QueryParams()
	if err != nil {
		return nil, err
	}

	res := &jsonmodels.AccountsResponse{}
	if err = c.do(ctx, http.MethodGet, routeAccounts, func(request *resty.Request) {
		request.SetQueryParams(params)
	}, res); err != nil {
		return nil, err
	}

	return res, nil
}
