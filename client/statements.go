package client

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/iotaledger/hive.go/logger"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/jsonmodels"
)

const (
	routeAddressResolutions = "/statements/resolutions/address"
	routeMosaicResolutions  = "/statements/resolutions/mosaic"

	statementPageSize = 100
)

// region Client ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Statement returns the resolution statements of the block at the given height. Statements of confirmed blocks never
// change, so they are cached.
func (c *Client) Statement(ctx context.Context, height uint64) (*catapult.Statement, error) {
	if statement, cached := c.statements.Get(height); cached {
		c.metrics.observeStatementCache(true)
		return statement, nil
	}
	c.metrics.observeStatementCache(false)

	addressStatements, err := c.resolutionStatements(ctx, routeAddressResolutions, height)
	if err != nil {
		return nil, err
	}
	mosaicStatements, err := c.resolutionStatements(ctx, routeMosaicResolutions, height)
	if err != nil {
		return nil, err
	}

	statement := &catapult.Statement{
		AddressResolutionStatements: make([]catapult.AddressResolutionStatement, len(addressStatements)),
		MosaicResolutionStatements:  make([]catapult.MosaicResolutionStatement, len(mosaicStatements)),
	}
	for i, addressStatement := range addressStatements {
		if statement.AddressResolutionStatements[i], err = addressStatement.ToAddressResolutionStatement(); err != nil {
			return nil, errors.Errorf("failed to parse address resolution statement %d of block %d: %w", i, height, err)
		}
	}
	for i, mosaicStatement := range mosaicStatements {
		if statement.MosaicResolutionStatements[i], err = mosaicStatement.ToMosaicResolutionStatement(); err != nil {
			return nil, errors.Errorf("failed to parse mosaic resolution statement %d of block %d: %w", i, height, err)
		}
	}

	c.statements.Set(height, statement, c.log)

	return statement, nil
}

// ResolveTransaction replaces the aliases of a confirmed transaction with the values of the statement of its block.
// The aggregate index is catapult.NotEmbedded for transactions that are not part of an aggregate.
func (c *Client) ResolveTransaction(ctx context.Context, transaction catapult.Transaction, aggregateIndex int) (catapult.Transaction, error) {
	info := transaction.TransactionInfo()
	if info == nil {
		return nil, errors.Errorf("cannot resolve the aliases of an unconfirmed transaction: %w", faults.ErrState)
	}

	statement, err := c.Statement(ctx, info.Height)
	if err != nil {
		return nil, err
	}

	return transaction.ResolveAliases(statement, aggregateIndex)
}

func (c *Client) resolutionStatements(ctx context.Context, route string, height uint64) (statements []jsonmodels.ResolutionStatement, err error) {
	for pageNumber := 1; ; pageNumber++ {
		response := &jsonmodels.ResolutionStatementsResponse{}
		if err = c.do(ctx, http.MethodGet, route, func(request *resty.Request) {
			request.SetQueryParams(map[string]string{
				"height":     strconv.FormatUint(height, 10),
				"pageSize":   strconv.Itoa(statementPageSize),
				"pageNumber": strconv.Itoa(pageNumber),
			})
		}, response); err != nil {
			return nil, err
		}

		for _, info := range response.Data {
			statements = append(statements, info.Statement)
		}
		if len(response.Data) < statementPageSize {
			return statements, nil
		}
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region statementCache ///////////////////////////////////////////////////////////////////////////////////////////////

// statementCache holds the statements of recently requested blocks.
type statementCache struct {
	cache *ttlcache.Cache
}

func newStatementCache(ttl time.Duration) (*statementCache, error) {
	cache := ttlcache.NewCache()
	cache.SkipTTLExtensionOnHit(true)
	if err := cache.SetTTL(ttl); err != nil {
		return nil, errors.WithStack(err)
	}

	return &statementCache{cache: cache}, nil
}

func (s *statementCache) Get(height uint64) (*catapult.Statement, bool) {
	value, err := s.cache.Get(strconv.FormatUint(height, 10))
	if err != nil {
		return nil, false
	}

	return value.(*catapult.Statement), true
}

func (s *statementCache) Set(height uint64, statement *catapult.Statement, log *logger.Logger) {
	if err := s.cache.Set(strconv.FormatUint(height, 10), statement); err != nil {
		log.Warnw("Failed to cache statement", "height", height, "err", err)
	}
}

func (s *statementCache) Len() int {
	return s.cache.Count()
}

func (s *statementCache) Close() error {
	return s.cache.Close()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
