package client

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/jsonmodels"
)

const (
	routeTransactions         = "/transactions"
	routeTransactionStatus    = "/transactionStatus/{hash}"
	routeConfirmedTransaction = "/transactions/confirmed/{hash}"
	routeAccountRestrictions  = "/restrictions/account/{address}"
)

// Announce sends a signed transaction to the node.
func (c *Client) Announce(ctx context.Context, transaction catapult.Transaction) (*jsonmodels.AnnounceResponse, error) {
	if transaction.Signature() == nil || transaction.Signer() == nil {
		return nil, errors.Errorf("only signed transactions can be announced: %w", faults.ErrState)
	}

	res := &jsonmodels.AnnounceResponse{}
	if err := c.do(ctx, http.MethodPut, routeTransactions, func(request *resty.Request) {
		request.SetHeader("Content-Type", contentTypeJSON).SetBody(&jsonmodels.AnnounceRequest{Payload: transaction.Payload()})
	}, res); err != nil {
		return nil, err
	}

	c.log.Infow("Announced transaction", "type", transaction.Type(), "signer", transaction.Signer().Hex())

	return res, nil
}

// TransactionStatus gets the status of the transaction with the given hash.
func (c *Client) TransactionStatus(ctx context.Context, hash string) (*jsonmodels.TransactionStatusResponse, error) {
	res := &jsonmodels.TransactionStatusResponse{}
	if err := c.do(ctx, http.MethodGet, routeTransactionStatus, func(request *resty.Request) {
		request.SetPathParam("hash", hash)
	}, res); err != nil {
		return nil, err
	}

	return res, nil
}

// ConfirmedTransaction gets the confirmed transaction with the given hash.
func (c *Client) ConfirmedTransaction(ctx context.Context, hash string) (catapult.Transaction, error) {
	res := &jsonmodels.TransactionInfo{}
	if err := c.do(ctx, http.MethodGet, routeConfirmedTransaction, func(request *resty.Request) {
		request.SetPathParam("hash", hash)
	}, res); err != nil {
		return nil, err
	}

	transaction, err := res.ToTransaction()
	if err != nil {
		return nil, errors.Errorf("failed to parse transaction %s: %w", hash, err)
	}

	return transaction, nil
}

// AccountRestrictions gets the restrictions of the given account.
func (c *Client) AccountRestrictions(ctx context.Context, address catapult.Address) (restrictions catapult.AccountRestrictions, err error) {
	res := &jsonmodels.AccountRestrictionsResponse{}
	if err = c.do(ctx, http.MethodGet, routeAccountRestrictions, func(request *resty.Request) {
		request.SetPathParam("address", address.Plain())
	}, res); err != nil {
		return restrictions, err
	}

	if restrictions, err = res.AccountRestrictions.ToAccountRestrictions(); err != nil {
		return restrictions, errors.Errorf("failed to parse restrictions of %s: %w", address, err)
	}

	return restrictions, nil
}
