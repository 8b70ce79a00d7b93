package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/nemtech/catapult-sdk-go/client"
	"github.com/nemtech/catapult-sdk-go/packages/catapult"
)

func restrictionsCommand(flags *flag.FlagSet) func(ctx context.Context, container *dig.Container, out io.Writer) error {
	address := flags.StringP("address", "a", "", "address of the account")

	return func(ctx context.Context, container *dig.Container, out io.Writer) error {
		account, err := catapult.AddressFromString(*address)
		if err != nil {
			return err
		}

		return container.Invoke(func(nodeClient *client.Client) error {
			restrictions, err := nodeClient.AccountRestrictions(ctx, account)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(out, restrictions.String())

			return nil
		})
	}
}

func accountsCommand(flags *flag.FlagSet) func(ctx context.Context, container *dig.Container, out io.Writer) error {
	pageSize := flags.Int("page-size", 0, "amount of accounts per page")
	pageNumber := flags.Int("page", 0, "page to display")
	order := flags.String("order", "", "sort direction (asc or desc)")
	orderBy := flags.String("order-by", "", "sort field (id or balance)")
	mosaic := flags.String("mosaic", "", "hex encoded id of the mosaic whose balance is displayed")

	return func(ctx context.Context, container *dig.Container, out io.Writer) error {
		criteria := client.SearchCriteria{
			PageSize:   *pageSize,
			PageNumber: *pageNumber,
			Order:      client.Order(*order),
			OrderBy:    client.AccountOrderBy(*orderBy),
		}
		if *mosaic != "" {
			mosaicID, err := catapult.MosaicIDFromHex(*mosaic)
			if err != nil {
				return err
			}
			criteria.MosaicID = &mosaicID
		}

		return container.Invoke(func(nodeClient *client.Client) error {
			response, err := nodeClient.SearchAccounts(ctx, criteria)
			if err != nil {
				return err
			}

			w := new(tabwriter.Writer)
			w.Init(out, 0, 8, 2, '\t', 0)
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", "ADDRESS", "PUBLIC KEY", "MOSAICS")
			for _, info := range response.Data {
				mosaics := ""
				for _, mosaicBalance := range info.Account.Mosaics {
					mosaics += fmt.Sprintf("%s:%d ", mosaicBalance.ID, mosaicBalance.Amount)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", info.Account.Address, info.Account.PublicKey, mosaics)
			}
			_, _ = fmt.Fprintf(w, "page %d (%d per page)\n", response.Pagination.PageNumber, response.Pagination.PageSize)

			return errors.WithStack(w.Flush())
		})
	}
}
