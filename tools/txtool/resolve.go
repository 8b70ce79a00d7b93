package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/nemtech/catapult-sdk-go/client"
	"github.com/nemtech/catapult-sdk-go/packages/catapult"
)

func resolveCommand(flags *flag.FlagSet) func(ctx context.Context, container *dig.Container, out io.Writer) error {
	hash := flags.String("hash", "", "hash of the confirmed transaction")
	aggregateIndex := flags.Int("aggregate-index", catapult.NotEmbedded, "index of the transaction within its aggregate")

	return func(ctx context.Context, container *dig.Container, out io.Writer) error {
		if *hash == "" {
			return errors.New("the hash of the transaction is required")
		}

		return container.Invoke(func(nodeClient *client.Client) error {
			transaction, err := nodeClient.ConfirmedTransaction(ctx, *hash)
			if err != nil {
				return err
			}

			resolved, err := nodeClient.ResolveTransaction(ctx, transaction, *aggregateIndex)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(out, "UNRESOLVED:")
			_, _ = fmt.Fprintln(out, "  "+transaction.String())
			_, _ = fmt.Fprintln(out, "RESOLVED:")
			_, _ = fmt.Fprintln(out, "  "+resolved.String())

			return nil
		})
	}
}
