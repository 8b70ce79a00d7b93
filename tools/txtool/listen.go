package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/dig"

	"github.com/nemtech/catapult-sdk-go/client"
	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/jsonmodels"
)

type listenDependencies struct {
	dig.In

	Config   *viper.Viper
	Client   *client.Client
	Log      *logger.Logger
	Registry *prometheus.Registry
}

func listenCommand(flags *flag.FlagSet) func(ctx context.Context, container *dig.Container, out io.Writer) error {
	address := flags.StringP("address", "a", "", "address of the account whose transactions are printed")
	aliases := flags.StringSlice("alias", nil, "namespaces linked to the account (e.g. alice.wallet)")
	blocks := flags.Bool("blocks", true, "print new blocks")

	return func(ctx context.Context, container *dig.Container, out io.Writer) error {
		account, err := catapult.AddressFromString(*address)
		if err != nil {
			return err
		}

		namespaceIDs := make([]catapult.NamespaceID, len(*aliases))
		for i, alias := range *aliases {
			if namespaceIDs[i], err = catapult.NamespaceIDFromName(alias); err != nil {
				return err
			}
		}

		return container.Invoke(func(deps listenDependencies) error {
			if bindAddress := deps.Config.GetString(CfgMetricsBindAddress); bindAddress != "" {
				stopMetrics := serveMetrics(bindAddress, deps.Registry, deps.Log.Named("metrics"))
				defer stopMetrics()
			}

			listener := client.NewListener(deps.Client.WebSocketURL(), deps.Log.Named("listener"))
			if err := listener.Open(ctx); err != nil {
				return err
			}
			defer func() {
				if err := listener.Close(); err != nil {
					deps.Log.Debugw("Failed to close listener", "err", err)
				}
			}()

			transactions, err := listener.ConfirmedAdded(account, namespaceIDs)
			if err != nil {
				return err
			}
			statuses, err := listener.Status(account)
			if err != nil {
				return err
			}
			var newBlocks <-chan jsonmodels.BlockInfo
			if *blocks {
				if newBlocks, err = listener.NewBlock(); err != nil {
					return err
				}
			}

			deps.Log.Infow("Listening", "address", account.Pretty(), "url", deps.Client.WebSocketURL())

			for {
				select {
				case block, open := <-newBlocks:
					if !open {
						return errors.New("connection to the node was lost")
					}
					_, _ = fmt.Fprintf(out, "BLOCK        %d %s\n", block.Block.Height, block.Meta.Hash)
				case transaction, open := <-transactions:
					if !open {
						return errors.New("connection to the node was lost")
					}
					_, _ = fmt.Fprintf(out, "CONFIRMED    %s\n", transaction)
				case status, open := <-statuses:
					if !open {
						return errors.New("connection to the node was lost")
					}
					_, _ = fmt.Fprintf(out, "REJECTED     %s %s\n", status.Hash, status.Code)
				case <-ctx.Done():
					deps.Log.Infow("Stopped listening", "received", listener.Received(), "dropped", listener.Dropped(), "perMinute", listener.MessagesPerMinute())
					return nil
				}
			}
		})
	}
}
