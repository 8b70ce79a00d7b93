package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/nemtech/catapult-sdk-go/client"
	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/clock"
)

func networkCommand(*flag.FlagSet) func(ctx context.Context, container *dig.Container, out io.Writer) error {
	return func(ctx context.Context, container *dig.Container, out io.Writer) error {
		return container.Invoke(func(nodeClient *client.Client) error {
			networkType, err := nodeClient.NetworkType(ctx)
			if err != nil {
				return err
			}
			generationHash, err := nodeClient.GenerationHash(ctx)
			if err != nil {
				return err
			}
			epochAdjustment, err := nodeClient.EpochAdjustment(ctx)
			if err != nil {
				return err
			}

			w := new(tabwriter.Writer)
			w.Init(out, 0, 8, 2, '\t', 0)
			_, _ = fmt.Fprintf(w, "%s\t%s\n", "URL", nodeClient.URL())
			_, _ = fmt.Fprintf(w, "%s\t%s\n", "WEBSOCKET", nodeClient.WebSocketURL())
			_, _ = fmt.Fprintf(w, "%s\t%s\n", "NETWORK", networkType)
			_, _ = fmt.Fprintf(w, "%s\t%s\n", "GENERATION HASH", generationHash)
			_, _ = fmt.Fprintf(w, "%s\t%s (%s)\n", "EPOCH", time.Unix(0, 0).Add(epochAdjustment).UTC().Format(time.RFC3339), epochAdjustment)

			return errors.WithStack(w.Flush())
		})
	}
}

func deadlineCommand(flags *flag.FlagSet) func(ctx context.Context, container *dig.Container, out io.Writer) error {
	lifetime := flags.Duration("lifetime", catapult.DefaultDeadlineLifetime, "time until the transaction expires")

	return func(ctx context.Context, container *dig.Container, out io.Writer) error {
		if *lifetime <= 0 {
			return errors.New("the lifetime must be positive")
		}

		return container.Invoke(func(nodeClient *client.Client, networkClock *clock.Clock) error {
			deadline, err := nodeClient.NewDeadline(ctx, networkClock.Now(), *lifetime)
			if err != nil {
				return err
			}
			epochAdjustment, err := nodeClient.EpochAdjustment(ctx)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "%d\t%s\n", deadline, deadline.Time(epochAdjustment).UTC().Format(time.RFC3339))

			return nil
		})
	}
}
