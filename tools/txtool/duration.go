package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/nemtech/catapult-sdk-go/packages/dtomapping"
)

func durationCommand(flags *flag.FlagSet) func(ctx context.Context, container *dig.Container, out io.Writer) error {
	return func(_ context.Context, _ *dig.Container, out io.Writer) error {
		if flags.NArg() == 0 {
			return errors.New("no durations given")
		}

		for _, serverValue := range flags.Args() {
			duration, err := dtomapping.ParseServerDuration(serverValue)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "%s\t%s\t%.3fs\n", serverValue, duration, duration.Seconds())
		}

		return nil
	}
}
