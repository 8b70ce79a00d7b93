package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/nemtech/catapult-sdk-go/client"
	"github.com/nemtech/catapult-sdk-go/packages/bulkdecode"
	"github.com/nemtech/catapult-sdk-go/packages/catapult"
)

func decodeCommand(flags *flag.FlagSet) func(ctx context.Context, container *dig.Container, out io.Writer) error {
	embedded := flags.Bool("embedded", false, "decode the payloads as embedded transactions of an aggregate")
	file := flags.StringP("file", "f", "", "read one payload per line from the given file (- for stdin)")
	height := flags.Uint64("height", 0, "resolve the aliases with the statement of the block at the given height")
	index := flags.Uint32("index", 0, "index of the first payload within the block")

	return func(ctx context.Context, container *dig.Container, out io.Writer) error {
		payloads, err := readPayloads(flags.Args(), *file)
		if err != nil {
			return err
		}
		if len(payloads) == 0 {
			return errors.New("no payloads given")
		}
		if *height != 0 && *embedded {
			return errors.New("embedded transactions can only be resolved through their aggregate")
		}

		return container.Invoke(func(decoder *bulkdecode.Decoder, log *logger.Logger) error {
			defer decoder.Release()

			results, err := decoder.Decode(payloads, *embedded)
			if err != nil {
				return err
			}
			log.Debugw("Decoded payloads", "count", len(results))

			if *height != 0 {
				if results, err = resolveResults(ctx, container, decoder, results, *height, *index); err != nil {
					return err
				}
			}

			return printResults(out, results)
		})
	}
}

// resolveResults resolves the successfully decoded transactions as if they were confirmed at consecutive indexes of
// the block at the given height.
func resolveResults(ctx context.Context, container *dig.Container, decoder *bulkdecode.Decoder, results []bulkdecode.Result, height uint64, firstIndex uint32) (resolved []bulkdecode.Result, err error) {
	err = container.Invoke(func(nodeClient *client.Client) error {
		statement, statementErr := nodeClient.Statement(ctx, height)
		if statementErr != nil {
			return statementErr
		}

		decoded := make([]catapult.Transaction, 0, len(results))
		positions := make([]int, 0, len(results))
		for _, result := range results {
			if result.Err != nil {
				continue
			}
			info := catapult.TransactionInfo{Height: height, Index: firstIndex + uint32(result.Index)}
			decoded = append(decoded, catapult.WithOptions(result.Transaction, catapult.WithTransactionInfo(info)))
			positions = append(positions, result.Index)
		}

		resolvedResults, resolveErr := decoder.Resolve(decoded, statement)
		if resolveErr != nil {
			return resolveErr
		}

		resolved = append([]bulkdecode.Result(nil), results...)
		for i, result := range resolvedResults {
			result.Index = positions[i]
			resolved[positions[i]] = result
		}

		return nil
	})

	return resolved, err
}

func printResults(out io.Writer, results []bulkdecode.Result) error {
	w := new(tabwriter.Writer)
	w.Init(out, 0, 8, 2, '\t', 0)

	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", "INDEX", "TYPE", "TRANSACTION")
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", "-----", "----------------", "-----------")

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			_, _ = fmt.Fprintf(w, "%d\t%s\t%v\n", result.Index, "<INVALID>", result.Err)
			continue
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", result.Index, result.Transaction.Type(), result.Transaction)
	}
	if err := w.Flush(); err != nil {
		return errors.WithStack(err)
	}

	if failed > 0 {
		return errors.Errorf("%d of %d payloads failed", failed, len(results))
	}

	return nil
}

// readPayloads returns the payloads of the arguments followed by the lines of the given file.
func readPayloads(args []string, file string) ([]string, error) {
	payloads := append([]string(nil), args...)
	if file == "" {
		return payloads, nil
	}

	reader := io.Reader(os.Stdin)
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open payload file")
		}
		defer f.Close()
		reader = f
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			payloads = append(payloads, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read payload file")
	}

	return payloads, nil
}
