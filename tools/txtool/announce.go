package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/nemtech/catapult-sdk-go/client"
	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/clock"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/jsonmodels"
)

type announceDependencies struct {
	dig.In

	Client *client.Client
	Clock  *clock.Clock
	Log    *logger.Logger
}

func announceCommand(flags *flag.FlagSet) func(ctx context.Context, container *dig.Container, out io.Writer) error {
	payload := flags.StringP("payload", "p", "", "hex encoded payload of the signed transaction")
	wait := flags.Duration("wait", 0, "wait up to the given time for the confirmation of the transaction")
	yes := flags.BoolP("yes", "y", false, "announce without asking for confirmation")

	return func(ctx context.Context, container *dig.Container, out io.Writer) error {
		transaction, err := catapult.TransactionFromPayload(*payload, false)
		if err != nil {
			return err
		}

		return container.Invoke(func(deps announceDependencies) error {
			epochAdjustment, err := deps.Client.EpochAdjustment(ctx)
			if err != nil {
				return err
			}
			if transaction.Deadline().Expired(deps.Clock.Now(), epochAdjustment) {
				return errors.Errorf("deadline %s has passed: %w", transaction.Deadline().Time(epochAdjustment), faults.ErrState)
			}

			if !*yes {
				confirmed := false
				question := &survey.Confirm{
					Message: fmt.Sprintf("Announce %s (max fee %d) to %s?", transaction.Type(), transaction.MaxFee(), deps.Client.URL()),
				}
				if err = survey.AskOne(question, &confirmed); err != nil {
					return errors.Wrap(err, "failed to ask for confirmation")
				}
				if !confirmed {
					return errors.New("announcement aborted")
				}
			}

			if *wait == 0 {
				response, announceErr := deps.Client.Announce(ctx, transaction)
				if announceErr != nil {
					return announceErr
				}
				_, _ = fmt.Fprintln(out, response.Message)

				return nil
			}

			return announceAndWait(ctx, deps, transaction, *wait, out)
		})
	}
}

// announceAndWait subscribes to the channels of the signer before the transaction is announced, so that neither the
// confirmation nor a rejection can be missed.
func announceAndWait(ctx context.Context, deps announceDependencies, transaction catapult.Transaction, wait time.Duration, out io.Writer) error {
	if transaction.Signer() == nil {
		return errors.Errorf("only signed transactions can be announced: %w", faults.ErrState)
	}
	signerAddress := transaction.Signer().Address()

	generationHash, err := deps.Client.GenerationHash(ctx)
	if err != nil {
		return err
	}
	hash, err := catapult.TransactionHash(transaction, generationHash)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	listener := client.NewListener(deps.Client.WebSocketURL(), deps.Log.Named("listener"))
	if err := listener.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := listener.Close(); err != nil {
			deps.Log.Debugw("Failed to close listener", "err", err)
		}
	}()

	confirmed, err := listener.ConfirmedAdded(signerAddress, nil)
	if err != nil {
		return err
	}
	statuses, err := listener.Status(signerAddress)
	if err != nil {
		return err
	}

	response, err := deps.Client.Announce(ctx, transaction)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, response.Message)

	return awaitOutcome(ctx, transaction, hash, confirmed, statuses, out)
}

// awaitOutcome waits until the transaction with the given hash is either confirmed or rejected. Notifications about
// other transactions of the same signer are skipped.
func awaitOutcome(ctx context.Context, transaction catapult.Transaction, hash string, confirmed <-chan catapult.Transaction, statuses <-chan jsonmodels.TransactionStatusError, out io.Writer) error {
	for {
		select {
		case confirmedTransaction, open := <-confirmed:
			if !open {
				return errors.New("connection to the node was lost")
			}
			if confirmedTransaction.Payload() != transaction.Payload() {
				continue
			}
			_, _ = fmt.Fprintf(out, "confirmed at height %d\n", confirmedTransaction.TransactionInfo().Height)

			return nil
		case status, open := <-statuses:
			if !open {
				return errors.New("connection to the node was lost")
			}
			if !strings.EqualFold(status.Hash, hash) {
				continue
			}

			return errors.Errorf("transaction %s was rejected: %s", hash, status.Code)
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "transaction was not confirmed in time")
		}
	}
}
