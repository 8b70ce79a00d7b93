package bulkdecode

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
)

// Result is the outcome of decoding or resolving one transaction. Index is the position of the input it belongs to.
type Result struct {
	Index       int
	Transaction catapult.Transaction
	Err         error
}

// Decoder decodes and resolves batches of transactions on a bounded pool of workers.
type Decoder struct {
	pool *ants.Pool
}

// New creates a Decoder with the given number of workers.
func New(workers int) (*Decoder, error) {
	pool, err := ants.NewPool(workers, ants.WithNonblocking(false))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create worker pool with %d workers", workers)
	}

	return &Decoder{pool: pool}, nil
}

// Decode parses the hex encoded payloads. The results are in the order of the payloads and every payload that fails
// to decode carries its own error.
func (d *Decoder) Decode(payloads []string, embedded bool) ([]Result, error) {
	return d.process(len(payloads), func(index int) (catapult.Transaction, error) {
		return catapult.TransactionFromPayload(payloads[index], embedded)
	})
}

// Resolve replaces the aliases of the confirmed transactions with the values of the statement.
func (d *Decoder) Resolve(transactions []catapult.Transaction, statement *catapult.Statement) ([]Result, error) {
	return d.process(len(transactions), func(index int) (catapult.Transaction, error) {
		return transactions[index].ResolveAliases(statement, catapult.NotEmbedded)
	})
}

// Release stops the workers of the Decoder.
func (d *Decoder) Release() {
	d.pool.Release()
}

func (d *Decoder) process(count int, task func(index int) (catapult.Transaction, error)) ([]Result, error) {
	results := make([]Result, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		currentIndex := i

		wg.Add(1)
		if err := d.pool.Submit(func() {
			defer wg.Done()

			transaction, err := task(currentIndex)
			results[currentIndex] = Result{Index: currentIndex, Transaction: transaction, Err: err}
		}); err != nil {
			wg.Done()
			wg.Wait()

			return nil, errors.Wrapf(err, "failed to submit task %d", currentIndex)
		}
	}
	wg.Wait()

	return results, nil
}

// Transactions returns the decoded transactions, failing with the first error of the results.
func Transactions(results []Result) ([]catapult.Transaction, error) {
	transactions := make([]catapult.Transaction, len(results))
	for i, result := range results {
		if result.Err != nil {
			return nil, errors.Wrapf(result.Err, "transaction %d", result.Index)
		}
		transactions[i] = result.Transaction
	}

	return transactions, nil
}
