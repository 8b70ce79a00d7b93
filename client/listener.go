package client

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"github.com/iotaledger/hive.go/logger"
	"github.com/paulbellamy/ratecounter"
	"go.uber.org/atomic"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/jsonmodels"
)

const (
	channelBlock          = "block"
	channelConfirmedAdded = "confirmedAdded"
	channelStatus         = "status"

	subscriberBufferSize  = 100
	webSocketWriteTimeout = 3 * time.Second
	uidReadTimeout        = 10 * time.Second
	messageRateInterval   = time.Minute
)

// Listener receives the notifications a node publishes on its websocket channels.
type Listener struct {
	url    string
	dialer *websocket.Dialer
	log    *logger.Logger

	// stateMu serializes Open and Close.
	stateMu sync.Mutex
	conn    *websocket.Conn
	uid     string
	writeMu sync.Mutex

	subscribersMu sync.Mutex
	subscribers   map[string][]chan json.RawMessage

	open     *atomic.Bool
	received *atomic.Uint64
	dropped  *atomic.Uint64
	rate     *ratecounter.RateCounter
	done     chan struct{}
}

// NewListener creates a Listener for the websocket endpoint at the given URL.
func NewListener(url string, log *logger.Logger) *Listener {
	done := make(chan struct{})
	close(done)

	return &Listener{
		url:         url,
		dialer:      &websocket.Dialer{HandshakeTimeout: webSocketWriteTimeout},
		log:         log,
		subscribers: make(map[string][]chan json.RawMessage),
		open:        atomic.NewBool(false),
		received:    atomic.NewUint64(0),
		dropped:     atomic.NewUint64(0),
		rate:        ratecounter.NewRateCounter(messageRateInterval),
		done:        done,
	}
}

// Open connects to the node and waits for the uid of the connection. The uid has to arrive before the deadline of the
// context (or within uidReadTimeout if the context has none). A closed Listener can be opened again.
func (l *Listener) Open(ctx context.Context) error {
	l.stateMu.Lock()
	defer l.stateMu.Unlock()

	if l.open.Load() {
		return nil
	}
	// a dropped connection may still be closing its subscribers
	<-l.Done()

	conn, _, err := l.dialer.DialContext(ctx, l.url, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to connect to %s", l.url)
	}

	uid, err := readUID(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return err
	}

	done := make(chan struct{})
	l.subscribersMu.Lock()
	l.conn = conn
	l.uid = uid
	l.done = done
	l.open.Store(true)
	l.subscribersMu.Unlock()

	go l.readLoop(conn, done)

	l.log.Debugw("Listener connected", "url", l.url, "uid", uid)

	return nil
}

// UID returns the identifier the node assigned to the connection.
func (l *Listener) UID() string {
	l.subscribersMu.Lock()
	defer l.subscribersMu.Unlock()

	return l.uid
}

// IsOpen returns true if the Listener is connected.
func (l *Listener) IsOpen() bool {
	return l.open.Load()
}

// Received returns the number of messages received on all channels.
func (l *Listener) Received() uint64 {
	return l.received.Load()
}

// Dropped returns the number of messages dropped because a subscriber did not keep up.
func (l *Listener) Dropped() uint64 {
	return l.dropped.Load()
}

// MessagesPerMinute returns the number of messages received within the last minute.
func (l *Listener) MessagesPerMinute() int64 {
	return l.rate.Rate()
}

// Done returns a channel that is closed once the current connection is gone.
func (l *Listener) Done() <-chan struct{} {
	l.subscribersMu.Lock()
	defer l.subscribersMu.Unlock()

	return l.done
}

// Close disconnects the Listener and closes all subscriptions.
func (l *Listener) Close() error {
	l.stateMu.Lock()
	defer l.stateMu.Unlock()

	if !l.open.Swap(false) {
		return nil
	}

	l.writeMu.Lock()
	_ = l.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(webSocketWriteTimeout))
	l.writeMu.Unlock()

	err := l.conn.Close()
	<-l.Done()

	return err
}

// NewBlock subscribes to the blocks the node adds to the chain.
func (l *Listener) NewBlock() (<-chan jsonmodels.BlockInfo, error) {
	raw, err := l.subscribe(channelBlock)
	if err != nil {
		return nil, err
	}

	blocks := make(chan jsonmodels.BlockInfo, subscriberBufferSize)
	go func() {
		defer close(blocks)
		for data := range raw {
			block := jsonmodels.BlockInfo{}
			if unmarshalErr := json.Unmarshal(data, &block); unmarshalErr != nil {
				l.log.Warnw("Failed to parse block", "err", unmarshalErr)
				continue
			}
			blocks <- block
		}
	}()

	return blocks, nil
}

// ConfirmedAdded subscribes to the confirmed transactions of the given account. Only transactions that concern the
// account (directly or through one of the given aliases) are delivered.
func (l *Listener) ConfirmedAdded(address catapult.Address, aliases []catapult.NamespaceID) (<-chan catapult.Transaction, error) {
	raw, err := l.subscribe(channelConfirmedAdded + "/" + address.Plain())
	if err != nil {
		return nil, err
	}

	aliases = append([]catapult.NamespaceID(nil), aliases...)
	transactions := make(chan catapult.Transaction, subscriberBufferSize)
	go func() {
		defer close(transactions)
		for data := range raw {
			info := &jsonmodels.TransactionInfo{}
			if unmarshalErr := json.Unmarshal(data, info); unmarshalErr != nil {
				l.log.Warnw("Failed to parse confirmed transaction", "err", unmarshalErr)
				continue
			}

			transaction, parseErr := info.ToTransaction()
			if parseErr != nil {
				l.log.Warnw("Failed to parse confirmed transaction", "hash", info.Meta.Hash, "err", parseErr)
				continue
			}
			if !transaction.ShouldNotifyAccount(address, aliases) {
				continue
			}
			transactions <- transaction
		}
	}()

	return transactions, nil
}

// Status subscribes to the rejected transactions of the given account.
func (l *Listener) Status(address catapult.Address) (<-chan jsonmodels.TransactionStatusError, error) {
	raw, err := l.subscribe(channelStatus + "/" + address.Plain())
	if err != nil {
		return nil, err
	}

	statuses := make(chan jsonmodels.TransactionStatusError, subscriberBufferSize)
	go func() {
		defer close(statuses)
		for data := range raw {
			status := jsonmodels.TransactionStatusError{}
			if unmarshalErr := json.Unmarshal(data, &status); unmarshalErr != nil {
				l.log.Warnw("Failed to parse transaction status", "err", unmarshalErr)
				continue
			}
			statuses <- status
		}
	}()

	return statuses, nil
}

func (l *Listener) subscribe(channel string) (<-chan json.RawMessage, error) {
	l.subscribersMu.Lock()
	defer l.subscribersMu.Unlock()

	// the read loop closes the subscribers under the same lock after the listener stopped being open
	if !l.open.Load() {
		return nil, errors.Errorf("listener is not open: %w", faults.ErrState)
	}

	if len(l.subscribers[channel]) == 0 {
		if err := l.write(&jsonmodels.WebSocketSubscription{UID: l.uid, Subscribe: channel}); err != nil {
			return nil, errors.Wrapf(err, "failed to subscribe to %s", channel)
		}
	}

	subscriber := make(chan json.RawMessage, subscriberBufferSize)
	l.subscribers[channel] = append(l.subscribers[channel], subscriber)

	return subscriber, nil
}

func (l *Listener) write(message interface{}) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	if err := l.conn.SetWriteDeadline(time.Now().Add(webSocketWriteTimeout)); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(l.conn.WriteJSON(message))
}

func (l *Listener) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer l.closeSubscribers(done)

	for {
		message := &jsonmodels.WebSocketMessage{}
		if err := conn.ReadJSON(message); err != nil {
			if l.open.Swap(false) {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					l.log.Warnw("Listener disconnected", "url", l.url, "err", err)
				}
				_ = conn.Close()
			}
			return
		}
		l.received.Inc()
		l.rate.Incr(1)

		l.dispatch(message)
	}
}

func (l *Listener) dispatch(message *jsonmodels.WebSocketMessage) {
	l.subscribersMu.Lock()
	defer l.subscribersMu.Unlock()

	for _, subscriber := range l.subscribers[message.Topic] {
		select {
		case subscriber <- message.Data:
		default:
			// potentially drop if slow consumer
			l.dropped.Inc()
		}
	}
}

func (l *Listener) closeSubscribers(done chan struct{}) {
	l.subscribersMu.Lock()
	defer l.subscribersMu.Unlock()

	for channel, subscribers := range l.subscribers {
		for _, subscriber := range subscribers {
			close(subscriber)
		}
		delete(l.subscribers, channel)
	}
	close(done)
}

// readUID reads the first message of a connection, which carries the uid the node assigned to it.
func readUID(ctx context.Context, conn *websocket.Conn) (string, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(uidReadTimeout)
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return "", errors.WithStack(err)
	}

	uidMessage := &jsonmodels.WebSocketUID{}
	if err := conn.ReadJSON(uidMessage); err != nil {
		return "", errors.Wrap(err, "failed to read uid")
	}
	if uidMessage.UID == "" {
		return "", errors.Errorf("first websocket message carries no uid: %w", faults.ErrFormat)
	}

	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return "", errors.WithStack(err)
	}

	return uidMessage.UID, nil
}
