package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/jsonmodels"
)

func TestListener(t *testing.T) {
	account := catapult.NewPublicAccount(ed25519.GenerateKeyPair().PublicKey, catapult.TestNet)
	stranger := catapult.NewPublicAccount(ed25519.GenerateKeyPair().PublicKey, catapult.TestNet)

	ownTransaction := confirmedTransactionModel(t, account, 1)
	foreignTransaction := confirmedTransactionModel(t, stranger, 2)

	server := newTestNode(t, func(conn *websocket.Conn, subscription *jsonmodels.WebSocketSubscription) {
		assert.Equal(t, "uid-1", subscription.UID)

		switch {
		case subscription.Subscribe == channelBlock:
			writeMessage(t, conn, channelBlock, &jsonmodels.BlockInfo{
				Block: jsonmodels.BlockHeader{Height: 17, Network: uint8(catapult.TestNet)},
				Meta:  jsonmodels.BlockMeta{Hash: "AA"},
			})
		case strings.HasPrefix(subscription.Subscribe, channelConfirmedAdded+"/"):
			writeMessage(t, conn, subscription.Subscribe, foreignTransaction)
			writeMessage(t, conn, subscription.Subscribe, ownTransaction)
		case strings.HasPrefix(subscription.Subscribe, channelStatus+"/"):
			writeMessage(t, conn, subscription.Subscribe, &jsonmodels.TransactionStatusError{Hash: "BB", Code: "Failure_Core_Insufficient_Balance", Deadline: 9})
		}
	})

	listener := NewListener("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", log)

	_, err := listener.NewBlock()
	assert.ErrorIs(t, err, faults.ErrState)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, listener.Open(ctx))
	assert.True(t, listener.IsOpen())
	assert.Equal(t, "uid-1", listener.UID())

	blocks, err := listener.NewBlock()
	require.NoError(t, err)
	select {
	case block := <-blocks:
		assert.EqualValues(t, 17, block.Block.Height)
		assert.Equal(t, "AA", block.Meta.Hash)
	case <-ctx.Done():
		t.Fatal("no block received")
	}

	transactions, err := listener.ConfirmedAdded(account.Address(), nil)
	require.NoError(t, err)
	select {
	case transaction := <-transactions:
		assert.True(t, transaction.Signer().Equals(account))
		assert.EqualValues(t, 1, transaction.TransactionInfo().Height)
	case <-ctx.Done():
		t.Fatal("no transaction received")
	}

	statuses, err := listener.Status(account.Address())
	require.NoError(t, err)
	select {
	case status := <-statuses:
		assert.Equal(t, "Failure_Core_Insufficient_Balance", status.Code)
		assert.EqualValues(t, 9, status.Deadline)
	case <-ctx.Done():
		t.Fatal("no status received")
	}

	assert.EqualValues(t, 4, listener.Received())
	assert.EqualValues(t, 4, listener.MessagesPerMinute())

	require.NoError(t, listener.Close())
	assert.False(t, listener.IsOpen())
	<-listener.Done()

	_, open := <-blocks
	assert.False(t, open)
	for range transactions {
		t.Error("no further transaction expected")
	}
}

func TestListener_InvalidUID(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteJSON(&jsonmodels.WebSocketUID{})
	}))
	defer server.Close()

	listener := NewListener("ws"+strings.TrimPrefix(server.URL, "http"), log)
	assert.ErrorIs(t, listener.Open(context.Background()), faults.ErrFormat)
	assert.False(t, listener.IsOpen())
}

func TestListener_Reopen(t *testing.T) {
	server := newTestNode(t, func(conn *websocket.Conn, subscription *jsonmodels.WebSocketSubscription) {
		if subscription.Subscribe == channelBlock {
			writeMessage(t, conn, channelBlock, &jsonmodels.BlockInfo{Block: jsonmodels.BlockHeader{Height: 3}})
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	listener := NewListener("ws"+strings.TrimPrefix(server.URL, "http"), log)
	for i := 0; i < 2; i++ {
		require.NoError(t, listener.Open(ctx))
		done := listener.Done()

		blocks, err := listener.NewBlock()
		require.NoError(t, err)
		select {
		case block := <-blocks:
			assert.EqualValues(t, 3, block.Block.Height)
		case <-ctx.Done():
			t.Fatal("no block received")
		}

		require.NoError(t, listener.Close())
		<-done
		require.NoError(t, listener.Close())

		_, err = listener.NewBlock()
		assert.ErrorIs(t, err, faults.ErrState)
	}
}

func TestListener_MissingUID(t *testing.T) {
	upgrader := websocket.Upgrader{}
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	listener := NewListener("ws"+strings.TrimPrefix(server.URL, "http"), log)
	assert.Error(t, listener.Open(ctx))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.False(t, listener.IsOpen())
}

// newTestNode starts a websocket endpoint that greets with a uid and passes every subscription to the handler.
func newTestNode(t *testing.T, handleSubscription func(conn *websocket.Conn, subscription *jsonmodels.WebSocketSubscription)) *httptest.Server {
	upgrader := websocket.Upgrader{
		HandshakeTimeout: webSocketWriteTimeout,
		CheckOrigin:      func(r *http.Request) bool { return true },
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		if err = conn.WriteJSON(&jsonmodels.WebSocketUID{UID: "uid-1"}); err != nil {
			t.Errorf("failed to send uid: %v", err)
			return
		}

		for {
			subscription := &jsonmodels.WebSocketSubscription{}
			if err = conn.ReadJSON(subscription); err != nil {
				return
			}
			handleSubscription(conn, subscription)
		}
	}))
	t.Cleanup(server.Close)

	return server
}

func writeMessage(t *testing.T, conn *websocket.Conn, topic string, data interface{}) {
	encoded, err := json.Marshal(data)
	require.NoError(t, err)
	assert.NoError(t, conn.WriteJSON(&jsonmodels.WebSocketMessage{Topic: topic, Data: encoded}))
}

func confirmedTransactionModel(t *testing.T, signer catapult.PublicAccount, height uint64) *jsonmodels.TransactionInfo {
	transaction, err := catapult.NewAccountAddressRestrictionTransaction(catapult.Deadline(1), catapult.AllowOutgoingAddress,
		[]catapult.UnresolvedAddress{randomAddress()}, nil, catapult.TestNet,
		catapult.WithSigner(signer), catapult.WithTransactionInfo(catapult.TransactionInfo{Height: height}),
	)
	require.NoError(t, err)

	model, err := jsonmodels.NewTransactionInfo(transaction)
	require.NoError(t, err)

	return model
}
