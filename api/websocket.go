// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package api

import (
	"encoding/hex"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol/registrar"
	"github.com/namechain/namechain-core/blockchain/block"
	"github.com/namechain/namechain-core/pkg/log"
)

const (
	// Time allowed to write a message to the peer.
	_writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	_pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	_pingPeriod = (_pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WebsocketHandler upgrades event stream requests and hangs each connection
// off the chain listener
type WebsocketHandler struct {
	listener Listener
	limiter  *rate.Limiter
}

// safeWebsocketConn wraps websocket.Conn with a mutex
// to avoid concurrent write to the connection
// https://pkg.go.dev/github.com/gorilla/websocket#hdr-Concurrency
type safeWebsocketConn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// WriteJSON writes a JSON message to the connection in a thread-safe way
func (c *safeWebsocketConn) WriteJSON(message interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(_writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(message)
}

// WriteMessage writes a message to the connection in a thread-safe way
func (c *safeWebsocketConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(_writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(messageType, data)
}

// Close closes the underlying network connection without sending or waiting for a close frame
func (c *safeWebsocketConn) Close() error {
	return c.ws.Close()
}

// NewWebsocketHandler creates a new websocket handler
func NewWebsocketHandler(listener Listener, limiter *rate.Limiter) *WebsocketHandler {
	if limiter == nil {
		// set the limiter to the maximum possible rate
		limiter = rate.NewLimiter(rate.Limit(math.MaxFloat64), 1)
	}
	return &WebsocketHandler{
		listener: listener,
		limiter:  limiter,
	}
}

func (wsSvr *WebsocketHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if !wsSvr.limiter.Allow() {
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}
	upgrader.CheckOrigin = func(_ *http.Request) bool { return true }

	// upgrade this connection to a WebSocket connection
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Logger("api").Warn("failed to upgrade http server to websocket", zap.Error(err))
		return
	}

	wsSvr.handleConnection(ws)
}

func (wsSvr *WebsocketHandler) handleConnection(ws *websocket.Conn) {
	stream := newEventStream(&safeWebsocketConn{ws: ws})
	if err := wsSvr.listener.AddResponder(stream); err != nil {
		log.Logger("api").Warn("failed to add the event stream", zap.Error(err))
		if err := ws.WriteJSON(&ErrorResponse{Error: err.Error()}); err != nil {
			log.Logger("api").Warn("failed to write the error response", zap.Error(err))
		}
		ws.Close()
		return
	}
	go stream.ping()
	// the read loop detects the client hanging up, inbound payloads are
	// discarded
	if err := ws.SetReadDeadline(time.Now().Add(_pongWait)); err != nil {
		log.Logger("api").Warn("failed to set read deadline timeout.", zap.Error(err))
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(_pongWait))
	})
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			log.Logger("api").Debug("Client Disconnected", zap.Error(err))
			break
		}
	}
	stream.Exit()
}

// eventStream pushes the registration events of each committed block over one
// websocket connection. The chain listener evicts a stream whose Respond
// fails, so a closed connection drops out on the next block.
type eventStream struct {
	ws       *safeWebsocketConn
	exit     chan struct{}
	exitOnce sync.Once
}

func newEventStream(ws *safeWebsocketConn) *eventStream {
	return &eventStream{
		ws:   ws,
		exit: make(chan struct{}),
	}
}

// Respond writes the block's registration events to the connection
func (es *eventStream) Respond(blk *block.Block) error {
	select {
	case <-es.exit:
		return errors.New("event stream closed")
	default:
	}
	for _, msg := range RegistrationEvents(blk) {
		if err := es.ws.WriteJSON(msg); err != nil {
			es.Exit()
			return errors.Wrap(err, "failed to write the event")
		}
	}
	return nil
}

// Exit closes the stream
func (es *eventStream) Exit() {
	es.exitOnce.Do(func() {
		close(es.exit)
		es.ws.Close()
	})
}

// ping keeps the connection alive until the stream exits
func (es *eventStream) ping() {
	pingTicker := time.NewTicker(_pingPeriod)
	defer pingTicker.Stop()
	for {
		select {
		case <-es.exit:
			return
		case <-pingTicker.C:
			if err := es.ws.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				log.Logger("api").Warn("fail to ping the client.", zap.Error(err))
				es.Exit()
				return
			}
		}
	}
}

// RegistrationEvents extracts the registration events out of a committed
// block's receipts, in receipt order
func RegistrationEvents(blk *block.Block) []*EventMessage {
	var events []*EventMessage
	for _, receipt := range blk.Receipts {
		for _, l := range receipt.Logs() {
			event := eventName(l)
			if event == "" {
				continue
			}
			account, err := address.FromBytes(l.Topics[1][12:])
			if err != nil {
				log.Logger("api").Error("corrupted account topic in an event log", zap.Error(err))
				continue
			}
			events = append(events, &EventMessage{
				Event:       event,
				Account:     account.String(),
				Name:        string(l.Data),
				BlockHeight: receipt.BlockHeight,
				ActionHash:  hex.EncodeToString(receipt.ActionHash[:]),
			})
		}
	}
	return events
}

func eventName(l *action.Log) string {
	if len(l.Topics) < 2 {
		return ""
	}
	switch l.Topics[0] {
	case registrar.NameRegisteredTopic:
		return "NameRegistered"
	case registrar.NameAlreadyRegisteredTopic:
		return "NameAlreadyRegistered"
	}
	return ""
}
