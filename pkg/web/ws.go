// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/icewmcp/icewmcp/pkg/panelps"
	"github.com/icewmcp/icewmcp/pkg/util/utilfn"
)

const wsReadWaitTimeout = 15 * time.Second
const wsWriteWaitTimeout = 10 * time.Second
const wsPingPeriodTickTime = 10 * time.Second
const wsInitialPingTime = 1 * time.Second

const wsOutputChSize = 100

// RunWebSocketServer serves the event stream on listener.  Blocking.
func RunWebSocketServer(listener net.Listener) error {
	gr := mux.NewRouter()
	gr.HandleFunc("/ws", HandleWs)
	server := &http.Server{
		ReadTimeout:    HttpReadTimeout,
		WriteTimeout:   HttpWriteTimeout,
		MaxHeaderBytes: HttpMaxHeaderBytes,
		Handler:        gr,
	}
	server.SetKeepAlivesEnabled(false)
	err := server.Serve(listener)
	if err != nil {
		return fmt.Errorf("running websocket server: %w", err)
	}
	return nil
}

var WebSocketUpgrader = websocket.Upgrader{
	ReadBufferSize:   4 * 1024,
	WriteBufferSize:  32 * 1024,
	HandshakeTimeout: 1 * time.Second,
	CheckOrigin:      func(r *http.Request) bool { return true },
}

// wsConnection receives broker events for one websocket client.
type wsConnection struct {
	clientId string
	outputCh chan any
}

func (wsc *wsConnection) ClientId() string {
	return wsc.clientId
}

// SendEvent must not block the broker; a stalled client just loses events.
func (wsc *wsConnection) SendEvent(event panelps.PanelEvent) {
	msg := map[string]any{"type": "event", "data": event}
	select {
	case wsc.outputCh <- msg:
	default:
		log.Printf("dropping event %q for client %s (queue full)\n", event.Event, wsc.clientId)
	}
}

func HandleWs(w http.ResponseWriter, r *http.Request) {
	err := HandleWsInternal(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func getMessageType(jmsg map[string]any) string {
	if str, ok := jmsg["type"].(string); ok {
		return str
	}
	return ""
}

func getStringFromMap(jmsg map[string]any, key string) string {
	if str, ok := jmsg[key].(string); ok {
		return str
	}
	return ""
}

func parseSubscription(jmsg map[string]any) (panelps.SubscriptionRequest, error) {
	var sub panelps.SubscriptionRequest
	err := utilfn.DoMapStructure(&sub, jmsg)
	if err != nil {
		return sub, fmt.Errorf("cannot parse subscription: %w", err)
	}
	if sub.Event == "" {
		return sub, fmt.Errorf("subscription has no event")
	}
	return sub, nil
}

func processMessage(jmsg map[string]any, wsc *wsConnection) {
	msgType := getMessageType(jmsg)
	switch msgType {
	case "sub":
		sub, err := parseSubscription(jmsg)
		if err != nil {
			wsc.outputCh <- map[string]any{"type": "error", "error": err.Error()}
			return
		}
		panelps.Broker.Subscribe(wsc, sub)
	case "unsub":
		sub, err := parseSubscription(jmsg)
		if err != nil {
			wsc.outputCh <- map[string]any{"type": "error", "error": err.Error()}
			return
		}
		panelps.Broker.Unsubscribe(wsc, sub)
	case "rpc":
		reqId := getStringFromMap(jmsg, "reqid")
		wsc.outputCh <- map[string]any{"type": "rpcresp", "reqid": reqId, "error": "rpc is not supported"}
	default:
		log.Printf("unknown websocket message type %q\n", msgType)
	}
}

func ReadLoop(conn *websocket.Conn, wsc *wsConnection, closeCh chan any) {
	readWait := wsReadWaitTimeout
	conn.SetReadLimit(64 * 1024)
	conn.SetReadDeadline(time.Now().Add(readWait))
	defer close(closeCh)
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("ReadPump error: %v\n", err)
			break
		}
		jmsg := map[string]any{}
		err = json.Unmarshal(message, &jmsg)
		if err != nil {
			log.Printf("Error unmarshalling json: %v\n", err)
			break
		}
		conn.SetReadDeadline(time.Now().Add(readWait))
		msgType := getMessageType(jmsg)
		if msgType == "pong" {
			// nothing
			continue
		}
		if msgType == "ping" {
			now := time.Now()
			pongMessage := map[string]any{"type": "pong", "stime": now.UnixMilli()}
			wsc.outputCh <- pongMessage
			continue
		}
		processMessage(jmsg, wsc)
	}
}

func WritePing(conn *websocket.Conn) error {
	now := time.Now()
	pingMessage := map[string]any{"type": "ping", "stime": now.UnixMilli()}
	jsonVal, _ := json.Marshal(pingMessage)
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWaitTimeout)) // no error
	err := conn.WriteMessage(websocket.TextMessage, jsonVal)
	if err != nil {
		return err
	}
	return nil
}

func WriteLoop(conn *websocket.Conn, outputCh chan any, closeCh chan any) {
	ticker := time.NewTicker(wsInitialPingTime)
	defer ticker.Stop()
	initialPing := true
	for {
		select {
		case msg := <-outputCh:
			var barr []byte
			var err error
			if _, ok := msg.([]byte); ok {
				barr = msg.([]byte)
			} else {
				barr, err = json.Marshal(msg)
				if err != nil {
					log.Printf("cannot marshal websocket message: %v\n", err)
					// just loop again
					break
				}
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWaitTimeout))
			err = conn.WriteMessage(websocket.TextMessage, barr)
			if err != nil {
				conn.Close()
				log.Printf("WritePump error: %v\n", err)
				return
			}

		case <-ticker.C:
			err := WritePing(conn)
			if err != nil {
				log.Printf("WritePump error: %v\n", err)
				return
			}
			if initialPing {
				initialPing = false
				ticker.Reset(wsPingPeriodTickTime)
			}

		case <-closeCh:
			return
		}
	}
}

func HandleWsInternal(w http.ResponseWriter, r *http.Request) error {
	clientId := r.URL.Query().Get("clientid")
	if clientId == "" {
		return fmt.Errorf("clientid is required")
	}
	conn, err := WebSocketUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("WebSocket Upgrade Failed: %v", err)
	}
	defer conn.Close()
	log.Printf("New websocket connection: clientid:%s\n", clientId)
	wsc := &wsConnection{
		clientId: clientId,
		outputCh: make(chan any, wsOutputChSize),
	}
	closeCh := make(chan any)
	defer panelps.Broker.UnsubscribeAll(wsc)
	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		// read loop
		defer wg.Done()
		ReadLoop(conn, wsc, closeCh)
	}()
	go func() {
		// write loop
		defer wg.Done()
		WriteLoop(conn, wsc.outputCh, closeCh)
	}()
	wg.Wait()
	return nil
}
