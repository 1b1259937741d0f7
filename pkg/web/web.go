// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package web

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"

	"github.com/icewmcp/icewmcp/pkg/authkey"
	"github.com/icewmcp/icewmcp/pkg/icewm"
	"github.com/icewmcp/icewmcp/pkg/panelbase"
	"github.com/icewmcp/icewmcp/pkg/panelconfig"
	"github.com/icewmcp/icewmcp/pkg/service"
)

type WebFnType = func(http.ResponseWriter, *http.Request)

// Header constants
const (
	CacheControlHeaderKey     = "Cache-Control"
	CacheControlHeaderNoCache = "no-cache"

	ContentTypeHeaderKey = "Content-Type"
	ContentTypeJson      = "application/json"
	ContentTypeText      = "text/plain; charset=utf-8"

	ContentLengthHeaderKey = "Content-Length"
)

const HttpReadTimeout = 5 * time.Second
const HttpWriteTimeout = 21 * time.Second
const HttpMaxHeaderBytes = 60000
const HttpTimeoutDuration = 21 * time.Second

const LoopbackIP = "127.0.0.1"

const DefaultWebPort = 2420
const DefaultWsPort = 2421
const DevWebPort = 8420
const DevWsPort = 8421

type WebFnOpts struct {
	AllowCaching bool
	JsonErrors   bool
}

func handleService(w http.ResponseWriter, r *http.Request) {
	bodyData, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Unable to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}
	var webCall service.WebCallType
	err = json.Unmarshal(bodyData, &webCall)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	rtn := service.CallService(r.Context(), webCall)
	jsonRtn, err := json.Marshal(rtn)
	if err != nil {
		http.Error(w, fmt.Sprintf("error serializing response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set(ContentTypeHeaderKey, ContentTypeJson)
	w.Header().Set(ContentLengthHeaderKey, fmt.Sprintf("%d", len(jsonRtn)))
	w.WriteHeader(http.StatusOK)
	w.Write(jsonRtn)
}

func marshalReturnValue(data any, err error) []byte {
	var mapRtn = make(map[string]any)
	if err != nil {
		mapRtn["error"] = err.Error()
	} else {
		mapRtn["success"] = true
		mapRtn["data"] = data
	}
	rtn, err := json.Marshal(mapRtn)
	if err != nil {
		return marshalReturnValue(nil, fmt.Errorf("error serializing response: %v", err))
	}
	return rtn
}

// handlePrefsRaw serves the current preference file bytes, for clients that
// want to show the file as the user wrote it.
func handlePrefsRaw(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	var fileName string
	switch scope {
	case "", "user":
		fileName = icewm.UserPrefsFile()
	case "system":
		fileName = icewm.SystemPrefsFile()
	default:
		http.Error(w, fmt.Sprintf("invalid scope %q (want user or system)", scope), http.StatusBadRequest)
		return
	}
	barr, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			w.Header().Set(ContentTypeHeaderKey, ContentTypeText)
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, fmt.Sprintf("error reading preferences: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set(ContentTypeHeaderKey, ContentTypeText)
	w.Header().Set(ContentLengthHeaderKey, fmt.Sprintf("%d", len(barr)))
	w.WriteHeader(http.StatusOK)
	w.Write(barr)
}

func handleDoc(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	barr, err := ReadDoc(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set(ContentTypeHeaderKey, ContentTypeText)
	w.Header().Set(ContentLengthHeaderKey, fmt.Sprintf("%d", len(barr)))
	w.WriteHeader(http.StatusOK)
	w.Write(barr)
}

func WebFnWrap(opts WebFnOpts, fn WebFnType) WebFnType {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recErr := recover()
			if recErr == nil {
				return
			}
			panicStr := fmt.Sprintf("panic: %v", recErr)
			log.Printf("panic: %v\n", recErr)
			debug.PrintStack()
			if opts.JsonErrors {
				jsonRtn := marshalReturnValue(nil, fmt.Errorf("%s", panicStr))
				w.Header().Set(ContentTypeHeaderKey, ContentTypeJson)
				w.Header().Set(ContentLengthHeaderKey, fmt.Sprintf("%d", len(jsonRtn)))
				w.WriteHeader(http.StatusOK)
				w.Write(jsonRtn)
			} else {
				http.Error(w, panicStr, http.StatusInternalServerError)
			}
		}()
		if !opts.AllowCaching {
			w.Header().Set(CacheControlHeaderKey, CacheControlHeaderNoCache)
		}
		err := authkey.ValidateIncomingRequest(r)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(err.Error()))
			return
		}
		fn(w, r)
	}
}

func webPort() int {
	if panelbase.IsDevMode() {
		return DevWebPort
	}
	port := panelconfig.GetWatcher().GetFullConfig().Settings.PanelWebPort
	if port <= 0 {
		port = DefaultWebPort
	}
	return port
}

func wsPort() int {
	if panelbase.IsDevMode() {
		return DevWsPort
	}
	port := panelconfig.GetWatcher().GetFullConfig().Settings.PanelWsPort
	if port <= 0 {
		port = DefaultWsPort
	}
	return port
}

// MakeTCPListener listens on the loopback interface only; the panel is not
// meant to be reachable from the network.
func MakeTCPListener(desc string, port int) (net.Listener, error) {
	serverAddr := fmt.Sprintf("%s:%d", LoopbackIP, port)
	rtn, err := net.Listen("tcp", serverAddr)
	if err != nil {
		return nil, fmt.Errorf("error creating %s listener at %v: %v", desc, serverAddr, err)
	}
	log.Printf("%s listening on %s\n", desc, serverAddr)
	return rtn, nil
}

func MakeWebListener() (net.Listener, error) {
	return MakeTCPListener("web", webPort())
}

func MakeWSListener() (net.Listener, error) {
	return MakeTCPListener("websocket", wsPort())
}

// RunWebServer serves the panel API on listener.  Blocking.
func RunWebServer(listener net.Listener) error {
	gr := mux.NewRouter()
	gr.HandleFunc("/panel/service", WebFnWrap(WebFnOpts{JsonErrors: true}, handleService))
	gr.HandleFunc("/panel/prefs/raw", WebFnWrap(WebFnOpts{}, handlePrefsRaw))
	gr.HandleFunc("/panel/doc", WebFnWrap(WebFnOpts{AllowCaching: true}, handleDoc))
	server := &http.Server{
		ReadTimeout:    HttpReadTimeout,
		WriteTimeout:   HttpWriteTimeout,
		MaxHeaderBytes: HttpMaxHeaderBytes,
		Handler:        http.TimeoutHandler(gr, HttpTimeoutDuration, "Timeout"),
	}
	err := server.Serve(listener)
	if err != nil {
		return fmt.Errorf("running web server: %w", err)
	}
	return nil
}
