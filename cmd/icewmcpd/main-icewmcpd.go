// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/icewmcp/icewmcp/pkg/authkey"
	"github.com/icewmcp/icewmcp/pkg/buildinfo"
	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/icewm"
	"github.com/icewmcp/icewmcp/pkg/panelbase"
	"github.com/icewmcp/icewmcp/pkg/panelconfig"
	"github.com/icewmcp/icewmcp/pkg/panichandler"
	"github.com/icewmcp/icewmcp/pkg/service"
	"github.com/icewmcp/icewmcp/pkg/util/sigutil"
	"github.com/icewmcp/icewmcp/pkg/web"
)

// these are set at build time
var PanelVersion = "0.0.0"
var BuildTime = "0"

const ChangeLogKeepDays = 90

var shutdownOnce sync.Once

func doShutdown(reason string) {
	shutdownOnce.Do(func() {
		log.Printf("shutting down: %s\n", reason)
		watcher := panelconfig.GetWatcher()
		if watcher != nil {
			watcher.Close()
		}
		panelbase.RemoveConnectFile()
		history.CloseDB()
		time.Sleep(200 * time.Millisecond)
		log.Printf("shutdown complete\n")
		os.Exit(0)
	})
}

// watch stdin, shut down the daemon if stdin is closed
func stdinReadWatch() {
	buf := make([]byte, 1024)
	for {
		_, err := os.Stdin.Read(buf)
		if err != nil {
			doShutdown(fmt.Sprintf("stdin closed/error (%v)", err))
			break
		}
	}
}

func configWatcher() {
	watcher := panelconfig.GetWatcher()
	if watcher != nil {
		watcher.Start()
	}
}

func pruneChangeLog() {
	defer func() {
		panichandler.PanicHandler("pruneChangeLog", recover())
	}()
	ctx, cancelFn := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelFn()
	pruned, err := history.PruneChanges(ctx, ChangeLogKeepDays)
	if err != nil {
		log.Printf("error pruning change log: %v\n", err)
		return
	}
	if pruned > 0 {
		log.Printf("pruned %d change log entries older than %d days\n", pruned, ChangeLogKeepDays)
	}
}

func grabAndRemoveEnvVars() error {
	err := authkey.SetAuthKeyFromEnv()
	if err != nil {
		return fmt.Errorf("setting auth key: %v", err)
	}
	panelbase.CacheAndRemoveEnvVars()
	return nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetPrefix("[icewmcpd] ")
	buildinfo.PanelVersion = PanelVersion
	buildinfo.BuildTime = BuildTime
	watchStdin := flag.Bool("watch-stdin", false, "shut down when stdin is closed")
	flag.Parse()

	err := panelbase.LoadDotEnv()
	if err != nil {
		log.Printf("error loading dotenv file: %v\n", err)
		return
	}
	err = grabAndRemoveEnvVars()
	if err != nil {
		log.Printf("[error] %v\n", err)
		return
	}
	err = service.ValidateServiceMap()
	if err != nil {
		log.Printf("error validating service map: %v\n", err)
		return
	}
	err = panelbase.EnsurePanelDataDir()
	if err != nil {
		log.Printf("error ensuring panel data dir: %v\n", err)
		return
	}
	err = panelbase.EnsurePanelDBDir()
	if err != nil {
		log.Printf("error ensuring panel db dir: %v\n", err)
		return
	}
	err = panelbase.EnsurePanelConfigDir()
	if err != nil {
		log.Printf("error ensuring panel config dir: %v\n", err)
		return
	}
	err = icewm.EnsureUserConfigDir()
	if err != nil {
		log.Printf("error ensuring icewm config dir: %v\n", err)
		return
	}
	panelLock, err := panelbase.AcquirePanelLock()
	if err != nil {
		log.Printf("error acquiring panel lock (another instance of icewmcpd is likely running): %v\n", err)
		return
	}
	defer func() {
		err = panelLock.Close()
		if err != nil {
			log.Printf("error releasing panel lock: %v\n", err)
		}
	}()
	log.Printf("icewmcpd version: %s (%s)\n", PanelVersion, BuildTime)
	log.Printf("panel data dir: %s\n", panelbase.GetPanelDataDir())
	log.Printf("panel config dir: %s\n", panelbase.GetPanelConfigDir())
	log.Printf("icewm config dir: %s\n", icewm.UserConfigDir())
	err = history.InitHistoryStore()
	if err != nil {
		log.Printf("error initializing history store: %v\n", err)
		return
	}
	go pruneChangeLog()
	sigutil.InstallShutdownSignalHandlers(doShutdown)
	sigutil.InstallSIGUSR1Handler(os.Stderr)
	if *watchStdin {
		go stdinReadWatch()
	}
	configWatcher()
	webListener, err := web.MakeWebListener()
	if err != nil {
		log.Printf("error creating web listener: %v\n", err)
		return
	}
	wsListener, err := web.MakeWSListener()
	if err != nil {
		log.Printf("error creating websocket listener: %v\n", err)
		return
	}
	err = web.WriteConnectFile(webListener, wsListener)
	if err != nil {
		log.Printf("error writing connect file: %v\n", err)
		return
	}
	defer panelbase.RemoveConnectFile()
	go func() {
		if BuildTime == "" {
			BuildTime = "0"
		}
		// use fmt instead of log here to make sure it goes directly to stderr
		fmt.Fprintf(os.Stderr, "ICEWMCPD-ESTART ws:%s web:%s version:%s buildtime:%s\n", wsListener.Addr(), webListener.Addr(), PanelVersion, BuildTime)
	}()
	var serverGroup errgroup.Group
	serverGroup.Go(func() error {
		defer func() {
			panichandler.PanicHandler("RunWebSocketServer", recover())
		}()
		return web.RunWebSocketServer(wsListener)
	})
	serverGroup.Go(func() error {
		defer func() {
			panichandler.PanicHandler("RunWebServer", recover())
		}()
		return web.RunWebServer(webListener)
	})
	err = serverGroup.Wait() // blocking
	if err != nil {
		log.Printf("[error] %v\n", err)
	}
	runtime.KeepAlive(panelLock)
}
