// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package sigutil

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/icewmcp/icewmcp/pkg/panichandler"
)

func InstallShutdownSignalHandlers(doShutdown func(string)) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		defer func() {
			panichandler.PanicHandler("InstallShutdownSignalHandlers", recover())
		}()
		for sig := range sigCh {
			doShutdown(fmt.Sprintf("got signal %v", sig))
			break
		}
	}()
}

// InstallSIGUSR1Handler dumps all goroutine stacks to w on SIGUSR1.
func InstallSIGUSR1Handler(w io.Writer) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1)
	go func() {
		defer func() {
			panichandler.PanicHandler("InstallSIGUSR1Handler", recover())
		}()
		for range sigCh {
			stackBuf := make([]byte, 1<<20)
			stackLen := runtime.Stack(stackBuf, true)
			w.Write(stackBuf[:stackLen])
		}
	}()
}
