package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// crashHandler is invoked on any panic inside a Go-launched goroutine
// Set once at startup via SetCrashHandler; defaults to stderr dump + exit
var crashHandler atomic.Pointer[func(any)]

// SetCrashHandler installs the process-wide panic handler
// The front end uses this to restore the terminal before the stack trace prints
func SetCrashHandler(fn func(any)) {
	crashHandler.Store(&fn)
}

// HandleCrash dumps the panic value and stack trace, then exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := crashHandler.Load(); fn != nil {
		(*fn)(r)
		return
	}

	fmt.Fprintf(os.Stderr, "\ncrash: %v\n", r)
	fmt.Fprintf(os.Stderr, "stack trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword so a crashed goroutine still
// cleans up the terminal.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
