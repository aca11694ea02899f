package safego

import (
	"log"
	"runtime/debug"
)

// Go runs fn on a new goroutine. A full-screen terminal UI owns stdout and
// stderr, so panics are written to the app logger before crashing out again.
func Go(logger *log.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC: %v\n%s", r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}
