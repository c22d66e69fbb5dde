// Package goroutine launches background goroutines with panic recovery.
package goroutine

import (
	"runtime/debug"

	"carsub/internal/shared/logger"
)

// SafeGo runs fn on a new goroutine. A panic inside fn is logged with its
// stack trace instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", r,
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
