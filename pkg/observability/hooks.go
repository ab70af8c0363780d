// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about validation passes and codec operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks observe; they never alter what the library does. A validation pass
// with hooks registered produces the same report as one without.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetValidationHooks(&myValidationHooks{})
//	    observability.SetCodecHooks(&myCodecHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Validation().OnValidateStart(ctx, fileID)
//	// ... run the pass ...
//	observability.Validation().OnValidateComplete(ctx, fileID, errorCount, warningCount, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Validation Hooks
// =============================================================================

// ValidationHooks receives events from document validation passes.
type ValidationHooks interface {
	// OnValidateStart records the beginning of a validation pass.
	OnValidateStart(ctx context.Context, fileID string)

	// OnValidateComplete records the outcome of a validation pass.
	OnValidateComplete(ctx context.Context, fileID string, errorCount, warningCount int, duration time.Duration)
}

// =============================================================================
// Codec Hooks
// =============================================================================

// CodecHooks receives events from serialization and deserialization.
type CodecHooks interface {
	// OnEncode records a completed encode, with the output size in bytes.
	OnEncode(ctx context.Context, format string, size int, duration time.Duration, err error)

	// OnDecode records a completed decode, with the input size in bytes.
	OnDecode(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopValidationHooks is a no-op implementation of ValidationHooks.
type NoopValidationHooks struct{}

func (NoopValidationHooks) OnValidateStart(context.Context, string)                        {}
func (NoopValidationHooks) OnValidateComplete(context.Context, string, int, int, time.Duration) {}

// NoopCodecHooks is a no-op implementation of CodecHooks.
type NoopCodecHooks struct{}

func (NoopCodecHooks) OnEncode(context.Context, string, int, time.Duration, error) {}
func (NoopCodecHooks) OnDecode(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	validationHooks ValidationHooks = NoopValidationHooks{}
	codecHooks      CodecHooks      = NoopCodecHooks{}
	hooksMu         sync.RWMutex
)

// SetValidationHooks registers custom validation hooks.
// This should be called once at application startup.
func SetValidationHooks(h ValidationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		validationHooks = h
	}
}

// SetCodecHooks registers custom codec hooks.
// This should be called once at application startup.
func SetCodecHooks(h CodecHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		codecHooks = h
	}
}

// Validation returns the registered validation hooks.
func Validation() ValidationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return validationHooks
}

// Codec returns the registered codec hooks.
func Codec() CodecHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return codecHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	validationHooks = NoopValidationHooks{}
	codecHooks = NoopCodecHooks{}
}
