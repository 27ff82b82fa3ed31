// ABOUTME: Decode error values
// ABOUTME: Sentinel errors for engine configuration, decoding and session lifecycle
package decode

import "errors"

var (
	// ErrEngineConfig is returned when the engine rejects the stream during configuration
	ErrEngineConfig = errors.New("decode: engine configuration failed")

	// ErrEngineDecode is returned when the engine fails a decode call
	ErrEngineDecode = errors.New("decode: engine decode failed")

	// ErrSessionActive is returned when opening a second session on an engine
	ErrSessionActive = errors.New("decode: session already active")

	// ErrNoSession is returned when calling an engine without an open session
	ErrNoSession = errors.New("decode: no active session")

	// ErrNotConfigured is returned when decoding before configuration finished
	ErrNotConfigured = errors.New("decode: engine not configured")

	// ErrSessionClosed is returned when using a closed Session
	ErrSessionClosed = errors.New("decode: session closed")
)
