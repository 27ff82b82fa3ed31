// ABOUTME: Synchronization error values
// ABOUTME: Sentinel errors returned while skipping headers and scanning for sync
package mpeg

import "errors"

var (
	// ErrInsufficientData is returned when a fixed-size read during header
	// skipping returns fewer bytes than required.
	ErrInsufficientData = errors.New("mpeg: insufficient data")

	// ErrSyncNotFound is returned when the stream ends before a valid frame
	// header is found.
	ErrSyncNotFound = errors.New("mpeg: frame sync not found")
)
