// ABOUTME: Stream synchronizer state machine
// ABOUTME: Skips tag and short headers, then slides a window to the first valid frame header
package mpeg

import (
	"errors"
	"fmt"
	"io"
)

// State is a synchronizer state
type State int

const (
	ScanningTag State = iota
	ScanningShortHeader
	ScanningSync
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case ScanningTag:
		return "scanning-tag"
	case ScanningShortHeader:
		return "scanning-short-header"
	case ScanningSync:
		return "scanning-sync"
	case Done:
		return "done"
	default:
		return "failed"
	}
}

// Scanner synchronizes a byte stream onto its first valid frame header.
// Each call to Step performs one transition.
type Scanner struct {
	cur    *Cursor
	state  State
	window Window
	shifts int64
	limit  int64
	err    error

	tagSize   int64 // bytes skipped for the tag header, including its 10-byte header
	shortSize int64 // bytes skipped for the short header, including magic and length
}

// NewScanner creates a scanner positioned at the start of a candidate stream
func NewScanner(c *Cursor) *Scanner {
	return &Scanner{cur: c, state: ScanningTag}
}

// SetShiftLimit bounds the number of single-byte shifts in ScanningSync.
// Zero means unbounded.
func (s *Scanner) SetShiftLimit(n int64) {
	s.limit = n
}

// State returns the current state
func (s *Scanner) State() State { return s.state }

// Window returns the current window
func (s *Scanner) Window() Window { return s.window }

// Shifts returns the number of single-byte shifts performed while scanning for sync
func (s *Scanner) Shifts() int64 { return s.shifts }

// Err returns the failure reason once the scanner is in the Failed state
func (s *Scanner) Err() error { return s.err }

// TagSize returns the number of bytes taken by a skipped tag header, or 0
func (s *Scanner) TagSize() int64 { return s.tagSize }

// ShortHeaderSize returns the number of bytes taken by a skipped short header, or 0
func (s *Scanner) ShortHeaderSize() int64 { return s.shortSize }

// Step performs one state transition and returns the new state
func (s *Scanner) Step() State {
	switch s.state {
	case ScanningTag:
		s.stepTag()
	case ScanningShortHeader:
		s.stepShortHeader()
	case ScanningSync:
		s.stepSync()
	}
	return s.state
}

// Run steps until the scanner reaches Done or Failed
func (s *Scanner) Run() (Window, error) {
	for s.state != Done && s.state != Failed {
		s.Step()
	}
	return s.window, s.err
}

func (s *Scanner) fail(err error) {
	s.err = err
	s.state = Failed
}

func (s *Scanner) readWindow() bool {
	if _, err := s.cur.ReadFull(s.window[:]); err != nil {
		s.fail(err)
		return false
	}
	return true
}

func (s *Scanner) stepTag() {
	if !s.readWindow() {
		return
	}
	if IsTagHeader(s.window) {
		rest := make([]byte, TagHeaderSize-len(s.window))
		if _, err := s.cur.ReadFull(rest); err != nil {
			s.fail(fmt.Errorf("tag header: %w", err))
			return
		}
		var size [4]byte
		copy(size[:], rest[2:6])
		length := DecodeSynchsafe(size)
		if err := s.cur.Skip(length); err != nil {
			s.fail(err)
			return
		}
		s.tagSize = TagHeaderSize + length
		if !s.readWindow() {
			return
		}
	}
	s.state = ScanningShortHeader
}

func (s *Scanner) stepShortHeader() {
	if IsShortHeader(s.window) {
		var size [ShortHeaderLengthSize]byte
		if _, err := s.cur.ReadFull(size[:]); err != nil {
			s.fail(fmt.Errorf("short header: %w", err))
			return
		}
		length := DecodeShortLength(size)
		if err := s.cur.Skip(length); err != nil {
			s.fail(err)
			return
		}
		s.shortSize = int64(len(shortMagic)) + ShortHeaderLengthSize + length
		if !s.readWindow() {
			return
		}
	}
	s.state = ScanningSync
}

func (s *Scanner) stepSync() {
	if IsValidFrameHeader(s.window) {
		s.state = Done
		return
	}
	if s.limit > 0 && s.shifts >= s.limit {
		s.fail(fmt.Errorf("%w: gave up after %d bytes", ErrSyncNotFound, s.shifts))
		return
	}
	b, err := s.cur.ReadByte()
	if errors.Is(err, io.EOF) {
		s.fail(fmt.Errorf("%w after %d bytes", ErrSyncNotFound, s.shifts))
		return
	}
	if err != nil {
		s.fail(fmt.Errorf("read failed: %w", err))
		return
	}
	s.window.Shift(b)
	s.shifts++
}

// LocateAndSkipHeaders reads the first window of c, skips any tag header and
// short header, and returns the window to start scanning for sync from.
func LocateAndSkipHeaders(c *Cursor) (Window, error) {
	s := NewScanner(c)
	for s.state == ScanningTag || s.state == ScanningShortHeader {
		s.Step()
	}
	return s.window, s.err
}

// FindSyncWord slides w over c until it holds a valid frame header, leaving c
// positioned immediately after it. It returns ErrSyncNotFound if c ends first.
func FindSyncWord(c *Cursor, w Window) (Window, error) {
	s := &Scanner{cur: c, state: ScanningSync, window: w}
	return s.Run()
}
