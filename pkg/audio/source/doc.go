// ABOUTME: Stream source package
// ABOUTME: Opens MPEG audio byte streams from files, HTTP and WebSocket endpoints
// Package source opens the byte streams that decode sessions read from.
//
// A location is a local path, an http(s) URL or a ws(s) URL. Every source is
// an io.ReadCloser; sources that know their length also implement Sized.
package source
