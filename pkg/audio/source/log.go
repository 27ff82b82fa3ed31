// ABOUTME: Package logger for stream sources
// ABOUTME: Registers the capnslog logger used by file, HTTP and WebSocket sources
package source

import "github.com/coreos/pkg/capnslog"

var plog = capnslog.NewPackageLogger("github.com/Resonate-Protocol/mpegsync", "source")
