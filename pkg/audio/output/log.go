// ABOUTME: Package logger for audio outputs
// ABOUTME: Registers the capnslog logger used by speaker and file outputs
package output

import "github.com/coreos/pkg/capnslog"

var plog = capnslog.NewPackageLogger("github.com/Resonate-Protocol/mpegsync", "output")
