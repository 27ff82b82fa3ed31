// ABOUTME: Package logger for the decode package
// ABOUTME: Routes decode and session messages through capnslog
package decode

import "github.com/coreos/pkg/capnslog"

var plog = capnslog.NewPackageLogger("github.com/Resonate-Protocol/mpegsync", "decode")
