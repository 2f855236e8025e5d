// Package rules contains the pure content transforms applied by the fix
// engine. Every rule is a named function from file content to proposed
// content with an explicit, documented scope; rules never touch the
// filesystem. Pattern rules converge on their own output, block-append
// rules are guarded by a sentinel marker, so reapplying any rule to a
// file it already fixed is a no-op.
package rules

import "strings"

// Sentinel marks blocks appended to source and script files.
const Sentinel = "Added by preflight"

// ConfigSentinel marks sections appended to configuration files.
const ConfigSentinel = "# preflight configuration"

// HasSentinel reports whether content already carries the given marker.
// Block-append rules must check this before appending: it is the only
// cross-run idempotence mechanism, since no ledger persists between runs.
func HasSentinel(content, marker string) bool {
	return strings.Contains(content, marker)
}
