package aspen

import "github.com/rs/zerolog"

// logger is the package logger. It discards everything by default so the
// library stays silent unless the host application opts in.
var logger = zerolog.Nop()

// SetLogger routes aspen's diagnostics (reconciliation contract warnings,
// factory lookups, state-change traces) through the given logger.
func SetLogger(l zerolog.Logger) {
	logger = l
}
