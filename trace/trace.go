// Package trace ties log entries from one agent run together under a
// shared correlation id and writes them to the store.
package trace

import (
	"strings"

	"github.com/rustyeddy/autotrader/pkg/id"
)

const (
	prefix    = "trace_"
	delimiter = "0"

	// tokenLen is the fixed length of the id after the prefix.
	tokenLen = 32
)

// MakeCorrelationID builds an id of the form trace_<name>0<random>,
// padded with random lowercase alphanumerics to a fixed width. The
// agent name is lowercased so ids survive case-insensitive handling.
func MakeCorrelationID(name string) string {
	name = strings.ToLower(name)
	pad := tokenLen - len(name) - len(delimiter)
	return prefix + name + delimiter + id.Padding(pad)
}

// ExtractAgent recovers the agent name from a correlation id. It
// reports false for ids that were not produced by MakeCorrelationID.
func ExtractAgent(corrID string) (string, bool) {
	token, ok := strings.CutPrefix(corrID, prefix)
	if !ok {
		return "", false
	}
	name, _, ok := strings.Cut(token, delimiter)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
