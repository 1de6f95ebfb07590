package rcon

import (
	"fmt"
	"strings"
	"unicode"
)

// MarkerSpec describes a marker to create on the map.
type MarkerSpec struct {
	Label string
	X     int
	Y     int
	Z     int
	Icon  string
	World string
}

// SanitizeLabel makes a location name safe to embed in a quoted console argument.
// The console tokenizer has no escape sequences, so double quotes become single
// quotes and control characters are dropped.
func SanitizeLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r == '"':
			b.WriteRune('\'')
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// AddMarkerCommand builds the marker creation command.
func AddMarkerCommand(spec MarkerSpec) string {
	return fmt.Sprintf(`dmarker add "%s" icon:%s x:%d y:%d z:%d world:%s`,
		SanitizeLabel(spec.Label), spec.Icon, spec.X, spec.Y, spec.Z, spec.World)
}

// DeleteMarkerCommand builds the marker deletion command.
func DeleteMarkerCommand(markerID string) string {
	return "dmarker delete id:" + markerID
}

// ListCommand is the harmless command used to check the console connection.
const ListCommand = "list"
