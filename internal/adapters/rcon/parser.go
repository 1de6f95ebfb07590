package rcon

import "regexp"

var markerIDPattern = regexp.MustCompile(`id:'(marker_\d+)'`)

// MarkerIDResult is either a matched marker id or the raw response that did not match.
type MarkerIDResult struct {
	Matched bool
	ID      string
	Raw     string
}

// ParseMarkerID extracts the first marker_<n> id from a console response.
func ParseMarkerID(response string) MarkerIDResult {
	m := markerIDPattern.FindStringSubmatch(response)
	if m == nil {
		return MarkerIDResult{Raw: response}
	}
	return MarkerIDResult{Matched: true, ID: m[1], Raw: response}
}

var validMarkerID = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// IsValidMarkerID reports whether a stored id is safe to send back to the console.
func IsValidMarkerID(id string) bool {
	return validMarkerID.MatchString(id)
}
