package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/location_approval_bot/internal/apperrors"
	"github.com/SscSPs/location_approval_bot/internal/core/domain"
)

// MaxChunkLen keeps a chunk plus its header under the 2000 character message limit.
const MaxChunkLen = 1900

func formatPendingLine(loc domain.Location) string {
	return fmt.Sprintf("ID: %d | Discord User: %s | Minecraft User: %s | Location: %s | Coords: %d, %d",
		loc.ID, loc.DiscordUsername, loc.MinecraftUsername, loc.LocationName, loc.XCoord, loc.ZCoord)
}

func formatListLine(loc domain.Location) string {
	markerID := "null"
	if loc.MarkerID != nil {
		markerID = *loc.MarkerID
	}
	line := fmt.Sprintf("ID: %d | User: %s | Location: %s | Coords: %d, %d | Status: %s | marker_ID: %s",
		loc.ID, loc.MinecraftUsername, loc.LocationName, loc.XCoord, loc.ZCoord, loc.Status, markerID)
	if loc.Removed {
		line += " | removed"
	}
	return line
}

// chunkLines joins lines with newlines into chunks of at most limit bytes.
// Lines are never split unless a single line is longer than limit.
func chunkLines(lines []string, limit int) []string {
	var chunks []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			chunks = append(chunks, b.String())
			b.Reset()
		}
	}

	for _, line := range lines {
		for len(line) > limit {
			flush()
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if b.Len() > 0 && b.Len()+1+len(line) > limit {
			flush()
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	flush()

	return chunks
}

// parseLocationID accepts positive base-10 integers only.
func parseLocationID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationFailedError(fmt.Sprintf("invalid location ID %q, IDs are positive whole numbers", raw))
	}
	return id, nil
}

// reason strips the error category so only the user-facing reason is left.
func reason(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{apperrors.ErrValidation, apperrors.ErrPrecondition} {
		if errors.Is(err, sentinel) {
			return strings.TrimPrefix(msg, sentinel.Error()+": ")
		}
	}
	return msg
}
