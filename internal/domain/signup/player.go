package signup

import (
	"regexp"
	"strings"
)

// emailSuffix matches a trailing angle-bracket address in a slot cell,
// e.g. `Rob Bottos <payments@example.com>`.
var emailSuffix = regexp.MustCompile(`\s*<[^>]+>`)

// slotEmpty is the literal the organizers use for an unsold seat.
const slotEmpty = "N/A"

// CleanPlayerName extracts a display name from one player slot cell.
// Empty cells and the N/A sentinel contribute no player; a cell with
// an email address keeps only the name part. The boolean is false
// when the cell holds no player.
func CleanPlayerName(cell string) (string, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, slotEmpty) {
		return "", false
	}
	name := strings.TrimSpace(emailSuffix.ReplaceAllString(cell, ""))
	if name == "" {
		return "", false
	}
	return name, true
}
