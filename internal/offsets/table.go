package offsets

import (
	"strings"

	"rostermem/internal/common"
)

// Table identifies one record table inside the target process.
type Table int

const (
	_ Table = iota

	TablePlayer
	TableTeam
	TableStaff
	TableStadium
	TableDraftClass

	// tableTotal is the number of defined tables.
	tableTotal = int(iota) - 1
)

// String returns the canonical table label used in schema documents.
func (t Table) String() string {
	switch t {
	case TablePlayer:
		return "Player"
	case TableTeam:
		return "Team"
	case TableStaff:
		return "Staff"
	case TableStadium:
		return "Stadium"
	case TableDraftClass:
		return "DraftClass"
	default:
		return common.UnknownStr
	}
}

// Tables lists all defined tables in declaration order.
func Tables() []Table {
	out := make([]Table, 0, tableTotal)
	for t := TablePlayer; t <= TableDraftClass; t++ {
		out = append(out, t)
	}

	return out
}

// ParseTable maps the many labels schema documents use for a table kind onto
// the canonical Table. Recognition is substring-based because documents have
// carried labels like "player_base", "Teams" and "draftclass".
func ParseTable(label string) (Table, bool) {
	low := strings.ToLower(strings.TrimSpace(label))

	switch {
	case low == "":
		return 0, false
	case strings.Contains(low, "draft"):
		return TableDraftClass, true
	case strings.Contains(low, "player"):
		return TablePlayer, true
	case strings.Contains(low, "team"):
		return TableTeam, true
	case strings.Contains(low, "staff"), strings.Contains(low, "coach"):
		return TableStaff, true
	case strings.Contains(low, "stadium"), strings.Contains(low, "arena"):
		return TableStadium, true
	default:
		return 0, false
	}
}
