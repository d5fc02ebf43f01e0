package document

import "strings"

type ChangeType string

const (
	ChangeAddition     ChangeType = "addition"
	ChangeRemoval      ChangeType = "removal"
	ChangeModification ChangeType = "modification"
)

// LineChange describes one differing line. Line is 1-based.
type LineChange struct {
	Line     int        `json:"line"`
	Type     ChangeType `json:"type"`
	OldValue string     `json:"old_value,omitempty"`
	NewValue string     `json:"new_value,omitempty"`
}

// Diff compares from and to line by line at equal indexes. A line that is
// empty or absent on the from side and non-empty on the to side is an
// addition, the reverse is a removal, and two unequal non-empty lines are a
// modification. Equal lines are omitted. There is no move detection.
func Diff(from, to string) []LineChange {
	a := strings.Split(from, "\n")
	b := strings.Split(to, "\n")

	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	changes := make([]LineChange, 0)
	for i := 0; i < n; i++ {
		oldLine := lineAt(a, i)
		newLine := lineAt(b, i)
		if oldLine == newLine {
			continue
		}

		change := LineChange{Line: i + 1, OldValue: oldLine, NewValue: newLine}
		switch {
		case oldLine == "":
			change.Type = ChangeAddition
		case newLine == "":
			change.Type = ChangeRemoval
		default:
			change.Type = ChangeModification
		}
		changes = append(changes, change)
	}
	return changes
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
