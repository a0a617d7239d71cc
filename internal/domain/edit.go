package domain

import (
	"fmt"
	"sort"
)

// edit replaces content[start:end] with text. Insertions have start == end.
type edit struct {
	start int
	end   int
	text  string
}

// applyEdits splices non-overlapping edits into content. Edits are applied
// back to front so earlier offsets stay valid; insertions at the same offset
// keep their given order.
func applyEdits(content []byte, edits []edit) ([]byte, error) {
	ordered := make([]edit, len(edits))
	copy(ordered, edits)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].start < ordered[j].start
	})

	for i := 1; i < len(ordered); i++ {
		if ordered[i].start < ordered[i-1].end {
			return nil, fmt.Errorf("overlapping edits at %d and %d", ordered[i-1].start, ordered[i].start)
		}
	}

	out := content
	for i := len(ordered) - 1; i >= 0; i-- {
		e := ordered[i]
		if e.start < 0 || e.end < e.start || e.end > len(out) {
			return nil, fmt.Errorf("edit range %d:%d outside content of %d bytes", e.start, e.end, len(out))
		}

		out = replaceRange(out, e.start, e.end, e.text)
	}

	return out, nil
}

func replaceRange(content []byte, start, end int, replacement string) []byte {
	if start < 0 || end < start || end > len(content) {
		return content
	}

	mutated := make([]byte, 0, len(content)-(end-start)+len(replacement))
	mutated = append(mutated, content[:start]...)
	mutated = append(mutated, []byte(replacement)...)
	mutated = append(mutated, content[end:]...)

	return mutated
}

// statementRange widens [start, end) to whole lines when the statement is
// alone on them, so deleting it leaves no blank line behind.
func statementRange(content []byte, start, end int) (int, int) {
	lineStart := lineStartOf(content, start)
	if !isBlank(content[lineStart:start]) {
		return start, end
	}

	lineEnd := end
	for lineEnd < len(content) && content[lineEnd] != '\n' {
		lineEnd++
	}

	if !isBlank(content[end:lineEnd]) {
		return start, end
	}

	if lineEnd < len(content) {
		lineEnd++ // Include the newline
	}

	return lineStart, lineEnd
}

func lineStartOf(content []byte, offset int) int {
	for offset > 0 && content[offset-1] != '\n' {
		offset--
	}

	return offset
}

// indentAt returns the whitespace that opens the line containing offset.
func indentAt(content []byte, offset int) string {
	start := lineStartOf(content, offset)

	end := start
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}

	return string(content[start:end])
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}

	return true
}
