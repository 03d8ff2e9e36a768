// Package srcline is the "external collaborator" spec.md §1 describes as
// out of the assembler's core: a trivial buffered line reader. Its only
// contract to the core is to supply successive 0-indexed source lines,
// each at most 80 characters plus a newline, together with their 1-based
// line number.
//
// Grounded on the teacher's parser.ParseFile (parser/file.go), which reads
// the whole file up front with os.ReadFile rather than streaming — the
// same choice is made here since spec.md requires two independent full
// traversals of the same source (first pass, then second pass).
package srcline

import "strings"

// MaxLineLength is the maximum number of characters a source line may
// contain, excluding its line terminator (spec.md §4.4 step 1).
const MaxLineLength = 80

// Line is one physical source line, 1-indexed for diagnostics as spec.md
// §3's transient Line type requires.
type Line struct {
	Number  int64
	Content string
	TooLong bool
}

// Split breaks source into Lines, using MaxLineLength as the maximum line
// length. A line longer than that is still returned (with TooLong set and
// Content truncated) so the core can report LineTooLong against the
// correct line number and move on to the next line, per spec.md §4.4
// step 1 ("skip to next newline in the input stream").
func Split(source string) []Line {
	return SplitN(source, MaxLineLength)
}

// SplitN is Split with a caller-supplied maximum line length, letting
// config.Config.Assembly.MaxLineLength override the spec.md default.
func SplitN(source string, maxLineLength int) []Line {
	raw := strings.Split(source, "\n")
	// A trailing newline produces one extra empty element; drop it so a
	// well-formed file doesn't report a phantom final blank line beyond
	// what the source actually contains.
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([]Line, 0, len(raw))
	for i, content := range raw {
		content = strings.TrimSuffix(content, "\r")
		l := Line{Number: int64(i) + 1, Content: content}
		if len(content) > maxLineLength {
			l.TooLong = true
			l.Content = content[:maxLineLength]
		}
		lines = append(lines, l)
	}
	return lines
}
