package text

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// WrapPolicy selects how long lines are reflowed.
type WrapPolicy int

const (
	WrapHard WrapPolicy = iota // Break at any codepoint boundary
	WrapWord                   // Greedy word packing, indentation kept
	WrapOff                    // No reflow, overflow policy only
)

// OverflowPolicy selects how an over-long unwrapped line is shortened.
type OverflowPolicy int

const (
	OverflowClip     OverflowPolicy = iota // Truncate by display width
	OverflowEllipsis                       // Truncate and append "..."
)

const ellipsis = "..."

var paragraphSep = regexp.MustCompile(`\n[\s\p{Zs}]*\n`)

// String returns the policy token.
func (p WrapPolicy) String() string {
	switch p {
	case WrapWord:
		return "word"
	case WrapOff:
		return "off"
	default:
		return "hard"
	}
}

// String returns the policy token.
func (p OverflowPolicy) String() string {
	if p == OverflowEllipsis {
		return "ellipsis"
	}
	return "clip"
}

// ParseWrap converts a wrap token. Empty selects hard wrapping.
func ParseWrap(s string) (WrapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hard":
		return WrapHard, nil
	case "word":
		return WrapWord, nil
	case "off":
		return WrapOff, nil
	}
	return WrapHard, fmt.Errorf("invalid wrap policy %q (want off, hard or word)", s)
}

// ParseOverflow converts an overflow token. Empty selects clipping.
func ParseOverflow(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clip":
		return OverflowClip, nil
	case "ellipsis":
		return OverflowEllipsis, nil
	}
	return OverflowClip, fmt.Errorf("invalid overflow policy %q (want clip or ellipsis)", s)
}

// Normalize converts CRLF and CR to LF, composes to NFC, and expands tabs to
// the given number of spaces. A tab width of zero or less strips tabs.
func Normalize(s string, tabs int) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = norm.NFC.String(s)
	if tabs <= 0 {
		return strings.ReplaceAll(s, "\t", "")
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabs))
}

// Wrap reflows s to width display cells. Paragraphs separated by blank
// lines are wrapped independently and rejoined with a single blank line.
func Wrap(s string, width int, wrap WrapPolicy, overflow OverflowPolicy) string {
	if wrap == WrapOff {
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			lines[i] = ApplyOverflow(line, width, overflow)
		}
		return strings.Join(lines, "\n")
	}

	paragraphs := paragraphSep.Split(s, -1)
	for i, paragraph := range paragraphs {
		var wrapped []string
		for _, line := range strings.Split(paragraph, "\n") {
			if wrap == WrapWord {
				wrapped = append(wrapped, wordWrapLine(line, width)...)
			} else {
				wrapped = append(wrapped, hardWrapLine(line, width)...)
			}
		}
		paragraphs[i] = strings.Join(wrapped, "\n")
	}
	return strings.Join(paragraphs, "\n\n")
}

// hardWrapLine emits chunks of at most width cells, never fewer than one
// rune per chunk.
func hardWrapLine(line string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	var chunks []string
	var current strings.Builder
	used := 0
	for _, r := range line {
		w := RuneWidth(r)
		if used+w > width && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			used = 0
		}
		current.WriteRune(r)
		used += w
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	if len(chunks) == 0 {
		return []string{""}
	}
	return chunks
}

// wordWrapLine packs words greedily and repeats the line's leading
// whitespace on every wrapped line.
func wordWrapLine(line string, width int) []string {
	prefix := line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
	words := strings.Fields(line[len(prefix):])
	if len(words) == 0 {
		return []string{prefix}
	}
	available := max(1, width-DisplayWidth(prefix))

	var lines []string
	current := words[0]
	used := DisplayWidth(current)
	for _, word := range words[1:] {
		w := DisplayWidth(word)
		if used+1+w <= available {
			current += " " + word
			used += 1 + w
			continue
		}
		lines = append(lines, prefix+current)
		current, used = word, w
	}
	lines = append(lines, prefix+current)
	return lines
}

// ApplyOverflow shortens line to width cells. Lines that already fit are
// returned unchanged.
func ApplyOverflow(line string, width int, policy OverflowPolicy) string {
	if DisplayWidth(line) <= width {
		return line
	}
	if policy == OverflowEllipsis && width > len(ellipsis) {
		return TrimToWidth(line, width-len(ellipsis)) + ellipsis
	}
	return TrimToWidth(line, width)
}

// TrimToWidth returns the longest prefix of line whose display width does
// not exceed width.
func TrimToWidth(line string, width int) string {
	if width <= 0 {
		return ""
	}
	used := 0
	for i, r := range line {
		w := RuneWidth(r)
		if used+w > width {
			return line[:i]
		}
		used += w
	}
	return line
}
