// Package pronounce applies word-level pronunciation substitution to
// narration text before it reaches the speech engine. The mapping file
// is line oriented, one "word=pronunciation" entry per line, e.g.:
//
//	FDAT=effdutt
package pronounce

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type entry struct {
	word          string
	pronunciation string
	pattern       *regexp.Regexp
}

// Mapping is an ordered pronunciation mapping. Entries apply in file
// order; a later entry sees text already rewritten by earlier ones.
type Mapping struct {
	entries []entry
}

// Load reads a mapping file. Blank lines are skipped; any other line
// without exactly one '=' separator is a format error.
func Load(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pronunciation mapping: %w", err)
	}
	defer f.Close()

	m := &Mapping{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			return nil, fmt.Errorf("pronunciation mapping line %d: expected word=pronunciation, got %q", lineNo, line)
		}

		word := strings.ToLower(strings.TrimSpace(parts[0]))
		pron := strings.ToLower(strings.TrimSpace(parts[1]))
		if word == "" {
			return nil, fmt.Errorf("pronunciation mapping line %d: empty word", lineNo)
		}

		pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(word))
		if err != nil {
			return nil, fmt.Errorf("pronunciation mapping line %d: %w", lineNo, err)
		}

		m.entries = append(m.entries, entry{word: word, pronunciation: pron, pattern: pattern})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pronunciation mapping: %w", err)
	}

	return m, nil
}

// Apply replaces whole-word, case-insensitive occurrences of each
// mapped word with its pronunciation.
func (m *Mapping) Apply(text string) string {
	if m == nil {
		return text
	}
	for _, e := range m.entries {
		text = e.replaceWholeWords(text)
	}
	return text
}

// replaceWholeWords substitutes each match that stands alone as a word.
// RE2's \b is ASCII-only, so the boundary check is done on the runes
// around each candidate match instead: a match counts only when neither
// neighbour is a letter, digit or underscore. This keeps mapped words
// with non-ASCII letters matching, and stops an ASCII word from
// matching inside a longer word that continues with a non-ASCII letter.
func (e entry) replaceWholeWords(text string) string {
	matches := e.pattern.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, match := range matches {
		start, end := match[0], match[1]
		if !boundaryBefore(text, start) || !boundaryAfter(text, end) {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(e.pronunciation)
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i == len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Len reports the number of loaded entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}
