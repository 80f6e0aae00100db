package transcript

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// contraction suffixes that attach to the preceding word via an apostrophe
var contractionSuffixes = map[string]struct{}{
	"re": {}, "ll": {}, "ve": {}, "s": {}, "t": {}, "d": {}, "m": {},
}

// GroupPunctuation merges standalone punctuation tokens into the
// preceding word (without a space) and rejoins contractions split across
// an apostrophe ("you" "'" "re" becomes "you're"). Timestamps of merged
// tokens extend the host word's end time. Runs after Normalize, before
// segmentation.
func GroupPunctuation(words []Word) []Word {
	if len(words) == 0 {
		return nil
	}

	grouped := make([]Word, 0, len(words))
	var current *Word

	flush := func() {
		if current != nil {
			grouped = append(grouped, *current)
			current = nil
		}
	}

	for i := 0; i < len(words); i++ {
		w := words[i]

		if !isPunctuation(w.Text) {
			flush()
			cw := w
			current = &cw
			continue
		}

		// apostrophe followed by a contraction suffix: glue both onto
		// the current word as a single token
		if isApostrophe(w.Text) && current != nil && i+1 < len(words) {
			next := words[i+1]
			if _, ok := contractionSuffixes[strings.ToLower(next.Text)]; ok {
				current.Text += w.Text + next.Text
				current.End = next.End
				i++
				continue
			}
		}

		if current != nil {
			current.Text += w.Text
			current.End = w.End
			continue
		}

		// standalone punctuation with nothing to attach to
		grouped = append(grouped, w)
	}

	flush()
	return grouped
}

// single rune that is neither a word character nor whitespace
func isPunctuation(text string) bool {
	if utf8.RuneCountInString(text) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text)
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) &&
		!unicode.IsSpace(r) && r != '_'
}

func isApostrophe(text string) bool {
	return text == "'" || text == "’"
}
