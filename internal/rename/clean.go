package rename

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harmolab/mixprep/internal/model"
)

// bpmTokenRE matches a stale tempo token like "128 BPM" anywhere in a
// name, so repeated runs never stack tempo tags.
var bpmTokenRE = regexp.MustCompile(`(?i)\b\d+\s*bpm\b`)

// leadingJunkRE strips the leading run of whitespace and hyphens left
// behind when a key or BPM token is purged from the front of a name.
var leadingJunkRE = regexp.MustCompile(`^[\s-]*`)

// invalidCharRE matches the characters that are not portable in file
// names across platforms.
var invalidCharRE = regexp.MustCompile(`[<>:"/\\|?*]`)

// CleanBaseName runs the pure name-cleaning pipeline over a base name
// (no extension): literal removal, ordered substitutions, purge of the
// non-target key notation, purge of stale BPM tokens, then whitespace
// normalization.
//
// otherNotation is the spelling of this track's key in whichever
// notation is not being written (empty when the key has no
// alternative spelling); any whole-word occurrence of it is removed so
// tags from a prior run with different settings don't persist.
func CleanBaseName(base string, policy model.RenamePolicy, otherNotation string) string {
	for _, lit := range policy.RemoveLiterals {
		if lit != "" {
			base = strings.ReplaceAll(base, lit, "")
		}
	}

	for _, pair := range policy.ReplacePairs {
		if pair.Old != "" {
			base = strings.ReplaceAll(base, pair.Old, pair.New)
		}
	}

	if otherNotation != "" {
		base = wholeWordRE(otherNotation).ReplaceAllString(base, "")
	}

	base = bpmTokenRE.ReplaceAllString(base, "")

	base = strings.TrimSpace(base)
	base = leadingJunkRE.ReplaceAllString(base, "")
	base = strings.Join(strings.Fields(base), " ")

	return base
}

// Compose builds the canonical name "<key> - <bpm> BPM - <base>" and
// sanitizes it for the filesystem.
func Compose(displayKey string, bpm int, cleanedBase string) string {
	return SanitizeName(fmt.Sprintf("%s - %d BPM - %s", displayKey, bpm, cleanedBase))
}

// SanitizeName replaces characters that are invalid in file names with
// hyphens and collapses whitespace runs.
func SanitizeName(name string) string {
	name = invalidCharRE.ReplaceAllString(name, "-")
	return strings.TrimSpace(strings.Join(strings.Fields(name), " "))
}

// wholeWordRE compiles a case-insensitive whole-word matcher for the
// given token. Note \b after a non-word character (like the '#' in
// "F#") asserts a word character follows, so "F# Mix" does not match.
func wholeWordRE(token string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(token) + `\b`)
}

// containsWholeWord reports whether name contains token as a
// case-insensitive whole word.
func containsWholeWord(name, token string) bool {
	return wholeWordRE(token).MatchString(name)
}
