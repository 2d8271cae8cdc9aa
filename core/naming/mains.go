// Package naming turns raw capture-point identifiers into the display names
// shared by every report of the same point.
package naming

import (
	"regexp"
	"strings"
)

const (
	mainToken  = "Main"
	mainSuffix = " " + mainToken

	// DefaultAttackMain labels the first main along the push line.
	DefaultAttackMain = "00-Team1 Main"
	// DefaultDefenseMain labels the last main along the push line.
	DefaultDefenseMain = "Z-Team2 Main"
)

var trailingIndex = regexp.MustCompile(`(?:_\d+)+$`)

// Normalize strips trailing "_<digits>" instance suffixes and makes sure
// "Main" is separated from the preceding word by one space. Normalize is
// idempotent.
//
//	Normalize("Logar_Main_2") == "Logar Main"
//	Normalize("TeamOneMain")  == "TeamOne Main"
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	s = trailingIndex.ReplaceAllString(s, "")

	i := strings.Index(s, mainToken)
	if i <= 0 {
		return s
	}
	switch s[i-1] {
	case ' ':
		return s
	case '_':
		return s[:i-1] + " " + s[i:]
	default:
		return s[:i] + " " + s[i:]
	}
}

// DisplayName returns the name a raw node is shown and compared under.
func DisplayName(raw string) string {
	if strings.Contains(raw, mainToken) {
		return Normalize(raw)
	}
	return raw
}

// IsMain reports whether a display name denotes a main base.
func IsMain(display string) bool {
	return strings.HasSuffix(display, mainSuffix)
}

// Canonicalize maps every raw main name to its normalized display name.
func Canonicalize(mains []string) map[string]string {
	out := make(map[string]string, len(mains))
	for _, raw := range mains {
		out[raw] = Normalize(raw)
	}
	return out
}

// TeamAliases labels the first main with attack and, when there is more than
// one, the last main with defense. Blank names are ignored.
func TeamAliases(mains []string, attack, defense string) map[string]string {
	out := make(map[string]string, 2)
	if len(mains) == 0 {
		return out
	}
	if first := mains[0]; strings.TrimSpace(first) != "" {
		out[first] = attack
	}
	if len(mains) > 1 {
		if last := mains[len(mains)-1]; strings.TrimSpace(last) != "" {
			out[last] = defense
		}
	}
	return out
}
