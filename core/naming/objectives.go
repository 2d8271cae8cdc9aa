package naming

import (
	"strings"
	"unicode"
)

// ObjectiveDisplayName spaces out camel case in an objective name, leaving
// any prefix up to the first dash untouched.
//
//	ObjectiveDisplayName("02-CentralVillage") == "02-Central Village"
func ObjectiveDisplayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return name
	}
	dash := strings.IndexByte(name, '-')
	if dash < 0 {
		return spaceCamelCase(name)
	}
	return name[:dash+1] + spaceCamelCase(name[dash+1:])
}

func spaceCamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
