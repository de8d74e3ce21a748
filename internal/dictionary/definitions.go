package dictionary

import "strings"

// DefinitionSeparator separates sub-definitions on a definition line.
const DefinitionSeparator = ";  "

// SplitDefinitions splits a definition line into its sub-definitions.
// Empty parts are kept; callers decide whether to show them.
func SplitDefinitions(definition string) []string {
	return strings.Split(definition, DefinitionSeparator)
}

func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if ch := s[i]; ch >= 'A' && ch <= 'Z' {
			return asciiLowerSlow(s)
		}
	}
	return s
}

func asciiLowerSlow(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
		}
	}
	return string(b)
}
