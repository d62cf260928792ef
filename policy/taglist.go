package policy

import "strings"

// ParseTagList splits a required-tag-name list the way CI inputs supply
// it: comma or newline separated, whitespace trimmed, empties dropped.
func ParseTagList(input string) []string {
	var names []string
	for _, field := range strings.FieldsFunc(input, isTagListSeparator) {
		if name := strings.TrimSpace(field); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func isTagListSeparator(r rune) bool {
	return r == ',' || r == '\n'
}
