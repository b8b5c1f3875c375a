package journal

import "strings"

const autoNameLength = 30

// DeriveName turns the first message of a session into its name: the first
// 30 runes, with "..." appended when anything was cut.
func DeriveName(content string) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= autoNameLength {
		return content
	}
	return string(runes[:autoNameLength]) + "..."
}
