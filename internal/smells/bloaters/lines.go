package bloaters

import "strings"

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// EffectiveLineCount counts the lines of a method body that contain at least
// one non-whitespace character. Blank and whitespace-only lines, including
// leading and trailing extraction artifacts, are not counted.
func EffectiveLineCount(body string) int {
	if body == "" {
		return 0
	}

	count := 0
	for _, line := range strings.Split(lineBreaks.Replace(body), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
