package sandbox

import (
	"regexp"
	"strings"
)

// failedLine matches pytest's short summary entries, e.g.
// "FAILED test_program.py::test_divide_by_zero - ZeroDivisionError".
var failedLine = regexp.MustCompile(`(?m)^FAILED.*$`)

// ExtractFailures returns every line of output that starts with FAILED, in
// order, duplicates included. It never returns nil.
func ExtractFailures(output string) []string {
	matches := failedLine.FindAllString(output, -1)
	failed := make([]string, 0, len(matches))
	for _, m := range matches {
		failed = append(failed, strings.TrimRight(m, "\r"))
	}
	return failed
}
