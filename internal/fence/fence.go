// Package fence removes markdown code fence markers from model output.
package fence

import "strings"

const marker = "```"

// Strip removes every "```<tag>" opener and then every remaining "```"
// marker. Text between the markers is left in place.
func Strip(code, tag string) string {
	if tag != "" {
		code = strings.ReplaceAll(code, marker+tag, "")
	}
	return strings.ReplaceAll(code, marker, "")
}
