// SPDX-License-Identifier: MIT

package rich

import "strings"

// IsSSML reports whether text is an SSML document. One rule everywhere:
// surrounding whitespace is trimmed first, then the text must begin with the
// <speak> open tag (attributes allowed) and end with the </speak> close tag,
// compared case-insensitively. The result decides whether the serializer
// writes the ssml or the text-to-speech wire field.
func IsSSML(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if !strings.HasSuffix(t, "</speak>") {
		return false
	}
	return strings.HasPrefix(t, "<speak>") || strings.HasPrefix(t, "<speak ")
}
