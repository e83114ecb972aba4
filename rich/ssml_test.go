// SPDX-License-Identifier: MIT

package rich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSSML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain text", "hello world", false},
		{"empty", "", false},
		{"bare speak", "<speak>hello</speak>", true},
		{"speak with attribute", `<speak version="1.0">hello</speak>`, true},
		{"uppercase tags", "<SPEAK>hello</SPEAK>", true},
		{"surrounding whitespace", "  <speak>hello</speak>\n", true},
		{"prefix only", "<speak>hello", false},
		{"suffix only", "hello</speak>", false},
		{"speak not first", "say <speak>hello</speak>", false},
		{"speakx tag", "<speakx>hello</speakx>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSSML(tt.in))
		})
	}
}
