package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short stays intact", in: "I want to run more", want: "I want to run more"},
		{name: "long ascii cut to limit", in: strings.Repeat("a", 80), want: strings.Repeat("a", 60)},
		{name: "multibyte cut on rune boundary", in: strings.Repeat("日", 80), want: strings.Repeat("日", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateTitle(tt.in, 60)
			if got != tt.want {
				t.Errorf("truncateTitle = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Error("truncated title is not valid UTF-8")
			}
		})
	}
}
