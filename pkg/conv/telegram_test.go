package conv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain reply", input: "You told me your favorite color is blue.", want: "You told me your favorite color is blue.\n"},
		{name: "emphasis", input: "**blue** and *calm*", want: "<strong>blue</strong> and <em>calm</em>\n"},
		{name: "strikethrough", input: "~~green~~", want: "<del>green</del>\n"},
		{name: "inline code", input: "run `journal chat`", want: "run <code>journal chat</code>\n"},
		{name: "fenced code keeps language", input: "```sh\njournal serve\n```", want: "<pre><code class=\"language-sh\">journal serve\n</code></pre>\n"},
		{name: "quote", input: "> PAST MEMORIES", want: "<blockquote>\nPAST MEMORIES\n</blockquote>\n"},
		{name: "headers flattened", input: "## Summary", want: "Summary\n"},
		{name: "list markup dropped", input: "- milk\n- eggs", want: "\nmilk\neggs\n\n"},
		{name: "scripts removed", input: "<script>alert('x')</script>", want: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkdownToTelegramHTML([]byte(tt.input)))
		})
	}
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   []string
	}{
		{name: "short text untouched", input: "hello", maxLen: 10, want: []string{"hello"}},
		{name: "splits on newline", input: "first line\nsecond line", maxLen: 15, want: []string{"first line", "second line"}},
		{name: "hard cut without newline", input: "abcdefghij", maxLen: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "no limit", input: "abc", maxLen: 0, want: []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitMessage(tt.input, tt.maxLen))
		})
	}
}

func TestReplyToTelegram(t *testing.T) {
	assert.Nil(t, ReplyToTelegram("   "))

	chunks := ReplyToTelegram("Your favorite color is **blue**.")
	assert.Equal(t, []string{"Your favorite color is <strong>blue</strong>."}, chunks)

	long := strings.Repeat("word ", 2000)
	for _, c := range ReplyToTelegram(long) {
		assert.LessOrEqual(t, len(c), TelegramMaxLen)
	}
}
