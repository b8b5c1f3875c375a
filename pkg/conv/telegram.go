package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// TelegramMaxLen leaves a safety margin below Telegram's 4096 limit.
const TelegramMaxLen = 4000

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags
	tgPolicy   = newTelegramPolicy()
)

// newTelegramPolicy allows only https://core.telegram.org/bots/api#html-style tags.
func newTelegramPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("code")
	return p
}

func MarkdownToTelegramHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	return string(tgPolicy.SanitizeBytes(markdown.Render(p.Parse(md), renderer)))
}

// ReplyToTelegram renders a markdown reply into sanitized Telegram HTML
// chunks ready to send. Blank replies yield no chunks.
func ReplyToTelegram(md string) []string {
	out := strings.TrimSpace(MarkdownToTelegramHTML([]byte(md)))
	if out == "" {
		return nil
	}
	return SplitMessage(out, TelegramMaxLen)
}

// SplitMessage cuts text into chunks no longer than maxLen, preferring a
// newline in the last two thirds of each chunk.
func SplitMessage(text string, maxLen int) []string {
	if maxLen <= 0 || len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
