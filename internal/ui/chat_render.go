package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/attt/sohbet/internal/chat"
)

const (
	botMarker   = "◆"
	userLabel   = "Siz"
	botLabel    = "Asistan"
	favMarker   = "★"
	regenMarker = "↻"
)

// Inline formatting patterns for bot prose
var (
	inlineCodePattern = regexp.MustCompile("`([^`\n]+)`")
	boldPattern       = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
)

var (
	inlineCodeStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	boldStyle       = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// renderInline applies inline code and bold formatting to a prose line.
func renderInline(line string) string {
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(m string) string {
		return inlineCodeStyle.Render(inlineCodePattern.FindStringSubmatch(m)[1])
	})
	return boldPattern.ReplaceAllStringFunc(line, func(m string) string {
		return boldStyle.Render(boldPattern.FindStringSubmatch(m)[1])
	})
}

// renderBody renders message content: prose wrapped to width, fenced code
// highlighted and hard-wrapped so long lines never overflow the bubble.
func renderBody(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var parts []string
	for _, seg := range chat.Segments(strings.TrimSpace(content)) {
		if seg.Code {
			code := strings.TrimRight(seg.Text, "\n")
			label := ""
			if seg.Language != "" {
				label = ChatTimestampStyle.Render(seg.Language) + "\n"
			}
			parts = append(parts, label+ansi.Hardwrap(highlightCode(code, seg.Language), width, true))
			continue
		}
		text := strings.Trim(seg.Text, "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		parts = append(parts, ansi.Wrap(renderInline(text), width, ""))
	}
	return strings.Join(parts, "\n")
}

// renderLinkPreview renders the preview box for a link message.
func renderLinkPreview(p *chat.LinkPreview, width int) string {
	if p == nil {
		return ""
	}
	w := min(width, LinkPreviewMaxWidth) - 2

	var lines []string
	if p.Title != "" {
		lines = append(lines, ChatLinkTitleStyle.Render(ansi.Truncate(p.Title, w, "…")))
	}
	if p.Domain != "" {
		lines = append(lines, ChatTimestampStyle.Render("🔗 "+ansi.Truncate(p.Domain, w-3, "…")))
	}
	if p.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(ColorTextMuted).Render(ansi.Wrap(p.Description, w, "")))
	}
	return ChatLinkBoxStyle.Render(strings.Join(lines, "\n"))
}

// renderReactions renders the reactions line, e.g. "👍 2  ❤️ 1".
func renderReactions(reactions []chat.MessageReaction) string {
	var parts []string
	for _, r := range reactions {
		if r.Count <= 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d", r.Emoji, r.Count))
	}
	if len(parts) == 0 {
		return ""
	}
	return ChatReactionStyle.Render(strings.Join(parts, "  "))
}

// renderMessageHeader renders the sender, time and markers above a bubble.
func renderMessageHeader(m chat.Message) string {
	var sb strings.Builder
	if m.IsUser() {
		sb.WriteString(ChatUserStyle.Render(userLabel))
	} else {
		sb.WriteString(ChatBotStyle.Render(botMarker + " " + botLabel))
	}
	if !m.Timestamp.IsZero() {
		sb.WriteString(ChatTimestampStyle.Render(" · " + m.Timestamp.Local().Format("15:04")))
	}
	if m.IsRegenerated {
		sb.WriteString(" " + ChatMarkerStyle.Render(regenMarker))
	}
	if m.IsFavorite {
		sb.WriteString(" " + SidebarFavoriteStyle.Render(favMarker))
	}
	return sb.String()
}

// renderMessage renders one message row for a chat of the given width.
// User rows are right-aligned, bot rows left-aligned.
func renderMessage(m chat.Message, width int, selected bool) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	bubbleMax := max(width*BubbleWidthPercent/100, 12)
	// Border and padding take two columns on each side
	inner := bubbleMax - 4

	body := renderBody(m.Content, inner)
	switch m.Kind() {
	case chat.TypeLink:
		if box := renderLinkPreview(firstPreview(m), inner); box != "" {
			body += "\n" + box
		}
	case chat.TypeImage:
		if p := firstPreview(m); p != nil {
			body += "\n" + ChatTimestampStyle.Render("🖼  "+ansi.Truncate(p.URL, inner-3, "…"))
		}
	}

	bubble := ChatBotBubbleStyle
	if m.IsUser() {
		bubble = ChatUserBubbleStyle
	}
	if selected {
		bubble = ChatSelectedBubbleStyle
	}

	rows := []string{renderMessageHeader(m), bubble.Render(body)}
	if r := renderReactions(m.Reactions); r != "" {
		rows = append(rows, r)
	}

	align := lipgloss.Left
	if m.IsUser() {
		align = lipgloss.Right
	}
	block := lipgloss.JoinVertical(align, rows...)
	return lipgloss.PlaceHorizontal(width, align, block)
}

// firstPreview returns the metadata preview or one derived from the content.
func firstPreview(m chat.Message) *chat.LinkPreview {
	if m.Metadata != nil && m.Metadata.LinkPreview != nil {
		return m.Metadata.LinkPreview
	}
	_, meta := chat.DetectType(m.Content)
	if meta != nil {
		return meta.LinkPreview
	}
	return nil
}

// renderEmptyState renders the greeting shown before the first message.
func renderEmptyState(width int) string {
	greeting := lipgloss.NewStyle().Bold(true).Foreground(ColorText).Render("Merhaba! 👋")
	intro := lipgloss.NewStyle().Foreground(ColorTextMuted).Render("Ben AI asistanınızım. Size nasıl yardımcı olabilirim?")

	chips := lipgloss.JoinHorizontal(lipgloss.Top,
		ChatChipStyle.Render("💡 Soru sorabilirsiniz"), " ",
		ChatChipStyle.Render("🚀 Yardım alabilirsiniz"), " ",
		ChatChipStyle.Render("💬 Sohbet edebiliriz"),
	)
	if lipgloss.Width(chips) > width {
		chips = lipgloss.JoinVertical(lipgloss.Center,
			ChatChipStyle.Render("💡 Soru sorabilirsiniz"),
			ChatChipStyle.Render("🚀 Yardım alabilirsiniz"),
			ChatChipStyle.Render("💬 Sohbet edebiliriz"),
		)
	}

	block := lipgloss.JoinVertical(lipgloss.Center, ChatBotStyle.Render(botMarker), "", greeting, intro, "", chips)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// renderErrorBanner renders the inline error shown under the messages.
func renderErrorBanner(text string, width int) string {
	w := min(max(width-4, 10), LinkPreviewMaxWidth)
	banner := ChatErrorBannerStyle.Render(ansi.Wrap("⚠ "+text, w, ""))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, banner)
}
