package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/supportchat/internal/models"
	"github.com/diogo/supportchat/internal/render"
)

// Placeholders of the message list
const (
	loadingText     = "Loading conversation..."
	typingText      = "AI is typing..."
	emptyThreadText = "No messages yet. Type below to start the conversation."
)

const (
	customerAvatar = "◉"
	aiAvatar       = "✦"
)

// bubbleMaxWidth is the widest a bubble may grow, borders included
func bubbleMaxWidth(width int) int {
	w := width * 3 / 4
	if w < 20 {
		w = min(width, 20)
	}
	return w
}

// threadRenderer lays out the message list inside the viewport
type threadRenderer struct {
	width    int
	markdown render.Options
}

// render returns the full list. The typing bubble, when shown, is the last
// item so scrolling to the bottom always reveals it.
func (r threadRenderer) render(messages []models.Message, typing bool, dots string) string {
	if len(messages) == 0 && !typing {
		return emptyThreadStyle.Render(emptyThreadText)
	}

	items := make([]string, 0, len(messages)+1)
	for _, msg := range messages {
		items = append(items, r.message(msg))
	}
	if typing {
		items = append(items, r.typing(dots))
	}
	return strings.Join(items, "\n\n")
}

func (r threadRenderer) message(msg models.Message) string {
	if msg.Sender.IsAI() {
		return r.aiRow(r.aiBody(msg.Content), formatCaption(msg))
	}
	return r.customerRow(msg.Content, formatCaption(msg))
}

// bubble sizes a bubble to its content, up to the maximum width
func bubble(style lipgloss.Style, content string, maxWidth int) string {
	frame := style.GetHorizontalFrameSize()
	contentWidth := lipgloss.Width(content)
	if limit := maxWidth - frame; contentWidth > limit {
		contentWidth = max(limit, 1)
	}
	return style.Width(contentWidth + style.GetHorizontalPadding()).Render(content)
}

func (r threadRenderer) customerRow(content, caption string) string {
	maxWidth := bubbleMaxWidth(r.width) - lipgloss.Width(customerAvatar) - 1
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		bubble(customerBubbleStyle, content, maxWidth),
		captionStyle.Render(caption),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, customerAvatarStyle.Render(customerAvatar), body)
}

func (r threadRenderer) aiRow(content, caption string) string {
	maxWidth := bubbleMaxWidth(r.width) - lipgloss.Width(aiAvatar) - 1
	body := lipgloss.JoinVertical(
		lipgloss.Right,
		bubble(aiBubbleStyle, content, maxWidth),
		captionStyle.Render(caption),
	)
	row := lipgloss.JoinHorizontal(lipgloss.Top, body, aiAvatarStyle.Render(aiAvatar))
	return lipgloss.PlaceHorizontal(r.width, lipgloss.Right, row)
}

// aiBody renders an assistant reply as markdown
func (r threadRenderer) aiBody(content string) string {
	wrap := bubbleMaxWidth(r.width) - lipgloss.Width(aiAvatar) - 1 - aiBubbleStyle.GetHorizontalFrameSize()
	if wrap < 10 {
		return content
	}
	return trimLines(render.MessageBody(content, r.markdown.WithWidth(wrap)))
}

func (r threadRenderer) typing(dots string) string {
	return r.aiRow(typingDotsStyle.Render(dots), typingText)
}
