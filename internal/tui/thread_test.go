package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/supportchat/internal/models"
	"github.com/diogo/supportchat/internal/render"
)

func testRenderer(width int) threadRenderer {
	return threadRenderer{width: width, markdown: render.DefaultOptions().WithStyle(render.StyleNoTTY)}
}

func TestThreadRenderer_Alignment(t *testing.T) {
	r := testRenderer(80)
	ts := time.Date(2024, 3, 10, 15, 4, 0, 0, time.Local)

	customer := r.message(models.Message{Sender: models.SenderCustomer, Content: "Hi", Timestamp: ts})
	first := strings.Split(customer, "\n")[0]
	if !strings.HasPrefix(first, customerAvatar) {
		t.Errorf("customer row should start at the left edge with its avatar, got %q", first)
	}

	ai := r.message(models.Message{Sender: models.SenderAI, Content: "Hello", Timestamp: ts})
	lines := strings.Split(ai, "\n")
	if !strings.HasSuffix(strings.TrimRight(lines[0], " "), aiAvatar) {
		t.Errorf("ai row should end with its avatar, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[0], "    ") {
		t.Errorf("ai row should be right-aligned, got %q", lines[0])
	}
	if lipgloss.Width(ai) != 80 {
		t.Errorf("ai row width = %d, want 80", lipgloss.Width(ai))
	}
}

func TestThreadRenderer_UnknownSenderIsLeftAligned(t *testing.T) {
	r := testRenderer(80)
	out := r.message(models.Message{Sender: "agent", Content: "Escalating"})
	if !strings.HasPrefix(out, customerAvatar) {
		t.Errorf("non-ai senders render on the left, got %q", out)
	}
}

func TestThreadRenderer_Render(t *testing.T) {
	r := testRenderer(80)
	messages := []models.Message{
		{ID: 1, Sender: models.SenderCustomer, Content: "Need help"},
		{ID: 2, Sender: models.SenderAI, Content: "Sure"},
	}

	out := r.render(messages, false, "")
	if strings.Index(out, "Need help") > strings.Index(out, "Sure") {
		t.Error("messages must keep server order")
	}
	if strings.Contains(out, typingText) {
		t.Error("typing bubble shown while typing is off")
	}

	out = r.render(messages, true, "●∙∙")
	if !strings.HasSuffix(strings.TrimRight(out, " \n"), typingText) {
		t.Errorf("typing bubble should be the last item:\n%s", out)
	}
	if !strings.Contains(out, "●∙∙") {
		t.Error("typing bubble should show the dot animation")
	}
}

func TestThreadRenderer_Empty(t *testing.T) {
	r := testRenderer(80)
	if out := r.render(nil, false, ""); !strings.Contains(out, "No messages yet") {
		t.Errorf("expected empty-thread hint, got %q", out)
	}
	if out := r.render(nil, true, "∙∙∙"); !strings.Contains(out, typingText) {
		t.Errorf("typing bubble should show on an empty thread, got %q", out)
	}
}

func TestThreadRenderer_LongMessageWraps(t *testing.T) {
	r := testRenderer(60)
	long := strings.Repeat("word ", 40)

	out := r.message(models.Message{Sender: models.SenderCustomer, Content: long})
	if w := lipgloss.Width(out); w > bubbleMaxWidth(60) {
		t.Errorf("bubble width %d exceeds max %d", w, bubbleMaxWidth(60))
	}
}

func TestBubbleMaxWidth(t *testing.T) {
	tests := []struct{ width, want int }{
		{100, 75},
		{80, 60},
		{24, 20},
		{10, 10},
	}
	for _, tt := range tests {
		if got := bubbleMaxWidth(tt.width); got != tt.want {
			t.Errorf("bubbleMaxWidth(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}
