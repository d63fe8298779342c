package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/diogo/supportchat/internal/models"
	"github.com/diogo/supportchat/internal/render"
	"github.com/diogo/supportchat/internal/tui"
)

var (
	customerLabelStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	aiLabelStyle       = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	captionStyle       = lipgloss.NewStyle().Foreground(colorTextDim).Italic(true)
	warningStyle       = lipgloss.NewStyle().Foreground(colorWarning)
	successStyle       = lipgloss.NewStyle().Foreground(colorSuccess)
)

// printer writes messages for the non-interactive commands. Styled output
// renders AI replies as markdown; plain output is one block per message.
type printer struct {
	out      io.Writer
	styled   bool
	markdown render.Options
}

func (c *cli) newPrinter(out io.Writer) printer {
	styled := c.deps.StdoutIsTerminal()
	return printer{
		out:      out,
		styled:   styled,
		markdown: render.OptionsFromConfig(c.cfg).WithWidth(terminalWidth() - 4),
	}
}

// message prints one message with its sender label and caption
func (p printer) message(msg models.Message) {
	label := "Customer"
	labelStyle := customerLabelStyle
	if msg.Sender.IsAI() {
		label = "AI"
		labelStyle = aiLabelStyle
	}

	caption := tui.Caption(msg)
	if !p.styled {
		if caption != "" {
			fmt.Fprintf(p.out, "[%s] %s: %s\n", caption, label, msg.Content)
		} else {
			fmt.Fprintf(p.out, "%s: %s\n", label, msg.Content)
		}
		return
	}

	header := labelStyle.Render(label)
	if caption != "" {
		header += " " + captionStyle.Render(caption)
	}
	fmt.Fprintln(p.out, header)

	body := msg.Content
	if msg.Sender.IsAI() {
		body = render.MessageBody(msg.Content, p.markdown)
	}
	fmt.Fprintln(p.out, indent(body, "  "))
	fmt.Fprintln(p.out)
}

// thread prints every message in order
func (p printer) thread(messages []models.Message) {
	if len(messages) == 0 {
		fmt.Fprintln(p.out, "No messages yet.")
		return
	}
	for _, msg := range messages {
		p.message(msg)
	}
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// terminalWidth returns the terminal width or a default value
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
