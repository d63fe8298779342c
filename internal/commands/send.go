package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/supportchat/internal/api"
	"github.com/diogo/supportchat/internal/models"
)

type sendOptions struct {
	file       string
	wait       bool
	copyReply  bool
	jsonOutput bool
}

func newSendCmd(c *cli) *cobra.Command {
	var opts sendOptions

	cmd := &cobra.Command{
		Use:   "send <conversation-id> [text]",
		Short: "Send a customer message",
		Long: `Send one customer message to a conversation.

The text is read from the argument, from --file, or from stdin when it is
not a terminal. With --wait the command waits for the assistant's typing
window and prints the replies that arrived.

Examples:
  supportchat send 42 "Need help with my order"
  supportchat send 42 -f message.md
  echo "Need help" | supportchat send 42 --wait`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.resolveConversation(args[0])
			if err != nil {
				return err
			}
			text, err := c.readMessageText(cmd, args[1:], opts.file)
			if err != nil {
				return err
			}
			return c.runSend(cmd, id, text, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the message from a file")
	cmd.Flags().BoolVarP(&opts.wait, "wait", "w", false, "Wait for the assistant and print its replies")
	cmd.Flags().BoolVar(&opts.copyReply, "copy", false, "Copy the latest assistant reply to the clipboard (implies --wait)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the created message record as JSON")
	return cmd
}

// readMessageText picks the message text from --file, the argument or stdin
func (c *cli) readMessageText(cmd *cobra.Command, args []string, file string) (string, error) {
	var text string
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		text = string(data)
	case len(args) > 0:
		text = args[0]
	case !c.deps.StdinIsTerminal():
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("message cannot be empty")
	}
	return text, nil
}

func (c *cli) runSend(cmd *cobra.Command, conversationID int64, text string, opts sendOptions) error {
	client, err := c.newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	interactive := c.deps.StdoutIsTerminal() && !opts.jsonOutput

	spin := newSpinner(cmd.ErrOrStderr(), "Sending message", interactive)
	spin.start()
	sent, err := client.SendMessage(ctx, conversationID, text)
	if err != nil {
		spin.stopWithError()
		c.logger.Warn("send failed", zap.Int64("conversation_id", conversationID), zap.Error(err))
		return fmt.Errorf("%s: %w", models.SendErrorDescription, err)
	}
	spin.stopWithSuccess("Sent")
	c.logger.Info("message sent",
		zap.Int64("conversation_id", conversationID),
		zap.Int64("message_id", sent.ID))

	if opts.jsonOutput {
		if err := writeJSON(cmd.OutOrStdout(), sent); err != nil {
			return err
		}
	} else if !interactive {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", sent.ID)
	}

	copyReply := opts.copyReply || c.cfg.CopyToClipboard
	if !opts.wait && !copyReply {
		return nil
	}

	replies, err := c.waitForReplies(ctx, client, conversationID, sent, interactive, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if !opts.jsonOutput {
		p := c.newPrinter(cmd.OutOrStdout())
		for _, reply := range replies {
			p.message(reply)
		}
	}

	if copyReply {
		c.copyLatestReply(cmd.ErrOrStderr(), replies)
	}
	return nil
}

// waitForReplies waits out the typing window, then returns the assistant
// messages that follow the sent one.
func (c *cli) waitForReplies(ctx context.Context, client api.SupportClientInterface, conversationID int64, sent *models.Message, animate bool, status io.Writer) ([]models.Message, error) {
	spin := newSpinner(status, "AI is typing", animate)
	spin.start()

	select {
	case <-ctx.Done():
		spin.stopWithError()
		return nil, ctx.Err()
	case <-time.After(c.deps.ReplyWait):
	}

	messages, err := client.ListMessages(ctx, conversationID)
	if err != nil {
		spin.stopWithError()
		return nil, fmt.Errorf("failed to load replies: %w", err)
	}

	replies := repliesAfter(messages, sent.ID)
	if len(replies) == 0 {
		spin.stopWithSuccess("No reply yet")
	} else {
		spin.stopWithSuccess(fmt.Sprintf("%d %s", len(replies), pluralize(len(replies), "reply", "replies")))
	}
	return replies, nil
}

// repliesAfter returns the AI messages listed after the message with sentID.
// When sentID is not in the list every AI message is returned.
func repliesAfter(messages []models.Message, sentID int64) []models.Message {
	start := 0
	for i, msg := range messages {
		if msg.ID == sentID {
			start = i + 1
			break
		}
	}

	var replies []models.Message
	for _, msg := range messages[start:] {
		if msg.Sender.IsAI() {
			replies = append(replies, msg)
		}
	}
	return replies
}

func (c *cli) copyLatestReply(status io.Writer, replies []models.Message) {
	if len(replies) == 0 {
		return
	}
	latest := replies[len(replies)-1]
	if err := c.deps.Clipboard(latest.Content); err != nil {
		fmt.Fprintln(status, warningStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		return
	}
	fmt.Fprintln(status, successStyle.Render("✓ Copied to clipboard"))
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
