package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/supportchat/internal/render"
	"github.com/diogo/supportchat/internal/tui"
)

// conversationLoadTimeout bounds the header snapshot fetch before the view opens
const conversationLoadTimeout = 10 * time.Second

func newChatCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <conversation-id>",
		Short: "Open a conversation in the interactive chat view",
		Long: `Open a support conversation in the interactive chat view.

The conversation is given by ID or by a reference into the recent list
(see 'supportchat recent').

Keys:
  enter            send the message
  alt+enter        insert a new line (ctrl+j also works)
  pgup/pgdown      scroll the thread
  ctrl+r           refresh the thread
  ctrl+y           copy the latest AI reply
  esc              dismiss a notification, or quit
  ctrl+c           quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.resolveConversation(args[0])
			if err != nil {
				return err
			}
			return c.runChat(cmd, id)
		},
	}
}

func (c *cli) runChat(cmd *cobra.Command, conversationID int64) error {
	if !c.deps.StdinIsTerminal() || !c.deps.StdoutIsTerminal() {
		return fmt.Errorf("chat requires an interactive terminal; use 'supportchat messages' or 'supportchat send' instead")
	}

	client, err := c.newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	spin := newSpinner(cmd.ErrOrStderr(), "Loading conversation", true)
	spin.start()
	loadCtx, cancel := context.WithTimeout(ctx, conversationLoadTimeout)
	conv, err := client.GetConversation(loadCtx, conversationID)
	cancel()
	if err != nil {
		// The header falls back to its defaults
		spin.stopWithError()
		c.logger.Warn("conversation snapshot unavailable",
			zap.Int64("conversation_id", conversationID),
			zap.Error(err))
		conv = nil
	} else {
		spin.stopWithSuccess(fmt.Sprintf("Conversation with %s", conv.DisplayName()))
	}

	c.recordRecent(conversationID, conv)
	c.logger.Info("opening chat view", zap.Int64("conversation_id", conversationID))
	return c.deps.TUI.RunChat(ctx, client, conversationID, conv, c.chatOptions())
}

// chatOptions builds the view options from the resolved configuration
func (c *cli) chatOptions() tui.Options {
	return tui.Options{
		Markdown:  render.OptionsFromConfig(c.cfg),
		Logger:    c.logger,
		Clipboard: c.deps.Clipboard,
	}
}
