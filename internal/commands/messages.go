package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMessagesCmd(c *cli) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "messages <conversation-id>",
		Aliases: []string{"thread"},
		Short:   "Print the messages of a conversation",
		Long: `Print every message of a conversation once, oldest first, with its
time, sender and the assistant's confidence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.resolveConversation(args[0])
			if err != nil {
				return err
			}

			client, err := c.newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			messages, err := client.ListMessages(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to load messages: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), messages)
			}
			c.newPrinter(cmd.OutOrStdout()).thread(messages)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw message records as JSON")
	return cmd
}
