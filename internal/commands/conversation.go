package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConversationCmd(c *cli) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "conversation <conversation-id>",
		Short: "Show the customer and status of a conversation",
		Args:  cobra.ExactArgs(1),
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

			conv, err := client.GetConversation(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to load conversation: %w", err)
			}

			c.recordRecent(id, conv)

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, conv)
			}

			fmt.Fprintf(out, "Conversation: %d\n", id)
			fmt.Fprintf(out, "Customer:     %s\n", conv.DisplayName())
			fmt.Fprintf(out, "Contact:      %s\n", conv.Contact())
			fmt.Fprintf(out, "Status:       %s\n", conv.StatusLabel())
			if conv != nil && !conv.CreatedAt.IsZero() {
				fmt.Fprintf(out, "Created:      %s\n", conv.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw conversation record as JSON")
	return cmd
}
