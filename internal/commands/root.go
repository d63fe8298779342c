// Package commands provides CLI commands for supportchat.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/supportchat/internal/api"
	"github.com/diogo/supportchat/internal/browser"
	"github.com/diogo/supportchat/internal/config"
	"github.com/diogo/supportchat/internal/history"
	"github.com/diogo/supportchat/internal/logging"
	"github.com/diogo/supportchat/internal/models"
	"github.com/diogo/supportchat/internal/render"
	"github.com/diogo/supportchat/internal/tui"
)

// BuildTime is set at build time
var BuildTime = "unknown"

// cli carries global flag values and the state resolved before a
// subcommand runs.
type cli struct {
	deps *Dependencies

	// Global flags
	apiURLFlag         string
	verboseFlag        bool
	browserRefreshFlag string

	cfg    config.Config
	logger *zap.Logger
}

// NewRootCmd creates the supportchat command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	c := &cli{deps: deps.withDefaults(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "supportchat",
		Short: "Terminal client for the customer support chat",
		Long: `supportchat is a terminal client for a customer support chat server.
It shows a conversation with its AI assistant replies, lets you send
customer messages and follows the assistant while it types.

Examples:
  supportchat chat 42                   Open conversation 42
  supportchat chat @last                Reopen the last conversation
  supportchat messages 42               Print the thread once
  supportchat send 42 "Need help"       Send a customer message
  echo "Need help" | supportchat send 42
  supportchat login --browser chrome    Import the dashboard session cookie
  supportchat config set api_base_url https://support.example.com`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "supportchat %s (built %s)\n", models.Version, BuildTime)
				return nil
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&c.apiURLFlag, "api-url", "",
		"Support API base URL (overrides config and "+config.EnvAPIURL+")")
	root.PersistentFlags().BoolVar(&c.verboseFlag, "verbose", false,
		"Write debug logs to the log file")
	root.PersistentFlags().StringVar(&c.browserRefreshFlag, "browser-refresh", "",
		"Re-import the session cookie from a browser on auth failure (auto, chrome, firefox, edge, chromium, opera)")
	root.Flags().BoolP("version", "v", false, "Show version and exit")

	root.AddCommand(
		newChatCmd(c),
		newMessagesCmd(c),
		newSendCmd(c),
		newConversationCmd(c),
		newConfigCmd(c),
		newLoginCmd(c),
		newRecentCmd(c),
	)

	return root
}

// rootCmd is the command run by Execute
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		tui.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides and builds the
// logger and theme shared by all subcommands.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
	}
	if c.apiURLFlag != "" {
		cfg.APIBaseURL = c.apiURLFlag
	}
	if c.verboseFlag {
		cfg.Verbose = true
	}
	c.cfg = cfg

	logger, err := logging.New(logging.OptionsFromConfig(cfg))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	c.logger = logger.With(zap.String("command", cmd.Name()))

	if cfg.TUITheme != "" && !render.SetTheme(cfg.TUITheme) {
		c.logger.Warn("unknown theme, keeping default", zap.String("theme", cfg.TUITheme))
	}
	tui.UpdateTheme()
	return nil
}

// browserRefresh returns the browser for auto-refresh, or empty if disabled
func (c *cli) browserRefresh(cmd *cobra.Command) browser.SupportedBrowser {
	if c.browserRefreshFlag == "" {
		return ""
	}

	browserType, err := browser.ParseBrowser(c.browserRefreshFlag)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: invalid browser-refresh value '%s', disabling browser refresh\n", c.browserRefreshFlag)
		return ""
	}
	return browserType
}

// newClient builds the API client from the resolved configuration
func (c *cli) newClient(cmd *cobra.Command) (api.SupportClientInterface, error) {
	return c.deps.NewClient(c.cfg, c.logger, c.browserRefresh(cmd))
}

// resolveConversation turns a conversation argument into an ID. Besides
// plain IDs it accepts references into the recent list such as @last.
func (c *cli) resolveConversation(arg string) (int64, error) {
	arg = strings.TrimSpace(arg)
	if _, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return parseConversationID(arg)
	}

	store, err := history.DefaultStore()
	if err != nil {
		return 0, err
	}
	id, err := history.NewResolver(store).Resolve(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid conversation ID %q: %w", arg, err)
	}
	return id, nil
}

// recordRecent adds a conversation to the recent list
func (c *cli) recordRecent(conversationID int64, conv *models.Conversation) {
	store, err := history.DefaultStore()
	if err == nil {
		err = store.Record(conversationID, conv)
	}
	if err != nil {
		c.logger.Warn("failed to update recent conversations", zap.Error(err))
	}
}

// parseConversationID validates a conversation ID argument
func parseConversationID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid conversation ID %q: must be a positive integer", arg)
	}
	return id, nil
}

// truncateValue shortens secrets for display
func truncateValue(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
