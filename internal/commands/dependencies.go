package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/supportchat/internal/api"
	"github.com/diogo/supportchat/internal/browser"
	"github.com/diogo/supportchat/internal/config"
	"github.com/diogo/supportchat/internal/models"
	"github.com/diogo/supportchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, client api.SupportClientInterface, conversationID int64, conv *models.Conversation, opts tui.Options) error
}

// ClientFactory builds the API client for the resolved configuration.
// browserRefresh is empty when --browser-refresh is not set.
type ClientFactory func(cfg config.Config, logger *zap.Logger, browserRefresh browser.SupportedBrowser) (api.SupportClientInterface, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient creates the support API client.
	NewClient ClientFactory

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Extractor reads session cookies from local browsers.
	Extractor browser.CookieExtractor

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	// StdinIsTerminal and StdoutIsTerminal report whether the process is
	// attached to an interactive terminal.
	StdinIsTerminal  func() bool
	StdoutIsTerminal func() bool

	// ReplyWait is how long `send --wait` waits before looking for replies.
	ReplyWait time.Duration
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, client api.SupportClientInterface, conversationID int64, conv *models.Conversation, opts tui.Options) error {
	return tui.RunChat(ctx, client, conversationID, conv, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: newSupportClient,
		TUI:       &DefaultTUI{},
		Extractor: browser.DefaultExtractor{},
		Clipboard: clipboard.WriteAll,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		StdoutIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
		ReplyWait: models.TypingWindow,
	}
}

// withDefaults fills the fields a caller left empty
func (d *Dependencies) withDefaults() *Dependencies {
	defaults := NewDependencies()
	if d == nil {
		return defaults
	}
	out := *d
	if out.NewClient == nil {
		out.NewClient = defaults.NewClient
	}
	if out.TUI == nil {
		out.TUI = defaults.TUI
	}
	if out.Extractor == nil {
		out.Extractor = defaults.Extractor
	}
	if out.Clipboard == nil {
		out.Clipboard = defaults.Clipboard
	}
	if out.StdinIsTerminal == nil {
		out.StdinIsTerminal = defaults.StdinIsTerminal
	}
	if out.StdoutIsTerminal == nil {
		out.StdoutIsTerminal = defaults.StdoutIsTerminal
	}
	return &out
}

// newSupportClient is the production ClientFactory
func newSupportClient(cfg config.Config, logger *zap.Logger, browserRefresh browser.SupportedBrowser) (api.SupportClientInterface, error) {
	session, err := config.LoadSession()
	if err != nil {
		logger.Warn("ignoring saved session", zap.Error(err))
		session = config.NewSession(nil)
	}

	opts := []api.ClientOption{
		api.WithSession(session),
		api.WithSessionCookieName(cfg.SessionCookieName),
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second),
		api.WithProxy(cfg.Proxy),
		api.WithLogger(logger),
	}
	if browserRefresh != "" {
		opts = append(opts, api.WithBrowserRefresh(browserRefresh))
	}

	client, err := api.NewClient(cfg.APIBaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}
