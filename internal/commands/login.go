package commands

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/supportchat/internal/browser"
	"github.com/diogo/supportchat/internal/config"
)

// loginTimeout bounds cookie store access
const loginTimeout = 30 * time.Second

func newLoginCmd(c *cli) *cobra.Command {
	var (
		browserName string
		importFile  string
		listOnly    bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Import the dashboard session cookie",
		Long: `Import the support dashboard session cookie so API requests are
authenticated like the web application.

The cookie is read from a local browser's cookie store, or from a JSON
export file with --file. The file may contain a list of objects
[{"name": "connect.sid", "value": "..."}] or a dictionary
{"connect.sid": "..."}.

Supported browsers: ` + supportedBrowsersHelp() + `

Close the browser first to avoid cookie database locks.

Examples:
  supportchat login                     # Auto-detect browser
  supportchat login -b firefox          # Read from Firefox
  supportchat login --file cookies.json # Import an export file
  supportchat login --list              # List available browsers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case listOnly:
				return runListBrowsers(cmd)
			case importFile != "":
				return c.runImportSession(cmd, importFile)
			default:
				return c.runBrowserLogin(cmd, browserName)
			}
		},
	}

	cmd.Flags().StringVarP(&browserName, "browser", "b", "auto",
		"Browser to extract cookies from (chrome, chromium, firefox, edge, opera, auto)")
	cmd.Flags().StringVar(&importFile, "file", "", "Import cookies from a JSON export file")
	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List available browsers with cookie stores")
	return cmd
}

func (c *cli) runBrowserLogin(cmd *cobra.Command, browserName string) error {
	targetBrowser, err := browser.ParseBrowser(browserName)
	if err != nil {
		return err
	}

	apiURL, err := url.Parse(c.cfg.APIBaseURL)
	if err != nil || apiURL.Hostname() == "" {
		return fmt.Errorf("invalid api_base_url %q", c.cfg.APIBaseURL)
	}
	target := browser.Target{Host: apiURL.Hostname(), CookieName: c.cfg.SessionCookieName}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Looking for %s cookies of %s...\n", target.CookieName, target.Host)

	ctx, cancel := context.WithTimeout(cmd.Context(), loginTimeout)
	defer cancel()

	result, err := c.deps.Extractor.ExtractSessionCookies(ctx, targetBrowser, target)
	if err != nil {
		return fmt.Errorf("failed to extract cookies: %w", err)
	}

	session := config.NewSession(result.Cookies)
	if err := config.ValidateSession(session, target.CookieName); err != nil {
		return fmt.Errorf("extracted cookies are invalid: %w", err)
	}
	if err := config.SaveSession(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	c.logger.Info("session imported from browser", zap.String("browser", result.BrowserName))

	sessionPath, _ := config.GetSessionPath()
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Imported session from %s", result.BrowserName)))
	fmt.Fprintf(out, "  %s: %s\n", target.CookieName, truncateValue(session.Get(target.CookieName), 12))
	fmt.Fprintf(out, "  Saved to: %s\n", sessionPath)
	return nil
}

func (c *cli) runImportSession(cmd *cobra.Command, path string) error {
	if err := config.ImportSession(path); err != nil {
		return fmt.Errorf("failed to import cookies: %w", err)
	}

	session, err := config.LoadSession()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := config.ValidateSession(session, c.cfg.SessionCookieName); err != nil {
		fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠ %v", err)))
	}

	sessionPath, _ := config.GetSessionPath()
	fmt.Fprintf(out, "Cookies imported successfully to %s\n", sessionPath)
	return nil
}

func runListBrowsers(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	browsers := browser.ListAvailableBrowsers()

	if len(browsers) == 0 {
		fmt.Fprintln(out, "No browsers with cookie stores found.")
		fmt.Fprintf(out, "Supported browsers: %s\n", supportedBrowsersHelp())
		return nil
	}

	fmt.Fprintln(out, "Available browsers with cookie stores:")
	for _, b := range browsers {
		fmt.Fprintf(out, "  - %s\n", b)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Use 'supportchat login -b <browser>' to read a specific browser.")
	return nil
}

// supportedBrowsersHelp returns a help string listing supported browsers
func supportedBrowsersHelp() string {
	browsers := browser.AllSupportedBrowsers()
	names := make([]string, len(browsers))
	for i, b := range browsers {
		names[i] = string(b)
	}
	return strings.Join(names, ", ")
}
