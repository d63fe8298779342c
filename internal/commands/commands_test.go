package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/diogo/supportchat/internal/api"
	"github.com/diogo/supportchat/internal/browser"
	"github.com/diogo/supportchat/internal/config"
	"github.com/diogo/supportchat/internal/models"
	"github.com/diogo/supportchat/internal/render"
	"github.com/diogo/supportchat/internal/tui"
)

var t0 = time.Date(2024, 3, 10, 14, 5, 0, 0, time.Local)

// fakeTUI records RunChat calls instead of opening the alternate screen
type fakeTUI struct {
	calls  int
	client api.SupportClientInterface
	id     int64
	conv   *models.Conversation
	opts   tui.Options
	err    error
}

func (f *fakeTUI) RunChat(ctx context.Context, client api.SupportClientInterface, conversationID int64, conv *models.Conversation, opts tui.Options) error {
	f.calls++
	f.client = client
	f.id = conversationID
	f.conv = conv
	f.opts = opts
	return f.err
}

// stubExtractor returns a fixed cookie set
type stubExtractor struct {
	calls   int
	browser browser.SupportedBrowser
	target  browser.Target
	result  *browser.ExtractResult
	err     error
}

func (s *stubExtractor) ExtractSessionCookies(ctx context.Context, b browser.SupportedBrowser, target browser.Target) (*browser.ExtractResult, error) {
	s.calls++
	s.browser = b
	s.target = target
	return s.result, s.err
}

// testEnv wires the command tree to in-memory fakes
type testEnv struct {
	client    *api.MockSupportClient
	tui       *fakeTUI
	extractor *stubExtractor
	deps      *Dependencies

	stdin     string
	stdinTTY  bool
	stdoutTTY bool

	factoryErr   error
	gotCfg       config.Config
	gotRefresh   browser.SupportedBrowser
	copied       []string
	clipboardErr error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvProxy, "")
	t.Setenv(render.EnvStyle, "")

	e := &testEnv{
		client:    &api.MockSupportClient{},
		tui:       &fakeTUI{},
		extractor: &stubExtractor{},
		stdinTTY:  true,
	}
	e.deps = &Dependencies{
		NewClient: func(cfg config.Config, logger *zap.Logger, refresh browser.SupportedBrowser) (api.SupportClientInterface, error) {
			e.gotCfg = cfg
			e.gotRefresh = refresh
			if e.factoryErr != nil {
				return nil, e.factoryErr
			}
			return e.client, nil
		},
		TUI:       e.tui,
		Extractor: e.extractor,
		Clipboard: func(s string) error {
			if e.clipboardErr != nil {
				return e.clipboardErr
			}
			e.copied = append(e.copied, s)
			return nil
		},
		StdinIsTerminal:  func() bool { return e.stdinTTY },
		StdoutIsTerminal: func() bool { return e.stdoutTTY },
	}
	return e
}

// run executes the command tree and returns stdout and stderr
func (e *testEnv) run(args ...string) (string, string, error) {
	cmd := NewRootCmd(e.deps)
	var out, errOut syncBuffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(e.stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func confidence(v float64) *models.MessageMetadata {
	return &models.MessageMetadata{Confidence: &v}
}

func sampleThread() []models.Message {
	return []models.Message{
		{ID: 1, ConversationID: 42, Sender: models.SenderCustomer, Content: "Need help", Timestamp: t0},
		{ID: 2, ConversationID: 42, Sender: models.SenderAI, Content: "Sure thing", Timestamp: t0.Add(time.Minute), Metadata: confidence(0.873)},
	}
}
