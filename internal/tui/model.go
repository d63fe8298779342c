package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/supportchat/internal/api"
	"github.com/diogo/supportchat/internal/models"
	"github.com/diogo/supportchat/internal/query"
	"github.com/diogo/supportchat/internal/render"
	"github.com/diogo/supportchat/internal/toast"
	"github.com/diogo/supportchat/internal/typing"
)

// Message types for the chat view
type (
	messagesFetchedMsg struct {
		ticket   query.Ticket
		messages []models.Message
		err      error
	}
	conversationLoadedMsg struct {
		conversation *models.Conversation
		err          error
	}
	sentMsg struct {
		message *models.Message
	}
	sendFailedMsg struct {
		err error
	}
)

// MessagesKey is the query key of a conversation's message list
func MessagesKey(conversationID int64) query.Key {
	return query.Key{"/api/conversations", conversationID, "messages"}
}

// Options configures the chat view
type Options struct {
	// Typing opens the "AI is typing" window after a successful send.
	// Defaults to a 2000ms timer.
	Typing typing.Source
	// Markdown configures rendering of AI replies
	Markdown render.Options
	Logger   *zap.Logger
	// Cache is shared with the caller when set
	Cache *query.Cache[[]models.Message]
	// Clipboard writes text to the system clipboard
	Clipboard func(string) error
}

// Model is the chat view: header, message list and composer
type Model struct {
	ctx            context.Context
	client         api.SupportClientInterface
	conversationID int64
	conversation   *models.Conversation

	typingSource typing.Source
	cache        *query.Cache[[]models.Message]
	key          query.Key
	toasts       *toast.Manager
	markdown     render.Options
	logger       *zap.Logger
	clipboard    func(string) error

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	sending      bool
	typing       bool
	toastTicking bool
	copyToast    string
	ready        bool

	// Dimensions
	width  int
	height int
}

// NewChatModel creates the chat view for a conversation. conv is the
// header snapshot; when nil it is fetched and the fallbacks are shown
// until it arrives.
func NewChatModel(ctx context.Context, client api.SupportClientInterface, conversationID int64, conv *models.Conversation, opts Options) Model {
	if opts.Typing == nil {
		opts.Typing = typing.NewTimerSource()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Cache == nil {
		opts.Cache = query.New[[]models.Message]()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Markdown == (render.Options{}) {
		opts.Markdown = render.DefaultOptions()
	}

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		ctx:            ctx,
		client:         client,
		conversationID: conversationID,
		conversation:   conv,
		typingSource:   opts.Typing,
		cache:          opts.Cache,
		key:            MessagesKey(conversationID),
		toasts:         toast.NewManager(),
		markdown:       opts.Markdown,
		logger:         opts.Logger.With(zap.Int64("conversation_id", conversationID)),
		clipboard:      opts.Clipboard,
		viewport:       newThreadViewport(0, 0),
		textarea:       newComposer(),
		spinner:        s,
	}
}

// newThreadViewport creates the message list viewport. Only page keys
// scroll it so typing never moves the list.
func newThreadViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}
	return vp
}

// Init starts the initial fetch
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		m.spinner.Tick,
		m.fetchMessages(),
	}
	if m.conversation == nil {
		cmds = append(cmds, m.loadConversation())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.refreshThread(true)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.toasts.DismissNewest() {
				m.layout()
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			// Never forwarded: the composer would insert a newline
			if !m.CanSend() {
				return m, nil
			}
			return m.send()

		case "ctrl+r":
			return m, m.refetch()

		case "ctrl+y":
			m.copyLatestReply()
			cmd = m.startToastTicker()
			return m, cmd
		}

	case messagesFetchedMsg:
		if !m.cache.Complete(msg.ticket, msg.messages, msg.err) {
			m.logger.Debug("discarded stale message list")
			break
		}
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.logger.Warn("failed to fetch messages", zap.Error(msg.err))
		}
		m.refreshThread(true)

	case conversationLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to load conversation", zap.Error(msg.err))
			break
		}
		m.conversation = msg.conversation

	case sentMsg:
		m.sending = false
		m.textarea.Reset()
		cmds = append(cmds,
			m.textarea.Focus(),
			m.refetch(),
			m.typingSource.Start(m.conversationID),
		)
		m.typing = true
		m.logger.Debug("message sent", zap.Int64("message_id", msg.message.ID))
		m.refreshThread(true)

	case sendFailedMsg:
		m.sending = false
		cmds = append(cmds, m.textarea.Focus())
		if errors.Is(msg.err, context.Canceled) {
			break
		}
		m.logger.Warn("failed to send message", zap.Error(msg.err))
		m.toasts.Error(models.SendErrorTitle, models.SendErrorDescription)
		m.layout()
		cmds = append(cmds, m.startToastTicker())

	case typing.StoppedMsg:
		if msg.ConversationID != m.conversationID {
			break
		}
		m.typing = false
		m.refreshThread(true)
		cmds = append(cmds, m.refetch())

	case toast.TickMsg:
		remaining := m.toasts.Prune()
		m.layout()
		if remaining > 0 {
			cmds = append(cmds, toast.TickCmd())
		} else {
			m.toastTicking = false
		}

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.typing {
			m.refreshThread(false)
		}
	}

	// Only forward keys to the composer while it is enabled
	if !m.sending {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// CanSend reports whether the send action is enabled
func (m Model) CanSend() bool {
	return canSend(m.textarea.Value(), m.sending)
}

// ComposerEnabled reports whether the input accepts edits
func (m Model) ComposerEnabled() bool {
	return !m.sending
}

// Typing reports whether the typing indicator is shown
func (m Model) Typing() bool {
	return m.typing
}

// Sending reports whether a send request is in flight
func (m Model) Sending() bool {
	return m.sending
}

// Draft returns the composer text
func (m Model) Draft() string {
	return m.textarea.Value()
}

// Messages returns the cached message list
func (m Model) Messages() []models.Message {
	return m.cache.Get(m.key).Data
}

// Toasts returns the visible notifications, newest first
func (m Model) Toasts() []toast.Toast {
	return m.toasts.Visible()
}

// send issues the create-message request and disables the composer
func (m Model) send() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.textarea.Value())
	m.sending = true
	m.textarea.Blur()

	client, ctx, id := m.client, m.ctx, m.conversationID
	return m, func() tea.Msg {
		msg, err := client.SendMessage(ctx, id, content)
		if err != nil {
			return sendFailedMsg{err: err}
		}
		return sentMsg{message: msg}
	}
}

// fetchMessages starts a fetch of the message list
func (m Model) fetchMessages() tea.Cmd {
	ticket := m.cache.Begin(m.key)
	client, ctx, id := m.client, m.ctx, m.conversationID
	return func() tea.Msg {
		messages, err := client.ListMessages(ctx, id)
		return messagesFetchedMsg{ticket: ticket, messages: messages, err: err}
	}
}

// refetch invalidates the message list and fetches it again
func (m Model) refetch() tea.Cmd {
	m.cache.Invalidate(m.key)
	return m.fetchMessages()
}

func (m Model) loadConversation() tea.Cmd {
	client, ctx, id := m.client, m.ctx, m.conversationID
	return func() tea.Msg {
		conv, err := client.GetConversation(ctx, id)
		return conversationLoadedMsg{conversation: conv, err: err}
	}
}

// copyLatestReply copies the newest AI message to the clipboard. Its toast
// replaces the one left by the previous copy.
func (m *Model) copyLatestReply() {
	m.toasts.Dismiss(m.copyToast)
	m.copyToast = m.copyReply()
	m.layout()
}

func (m *Model) copyReply() string {
	messages := m.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if !messages[i].Sender.IsAI() {
			continue
		}
		if err := m.clipboard(messages[i].Content); err != nil {
			m.logger.Warn("clipboard write failed", zap.Error(err))
			return m.toasts.Error("Copy failed", err.Error())
		}
		return m.toasts.Success("Copied", "Latest reply copied to clipboard.")
	}
	return m.toasts.Show("Nothing to copy", "There is no AI reply yet.", toast.SeverityInfo)
}

func (m *Model) startToastTicker() tea.Cmd {
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return toast.TickCmd()
}

// layout sizes the viewport and composer to the window
func (m *Model) layout() {
	if !m.ready {
		return
	}

	contentWidth := max(m.width, 20)
	headerHeight := lipgloss.Height(renderHeader(m.conversation, contentWidth))
	composerHeight := inputHeight + inputPanelStyle.GetVerticalFrameSize()
	statusHeight := 1
	toastHeight := m.toasts.Len()

	vpHeight := m.height - headerHeight - composerHeight - statusHeight - toastHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.viewport.Width = contentWidth
	m.viewport.Height = vpHeight
	buttonWidth := lipgloss.Width(renderSendButton("", false)) + 1
	m.textarea.SetWidth(max(contentWidth-inputPanelStyle.GetHorizontalFrameSize()-buttonWidth, 10))
}

// refreshThread re-renders the list and optionally scrolls to the newest item
func (m *Model) refreshThread(gotoBottom bool) {
	if !m.ready {
		return
	}
	renderer := threadRenderer{width: m.viewport.Width, markdown: m.markdown}
	m.viewport.SetContent(renderer.render(m.Messages(), m.typing, m.spinner.View()))
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

// View renders the chat view
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	width := max(m.width, 20)
	sections := []string{renderHeader(m.conversation, width)}

	state := m.cache.Get(m.key)
	switch {
	case state.Loading():
		sections = append(sections, m.renderPlaceholder(m.spinner.View()+" "+loadingText))
	case !state.HasData && state.Err != nil:
		panel := errorPanelStyle.Width(max(width-errorPanelStyle.GetHorizontalBorderSize(), 0)).Render(
			FormatError(state.Err) + "\n" + hintStyle.Render("Press ctrl+r to retry"),
		)
		sections = append(sections, m.renderPlaceholder(panel))
	default:
		sections = append(sections, m.viewport.View())
	}

	if toasts := renderToasts(m.toasts.Visible(), width); toasts != "" {
		sections = append(sections, toasts)
	}

	sections = append(sections, m.renderComposer(width), m.renderStatusBar(width))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderPlaceholder fills the list area with content
func (m Model) renderPlaceholder(content string) string {
	return lipgloss.NewStyle().
		Width(m.viewport.Width).
		Height(m.viewport.Height).
		Render(content)
}

func (m Model) renderComposer(width int) string {
	button := renderSendButton(m.textarea.Value(), m.sending)
	input := lipgloss.JoinHorizontal(lipgloss.Bottom, m.textarea.View(), " ", button)
	return inputPanelStyle.Width(max(width-inputPanelStyle.GetHorizontalBorderSize(), 0)).Render(input)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Alt+Enter", "Newline"},
		{"Ctrl+R", "Refresh"},
		{"Ctrl+Y", "Copy reply"},
		{"PgUp/PgDn", "Scroll"},
		{"Esc", "Quit"},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).MaxWidth(width).Render(strings.Join(items, "  │  "))
}
