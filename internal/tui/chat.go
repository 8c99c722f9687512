package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chokolattee/avocare/internal/locale"
	"github.com/chokolattee/avocare/internal/panel"
	"github.com/chokolattee/avocare/internal/session"
	"github.com/chokolattee/avocare/internal/transcript"
)

// panelTransition is how long the opening/closing transient lasts.
const panelTransition = 150 * time.Millisecond

var (
	// Colors for chat
	chatGreen     = lipgloss.Color("#568203")
	chatLime      = lipgloss.Color("#A3C14A")
	chatBrown     = lipgloss.Color("#6F4E37")
	chatRed       = lipgloss.Color("#EF4444")
	chatGray      = lipgloss.Color("#6B7280")
	chatLightGray = lipgloss.Color("#9CA3AF")
	chatWhite     = lipgloss.Color("#F9FAFB")

	// Styles for chat
	chatTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(chatGreen)

	chatUserMsgStyle = lipgloss.NewStyle().
				Foreground(chatWhite).
				Background(chatGreen).
				Padding(0, 1).
				MarginTop(1)

	chatUserLabelStyle = lipgloss.NewStyle().
				Foreground(chatGreen).
				Bold(true)

	chatAssistantLabelStyle = lipgloss.NewStyle().
				Foreground(chatLime).
				Bold(true)

	chatAssistantMsgStyle = lipgloss.NewStyle().
				Foreground(chatWhite).
				MarginTop(1)

	chatErrorMsgStyle = lipgloss.NewStyle().
				Foreground(chatRed)

	chatInputBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(chatGray).
				Padding(0, 1)

	chatInputBoxFocusedStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(chatLime).
					Padding(0, 1)

	chatStatusStyle = lipgloss.NewStyle().
			Foreground(chatGray).
			MarginTop(1)

	chatHelpStyle = lipgloss.NewStyle().
			Foreground(chatGray)

	chatBadgeStyle = lipgloss.NewStyle().
			Foreground(chatWhite).
			Background(chatRed).
			Padding(0, 1).
			Bold(true)

	chatTriggerStyle = lipgloss.NewStyle().
				Foreground(chatLightGray)
)

// ChatModel is the bubbletea model for the assistant panel.
type ChatModel struct {
	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Session state lives in the controller; the model only keeps
	// presentation state.
	ctrl     *session.Controller
	quickIdx int
	width    int
	height   int
	ready    bool
}

// Messages
type assistantMsg session.Event
type chatDoneMsg struct{}
type panelTickMsg struct{}

// NewChatModel creates the chat model around an existing controller.
func NewChatModel(ctrl *session.Controller) ChatModel {
	loc := ctrl.Locale()

	// Text area for input
	ta := textarea.New()
	ta.Placeholder = loc.Placeholder
	ta.Focus()
	ta.CharLimit = session.MaxInputLen
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false) // Enter sends message

	// Spinner for the in-flight exchange
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(chatGreen)

	// Viewport for the transcript
	vp := viewport.New(80, 20)

	return ChatModel{
		textarea: ta,
		viewport: vp,
		spinner:  sp,
		ctrl:     ctrl,
	}
}

func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.waitForEvent(),
	)
}

// waitForEvent blocks on the controller's event stream and feeds appended
// assistant messages back into the update loop.
func (m ChatModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.ctrl.Events()
		if !ok {
			return chatDoneMsg{}
		}
		return assistantMsg(ev)
	}
}

// finishPanelTransition resolves the opening/closing transient after a short
// delay.
func finishPanelTransition() tea.Cmd {
	return tea.Tick(panelTransition, func(time.Time) tea.Msg {
		return panelTickMsg{}
	})
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.ctrl.Close()
			return m, tea.Quit

		case tea.KeyEnter:
			if m.ctrl.PanelEffectivelyOpen() {
				if m.ctrl.Submit(m.textarea.Value()) {
					m.textarea.Reset()
					m.updateViewport()
				}
			}
			return m, nil

		case tea.KeyCtrlO:
			switch m.ctrl.PanelVisibility() {
			case panel.Closed:
				if m.ctrl.OpenPanel() {
					m.updateViewport()
					return m, finishPanelTransition()
				}
			case panel.Open:
				if m.ctrl.ClosePanel() {
					return m, finishPanelTransition()
				}
			}
			return m, nil

		case tea.KeyCtrlL:
			m.switchLanguage(nextLanguage(m.ctrl.Language()))
			return m, nil

		case tea.KeyCtrlR:
			m.ctrl.Clear()
			m.updateViewport()
			return m, nil

		case tea.KeyCtrlQ:
			questions := m.ctrl.Locale().QuickQuestions
			if len(questions) > 0 {
				m.textarea.SetValue(questions[m.quickIdx%len(questions)])
				m.quickIdx++
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		inputHeight := 5
		helpHeight := 2
		viewportHeight := m.height - headerHeight - inputHeight - helpHeight - 2

		if !m.ready {
			m.viewport = viewport.New(m.width-2, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = m.width - 2
			m.viewport.Height = viewportHeight
		}

		m.textarea.SetWidth(m.width - 4)
		m.updateViewport()

	case assistantMsg:
		m.updateViewport()
		cmds = append(cmds, m.waitForEvent())

	case chatDoneMsg:
		// Controller closed; stop listening.

	case panelTickMsg:
		m.ctrl.FinishPanelTransition()
		m.updateViewport()

	case spinner.TickMsg:
		if m.ctrl.Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Update textarea
	if !m.ctrl.Busy() {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *ChatModel) switchLanguage(lang locale.Language) {
	m.ctrl.SwitchLanguage(lang)
	m.textarea.Placeholder = m.ctrl.Locale().Placeholder
	m.quickIdx = 0
	m.updateViewport()
}

func nextLanguage(current locale.Language) locale.Language {
	all := locale.All()
	for i, lang := range all {
		if lang == current {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// updateViewport re-renders the transcript into the scrollback.
func (m *ChatModel) updateViewport() {
	var content strings.Builder

	for _, msg := range m.ctrl.Messages() {
		switch msg.Author {
		case transcript.User:
			content.WriteString(chatUserLabelStyle.Render("You") + "\n")
			content.WriteString(chatUserMsgStyle.Render(msg.Text) + "\n\n")

		case transcript.Assistant:
			content.WriteString(chatAssistantLabelStyle.Render("AvoCare") + "\n")
			if msg.Err {
				content.WriteString(chatErrorMsgStyle.Render(msg.Text) + "\n\n")
			} else {
				content.WriteString(chatAssistantMsgStyle.Render(renderMarkup(msg.Text)) + "\n\n")
			}
		}
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

func (m ChatModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if !m.ctrl.PanelEffectivelyOpen() {
		return m.triggerBarView()
	}

	var b strings.Builder

	// Header
	header := chatTitleStyle.Render("AvoCare Assistant") + "  " +
		chatStatusStyle.Render(fmt.Sprintf("language: %s", m.ctrl.Language()))
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("─", max(m.width-2, 1)) + "\n")

	// Transcript viewport
	b.WriteString(m.viewport.View() + "\n")

	// Thinking indicator
	if m.ctrl.Busy() {
		b.WriteString(m.spinner.View() + " " + chatStatusStyle.Render("Thinking...") + "\n")
	} else {
		b.WriteString("\n")
	}

	// Input area
	b.WriteString(strings.Repeat("─", max(m.width-2, 1)) + "\n")

	inputStyle := chatInputBoxStyle
	if !m.ctrl.Busy() {
		inputStyle = chatInputBoxFocusedStyle
	}
	b.WriteString(inputStyle.Render(m.textarea.View()) + "\n")

	// Help
	help := chatHelpStyle.Render("Enter send • ctrl+o hide • ctrl+q quick question • ctrl+l language • ctrl+r clear • esc quit")
	b.WriteString(help)

	return b.String()
}

// triggerBarView is the collapsed panel: the always-present floating trigger
// with the unread badge.
func (m ChatModel) triggerBarView() string {
	var b strings.Builder

	b.WriteString(chatTitleStyle.Render("AvoCare Assistant"))
	b.WriteString("  ")
	b.WriteString(chatTriggerStyle.Render("ctrl+o to open"))

	if unread := m.ctrl.Unread(); unread > 0 {
		b.WriteString("  ")
		b.WriteString(chatBadgeStyle.Render(fmt.Sprintf("%d unread", unread)))
	}

	b.WriteString("\n")
	b.WriteString(chatHelpStyle.Render("esc quit"))
	return b.String()
}

// RunChat starts the chat TUI around ctrl and blocks until exit.
func RunChat(ctrl *session.Controller) error {
	model := NewChatModel(ctrl)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
