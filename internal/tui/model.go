package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/jenkins-users/internal/action"
	"github.com/muurk/jenkins-users/internal/jenkins"
)

// Input positions. Buttons follow the inputs in focus order, one per action.Kinds entry.
const (
	inputUsername = iota
	inputFullName
	inputEmail
	inputRole
	numInputs
)

var inputLabels = [numInputs]string{"Username", "Full Name", "Email", "Role Name"}

// Runner performs a validated request. *action.Executor implements it.
type Runner interface {
	Run(ctx context.Context, req action.Request) action.Outcome
}

// Messages
type outcomeMsg struct {
	outcome action.Outcome
}

type copiedMsg struct {
	err error
}

// popup is the error overlay shown after a failed action
type popup struct {
	Title   string
	Message string
	Cause   string
	Tips    []string
}

// Model is the Bubble Tea model of the user management form
type Model struct {
	Inputs [numInputs]textinput.Model
	Focus  int

	// Output holds the text of the last successful action
	Output string
	Status string
	Popup  *popup

	Width  int
	Height int

	Help      help.Model
	Keys      formKeyMap
	PopupKeys popupKeyMap
	Spinner   spinner.Model

	runner         Runner
	guard          *action.Guard
	ctx            context.Context
	server         string
	writeClipboard func(string) error
}

// NewModel creates the form. server is only shown in the header.
func NewModel(ctx context.Context, runner Runner, server string) Model {
	var inputs [numInputs]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = inputLabels[i]
		ti.CharLimit = 128
		ti.Width = 40
		ti.Prompt = "› "
		inputs[i] = ti
	}
	inputs[inputEmail].Placeholder = "user@example.com"
	inputs[inputRole].Placeholder = "e.g. developer"

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := Model{
		Inputs:         inputs,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Help:           help.New(),
		Keys:           newFormKeyMap(),
		PopupKeys:      newPopupKeyMap(),
		Spinner:        s,
		runner:         runner,
		guard:          &action.Guard{},
		ctx:            ctx,
		server:         server,
		writeClipboard: clipboard.WriteAll,
	}
	m.setFocus(inputUsername)
	return m
}

// Run starts the form full screen and blocks until the user quits
func Run(ctx context.Context, runner Runner, server string) error {
	p := tea.NewProgram(NewModel(ctx, runner, server), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case outcomeMsg:
		return m.handleOutcome(msg.outcome), nil

	case copiedMsg:
		if msg.err != nil {
			m.Status = "Copy failed: " + msg.err.Error()
		} else {
			m.Status = "Output copied to clipboard."
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.Popup != nil {
		if key.Matches(msg, m.PopupKeys.Close) {
			m.Popup = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Next):
		return m, m.setFocus(m.Focus + 1)

	case key.Matches(msg, m.Keys.Prev):
		return m, m.setFocus(m.Focus - 1)

	case key.Matches(msg, m.Keys.Create):
		return m.press(action.CreateUser)

	case key.Matches(msg, m.Keys.List):
		return m.press(action.ListUsers)

	case key.Matches(msg, m.Keys.Assign):
		return m.press(action.AssignRole)

	case key.Matches(msg, m.Keys.Delete):
		return m.press(action.DeleteUser)

	case key.Matches(msg, m.Keys.Copy):
		return m, m.copyOutput()

	case key.Matches(msg, m.Keys.Press):
		if kind, ok := m.focusedButton(); ok {
			return m.press(kind)
		}
		return m, m.setFocus(m.Focus + 1)

	case key.Matches(msg, m.Keys.Quit) && !m.inputFocused():
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help) && !m.inputFocused():
		m.Help.ShowAll = !m.Help.ShowAll
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.inputFocused() {
		return m, nil
	}
	var cmd tea.Cmd
	m.Inputs[m.Focus], cmd = m.Inputs[m.Focus].Update(msg)
	return m, cmd
}

// press validates the form for kind and starts the request.
// A press while the same action is in flight is ignored.
func (m Model) press(kind action.Kind) (tea.Model, tea.Cmd) {
	m.Status = ""
	fields := m.Fields()

	req, err := action.Build(kind, fields)
	if err != nil {
		m.Popup = newPopup(action.Rejected(kind, fields.Trimmed().Username, err))
		return m, nil
	}

	idle := !m.busy()
	if !m.guard.TryAcquire(kind) {
		return m, nil
	}

	cmds := []tea.Cmd{m.runRequest(req)}
	if idle {
		cmds = append(cmds, m.Spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// runRequest performs req off the UI goroutine
func (m Model) runRequest(req action.Request) tea.Cmd {
	runner, ctx := m.runner, m.ctx
	return func() tea.Msg {
		return outcomeMsg{outcome: runner.Run(ctx, req)}
	}
}

func (m Model) handleOutcome(out action.Outcome) Model {
	m.guard.Release(out.Kind)
	if out.Success {
		m.Output = out.Message
		return m
	}
	m.Popup = newPopup(out)
	return m
}

func (m Model) copyOutput() tea.Cmd {
	if m.Output == "" {
		return nil
	}
	text, write := m.Output, m.writeClipboard
	return func() tea.Msg {
		return copiedMsg{err: write(text)}
	}
}

func newPopup(out action.Outcome) *popup {
	p := &popup{
		Title:   out.Kind.Label() + " failed",
		Message: out.Message,
		Tips:    jenkins.Troubleshooting(out.Err),
	}
	if cause := jenkins.ShortMessage(out.Err); cause != out.Message {
		p.Cause = cause
	}
	return p
}

// Fields returns the current input values
func (m Model) Fields() action.Fields {
	return action.Fields{
		Username: m.Inputs[inputUsername].Value(),
		FullName: m.Inputs[inputFullName].Value(),
		Email:    m.Inputs[inputEmail].Value(),
		Role:     m.Inputs[inputRole].Value(),
	}
}

// setFocus moves focus to position i, wrapping around the inputs and buttons
func (m *Model) setFocus(i int) tea.Cmd {
	n := numInputs + len(action.Kinds)
	m.Focus = ((i % n) + n) % n

	var cmd tea.Cmd
	for j := range m.Inputs {
		if j == m.Focus {
			cmd = m.Inputs[j].Focus()
			m.Inputs[j].PromptStyle = FocusedInputStyle
			m.Inputs[j].TextStyle = FocusedInputStyle
			continue
		}
		m.Inputs[j].Blur()
		m.Inputs[j].PromptStyle = BlurredInputStyle
		m.Inputs[j].TextStyle = lipgloss.NewStyle()
	}
	return cmd
}

func (m Model) inputFocused() bool {
	return m.Focus < numInputs
}

func (m Model) focusedButton() (action.Kind, bool) {
	if m.inputFocused() {
		return 0, false
	}
	return action.Kinds[m.Focus-numInputs], true
}

func (m Model) busy() bool {
	for _, kind := range action.Kinds {
		if m.guard.Busy(kind) {
			return true
		}
	}
	return false
}

// View implements tea.Model
func (m Model) View() string {
	if m.Popup != nil {
		return RenderModal(m.renderPopup(), m.Width, m.Height)
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Manage Jenkins users"))
	b.WriteString("\n")

	for i, input := range m.Inputs {
		label := LabelStyle.Render(inputLabels[i])
		if i == m.Focus {
			label = FocusedLabelStyle.Render(inputLabels[i])
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, input.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderButtons())
	b.WriteString("\n\n")
	b.WriteString(m.renderOutput())

	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(m.Status))
	}

	return RenderApplicationContainer(b.String(), m.server, m.Help.View(m.Keys), m.Width, m.Height)
}

func (m Model) renderButtons() string {
	buttons := make([]string, 0, len(action.Kinds))
	for i, kind := range action.Kinds {
		caption := kind.Label()
		if m.guard.Busy(kind) {
			caption = m.Spinner.View() + " " + caption
		}

		style := ButtonStyle
		if m.Focus == numInputs+i {
			style = FocusedButtonStyle
		}
		buttons = append(buttons, style.Render(caption))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m Model) renderOutput() string {
	width := m.Width - 10
	if width < 20 {
		width = 20
	}

	text := m.Output
	if text == "" {
		text = PlaceholderStyle.Render("Results appear here.")
	}
	return OutputBoxStyle.Width(width).Render(text)
}

func (m Model) renderPopup() string {
	var lines []string
	lines = append(lines, ErrorTitleStyle.Render("✗ "+m.Popup.Title), "", m.Popup.Message)

	if m.Popup.Cause != "" {
		lines = append(lines, "", fmt.Sprintf("Cause: %s", m.Popup.Cause))
	}
	if len(m.Popup.Tips) > 0 {
		lines = append(lines, "", "Troubleshooting:")
		for _, tip := range m.Popup.Tips {
			lines = append(lines, TipStyle.Render("  • "+tip))
		}
	}
	lines = append(lines, "", HelpStyle.Render(m.Help.View(m.PopupKeys)))

	width := SafeModalWidth(ModalWidth, m.Width)
	return ErrorBoxStyle.Width(width).Render(strings.Join(lines, "\n"))
}
