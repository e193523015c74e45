package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driving/tui/styles"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
)

// Transcript roles.
const (
	roleUser      = "user"
	roleAssistant = "assistant"
	roleError     = "error"
)

// entry is one block in the session transcript.
type entry struct {
	role string
	text string

	// tag is the source annotation, assistant entries only.
	tag string
}

// answerMsg carries a completed answer back into the update loop.
type answerMsg struct {
	answer domain.Answer
	err    error
}

// Chat is the interactive session model following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type Chat struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for query calls.
	ctx context.Context

	// styles holds the chat styles.
	styles *styles.Styles

	// keymap holds the session keybindings.
	keymap *KeyMap

	// viewport is the scrollable transcript.
	viewport viewport.Model

	// textarea is the message input.
	textarea textarea.Model

	// spinner shows while a query is in flight.
	spinner spinner.Model

	// transcript is the session history, newest last. Memory only;
	// nothing is persisted.
	transcript []entry

	// waiting is true while a query is in flight.
	waiting bool

	// err holds the last answer error.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates the first window size has arrived.
	ready bool
}

// Ensure Chat implements tea.Model.
var _ tea.Model = (*Chat)(nil)

// NewChat creates the chat model with the given ports.
func NewChat(ports *Ports) (*Chat, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating chat: %w", err)
	}

	s := styles.DefaultStyles()

	ta := textarea.New()
	ta.Placeholder = "How can I help you today?"
	ta.Prompt = "> "
	ta.CharLimit = 512
	ta.SetWidth(76)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	return &Chat{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		keymap:   DefaultKeyMap(),
		viewport: viewport.New(80, 16),
		textarea: ta,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Spinner)),
		width:    80,
		height:   24,
	}, nil
}

// WithContext sets the context used for query calls.
func (c *Chat) WithContext(ctx context.Context) *Chat {
	c.ctx = ctx
	return c
}

// Init implements tea.Model.
func (c *Chat) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tea.SetWindowTitle("bfsi-assistant"))
}

// Update implements tea.Model.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.SetDimensions(msg.Width, msg.Height)
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, c.keymap.Quit):
			return c, tea.Quit
		case key.Matches(msg, c.keymap.Send):
			return c, c.submit()
		}

	case answerMsg:
		return c, c.handleAnswer(msg)

	case spinner.TickMsg:
		if !c.waiting {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd
	}

	// Everything else feeds the input and the scrollback.
	var taCmd, vpCmd tea.Cmd
	c.textarea, taCmd = c.textarea.Update(msg)
	c.viewport, vpCmd = c.viewport.Update(msg)
	return c, tea.Batch(taCmd, vpCmd)
}

// submit sends the typed message through the cascade. No-op while a
// query is already in flight or when the input is blank.
func (c *Chat) submit() tea.Cmd {
	if c.waiting {
		return nil
	}
	query := strings.TrimSpace(c.textarea.Value())
	if query == "" {
		return nil
	}

	c.transcript = append(c.transcript, entry{role: roleUser, text: query})
	c.textarea.Reset()
	c.textarea.Blur()
	c.waiting = true
	c.err = nil
	c.renderTranscript()

	return tea.Batch(c.spinner.Tick, c.ask(query))
}

// ask runs the query outside the update loop and delivers the result
// as a message.
func (c *Chat) ask(query string) tea.Cmd {
	return func() tea.Msg {
		answer, err := c.ports.Assistant.Answer(c.ctx, query)
		return answerMsg{answer: answer, err: err}
	}
}

// handleAnswer appends the reply to the transcript.
func (c *Chat) handleAnswer(msg answerMsg) tea.Cmd {
	c.waiting = false

	if msg.err != nil {
		c.err = msg.err
		c.transcript = append(c.transcript, entry{role: roleError, text: msg.err.Error()})
	} else {
		c.transcript = append(c.transcript, entry{
			role: roleAssistant,
			text: msg.answer.Text,
			tag:  msg.answer.Annotation(),
		})
	}

	c.renderTranscript()
	return c.textarea.Focus()
}

// renderTranscript rebuilds the viewport content and scrolls to the
// latest entry.
func (c *Chat) renderTranscript() {
	blocks := make([]string, 0, len(c.transcript))
	for _, e := range c.transcript {
		switch e.role {
		case roleUser:
			blocks = append(blocks, c.styles.UserLabel.Render("You: ")+e.text)
		case roleAssistant:
			block := c.styles.AssistantLabel.Render("Assistant: ") + e.text
			if e.tag != "" {
				block += "\n" + c.styles.SourceTag.Render(e.tag)
			}
			blocks = append(blocks, block)
		case roleError:
			blocks = append(blocks, c.styles.Error.Render("Error: "+e.text))
		}
	}

	content := strings.Join(blocks, "\n\n")
	c.viewport.SetContent(lipgloss.NewStyle().Width(c.viewport.Width).Render(content))
	c.viewport.GotoBottom()
}

// View implements tea.Model.
func (c *Chat) View() string {
	if !c.ready {
		return "Initialising..."
	}

	header := c.styles.Title.Render("BFSI Assistant") + "  " +
		c.styles.Muted.Render("loans | cards | accounts | insurance")

	input := c.textarea.View()
	if c.waiting {
		input = c.spinner.View() + " Thinking..."
	}

	help := c.styles.Help.Render("enter: send | esc: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		c.viewport.View(),
		"",
		input,
		help,
	)
}

// SetDimensions resizes the chat to the terminal size.
func (c *Chat) SetDimensions(width, height int) {
	c.width = width
	c.height = height
	c.ready = true

	c.textarea.SetWidth(width - 4)

	// Header, spacing, input and help take five rows around the
	// transcript.
	vpHeight := height - c.textarea.Height() - 5
	if vpHeight < 3 {
		vpHeight = 3
	}
	c.viewport.Width = width
	c.viewport.Height = vpHeight
	c.renderTranscript()
}

// Ready returns whether the first window size has arrived.
func (c *Chat) Ready() bool {
	return c.ready
}

// Waiting returns whether a query is in flight.
func (c *Chat) Waiting() bool {
	return c.waiting
}

// Err returns the last answer error, if any.
func (c *Chat) Err() error {
	return c.err
}
