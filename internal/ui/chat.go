package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/keys"
	"github.com/attt/sohbet/internal/logger"
)

// InputPlaceholder is shown in the empty input.
const InputPlaceholder = "Bir mesaj yazın..."

// Chat is the conversation view: message rows in a scrolling viewport with
// the input control below.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	width   int
	height  int
	focused bool

	messages   []chat.Message
	selected   int // index into messages, -1 when no row is selected
	loading    bool
	waitStart  time.Time
	typingVerb string
	errText    string
	inputLines int

	now func() time.Time
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = InputPlaceholder
	ti.CharLimit = 0
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	ti.SetHeight(InputMinLines)
	// Enter submits; the app reads the input before the textarea sees it
	ti.KeyMap.InsertNewline.SetKeys(keys.ShiftEnter, keys.AltEnter, "ctrl+j")
	applyInputStyles(&ti)

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport:   vp,
		input:      ti,
		spinner:    newTypingSpinner(),
		selected:   -1,
		inputLines: InputMinLines,
		now:        time.Now,
	}
	c.updateContent()
	return c
}

// applyInputStyles gives the textarea a transparent background so it
// matches the terminal instead of the default black.
func applyInputStyles(ta *textarea.Model) {
	styles := ta.Styles()

	base := lipgloss.NewStyle()
	text := lipgloss.NewStyle().Foreground(ColorText)
	placeholder := lipgloss.NewStyle().Foreground(ColorTextMuted)

	styles.Focused.Base = base
	styles.Focused.Text = text
	styles.Focused.Placeholder = placeholder
	styles.Focused.CursorLine = text
	styles.Focused.Prompt = text

	styles.Blurred.Base = base
	styles.Blurred.Text = text
	styles.Blurred.Placeholder = placeholder
	styles.Blurred.CursorLine = text
	styles.Blurred.Prompt = text

	ta.SetStyles(styles)
}

// inputHeight is the outer height of the input area.
func (c *Chat) inputHeight() int {
	return c.inputLines + InputBorderHeight
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()
	panelHeight := height - c.inputHeight()

	c.viewport.SetWidth(ctx.InnerWidth(width))
	c.viewport.SetHeight(max(ctx.InnerHeight(panelHeight), 1))
	c.input.SetWidth(max(ctx.InnerWidth(width)-InputPaddingWidth, 1))

	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetMessages replaces the rendered message list.
func (c *Chat) SetMessages(messages []chat.Message) {
	c.messages = make([]chat.Message, len(messages))
	copy(c.messages, messages)
	if c.selected >= len(c.messages) {
		c.selected = -1
	}
	c.updateContent()
}

// Messages returns the rendered message list.
func (c *Chat) Messages() []chat.Message {
	return c.messages
}

// SetLoading shows or hides the typing indicator. Turning it on returns the
// command that starts the spinner.
func (c *Chat) SetLoading(loading bool) tea.Cmd {
	was := c.loading
	c.loading = loading
	var cmd tea.Cmd
	if loading && !was {
		c.waitStart = c.now()
		c.typingVerb = randomTypingVerb()
		cmd = c.spinner.Tick
	}
	c.updateContent()
	return cmd
}

// IsLoading returns whether a reply is pending
func (c *Chat) IsLoading() bool {
	return c.loading
}

// SetError sets the error banner text. Empty hides it.
func (c *Chat) SetError(text string) {
	c.errText = text
	c.updateContent()
}

// Error returns the error banner text
func (c *Chat) Error() string {
	return c.errText
}

// GetInput returns the trimmed input text
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
	c.resizeInput()
}

// ClearInput clears the input field and shrinks it back to one line
func (c *Chat) ClearInput() {
	c.input.Reset()
	c.resizeInput()
}

// InputLines returns the current visible height of the input.
func (c *Chat) InputLines() int {
	return c.inputLines
}

// resizeInput grows or shrinks the input to fit its content within
// InputMinLines..InputMaxLines.
func (c *Chat) resizeInput() {
	lines := strings.Count(c.input.Value(), "\n") + 1
	lines = min(max(lines, InputMinLines), InputMaxLines)
	if lines == c.inputLines {
		return
	}
	c.inputLines = lines
	c.input.SetHeight(lines)
	if c.width > 0 {
		c.SetSize(c.width, c.height)
	}
}

// SelectPrev moves the message cursor up. With no selection it starts at
// the newest message.
func (c *Chat) SelectPrev() {
	if len(c.messages) == 0 {
		return
	}
	if c.selected < 0 {
		c.selected = len(c.messages) - 1
	} else if c.selected > 0 {
		c.selected--
	}
	c.updateContent()
}

// SelectNext moves the message cursor down. Moving past the newest message
// clears the selection.
func (c *Chat) SelectNext() {
	if c.selected < 0 {
		return
	}
	c.selected++
	if c.selected >= len(c.messages) {
		c.selected = -1
	}
	c.updateContent()
}

// ClearSelection drops the message cursor
func (c *Chat) ClearSelection() {
	if c.selected < 0 {
		return
	}
	c.selected = -1
	c.updateContent()
}

// SelectedMessage returns the message under the cursor.
func (c *Chat) SelectedMessage() (chat.Message, bool) {
	if c.selected < 0 || c.selected >= len(c.messages) {
		return chat.Message{}, false
	}
	return c.messages[c.selected], true
}

// HasSelection reports whether a message row is selected
func (c *Chat) HasSelection() bool {
	return c.selected >= 0
}

func (c *Chat) updateContent() {
	width := c.viewport.Width()
	if width <= 0 {
		width = DefaultWrapWidth
	}

	if len(c.messages) == 0 && !c.loading && c.errText == "" {
		c.viewport.SetContent(renderEmptyState(width))
		c.viewport.GotoTop()
		return
	}

	var sb strings.Builder
	selectedLine := -1
	line := 0
	for i, m := range c.messages {
		if i > 0 {
			sb.WriteString("\n\n")
			line += 2
		}
		if i == c.selected {
			selectedLine = line
		}
		row := renderMessage(m, width, i == c.selected)
		sb.WriteString(row)
		line += strings.Count(row, "\n")
	}

	if c.loading {
		if len(c.messages) > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderTypingIndicator(c.spinner.View(), c.typingVerb, c.now().Sub(c.waitStart)))
	}

	if c.errText != "" {
		sb.WriteString("\n\n")
		sb.WriteString(renderErrorBanner(c.errText, width))
	}

	c.viewport.SetContent(sb.String())
	if selectedLine >= 0 {
		c.viewport.SetYOffset(selectedLine)
	} else {
		c.viewport.GotoBottom()
	}
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !c.loading {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		c.updateContent()
		return c, cmd

	case tea.KeyPressMsg:
		if !c.focused {
			return c, nil
		}
		switch msg.String() {
		case keys.PgUp, keys.PgDown:
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}

		// Typing stays possible while a reply is pending; the app blocks submit
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.resizeInput()
		return c, cmd
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	inputStyle := ChatInputStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
		inputStyle = ChatInputFocusedStyle
	}

	panelHeight := c.height - c.inputHeight()
	panel := panelStyle.Width(c.width).Height(panelHeight).Render(c.viewport.View())
	input := inputStyle.Width(c.width).Render(c.input.View())

	logger.WithComponent("ui").Debug("chat view",
		"width", c.width,
		"panelHeight", panelHeight,
		"inputLines", c.inputLines,
	)
	return lipgloss.JoinVertical(lipgloss.Left, panel, input)
}
