package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/keys"
)

// SidebarSearchCharLimit bounds the search query.
const SidebarSearchCharLimit = 64

// sidebarRowHeight is the number of lines per session: title and preview.
const sidebarRowHeight = 2

// Sidebar is the session history panel.
type Sidebar struct {
	sessions     []chat.ChatSession
	filtered     []chat.ChatSession // nil when no query is applied
	selectedIdx  int
	activeID     string
	width        int
	height       int
	focused      bool
	scrollOffset int

	// Search mode
	searchMode  bool
	searchInput textinput.Model

	now func() time.Time
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	ti := textinput.New()
	ti.Placeholder = "başlıkta ara..."
	ti.CharLimit = SidebarSearchCharLimit

	return &Sidebar{
		searchInput: ti,
		now:         time.Now,
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.searchInput.SetWidth(max(GetViewContext().InnerWidth(width)-4, 1))
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetSessions replaces the catalog. The selection follows the previously
// selected session when it is still present.
func (s *Sidebar) SetSessions(sessions []chat.ChatSession) {
	var keepID string
	if sel := s.SelectedSession(); sel != nil {
		keepID = sel.ID
	}

	s.sessions = make([]chat.ChatSession, len(sessions))
	copy(s.sessions, sessions)
	s.applyFilter(s.searchInput.Value())

	if keepID != "" {
		s.SelectSession(keepID)
	}
	s.clampSelection()
}

// Sessions returns the catalog as rendered, in order.
func (s *Sidebar) Sessions() []chat.ChatSession {
	return s.sessions
}

// SetActive marks the session currently open in the chat.
func (s *Sidebar) SetActive(id string) {
	s.activeID = id
}

// SelectedSession returns the highlighted session, or nil when the list is empty.
func (s *Sidebar) SelectedSession() *chat.ChatSession {
	list := s.displaySessions()
	if s.selectedIdx < 0 || s.selectedIdx >= len(list) {
		return nil
	}
	sess := list[s.selectedIdx]
	return &sess
}

// SelectSession highlights the session with the given id, if visible.
func (s *Sidebar) SelectSession(id string) {
	for i, sess := range s.displaySessions() {
		if sess.ID == id {
			s.selectedIdx = i
			s.ensureVisible()
			return
		}
	}
}

// EnterSearchMode activates search mode
func (s *Sidebar) EnterSearchMode() tea.Cmd {
	s.searchMode = true
	s.searchInput.SetValue("")
	s.applyFilter("")
	return s.searchInput.Focus()
}

// ExitSearchMode deactivates search mode and clears the filter
func (s *Sidebar) ExitSearchMode() {
	s.searchMode = false
	s.searchInput.Blur()
	s.searchInput.SetValue("")
	s.applyFilter("")
	s.clampSelection()
}

// IsSearchMode returns whether search mode is active
func (s *Sidebar) IsSearchMode() bool {
	return s.searchMode
}

// SearchQuery returns the current search query
func (s *Sidebar) SearchQuery() string {
	return s.searchInput.Value()
}

// applyFilter keeps sessions whose title contains query, ignoring case.
func (s *Sidebar) applyFilter(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.filtered = nil
		return
	}

	q := strings.ToLower(query)
	s.filtered = []chat.ChatSession{}
	for _, sess := range s.sessions {
		if strings.Contains(strings.ToLower(sess.Title), q) {
			s.filtered = append(s.filtered, sess)
		}
	}
	s.selectedIdx = 0
	s.scrollOffset = 0
}

// displaySessions returns the sessions to display (filtered or all)
func (s *Sidebar) displaySessions() []chat.ChatSession {
	if s.filtered != nil {
		return s.filtered
	}
	return s.sessions
}

func (s *Sidebar) clampSelection() {
	n := len(s.displaySessions())
	if s.selectedIdx >= n {
		s.selectedIdx = n - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
	s.ensureVisible()
}

// visibleRows is how many sessions fit below the panel title.
func (s *Sidebar) visibleRows() int {
	inner := GetViewContext().InnerHeight(s.height) - s.titleLines()
	return max(inner/sidebarRowHeight, 1)
}

func (s *Sidebar) titleLines() int {
	n := 2 // title and count
	if s.searchMode || s.filtered != nil {
		n++
	}
	return n
}

func (s *Sidebar) ensureVisible() {
	rows := s.visibleRows()
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	}
	if s.selectedIdx >= s.scrollOffset+rows {
		s.scrollOffset = s.selectedIdx - rows + 1
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

// Update handles navigation and search typing. Actions on the selected
// session (open, favorite, rename, delete) are handled by the app.
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return s, nil
	}

	if s.searchMode {
		switch keyMsg.String() {
		case keys.Escape:
			s.ExitSearchMode()
			return s, nil
		case keys.Enter:
			// Keep the filter applied
			s.searchMode = false
			s.searchInput.Blur()
			return s, nil
		case keys.Up:
			s.move(-1)
			return s, nil
		case keys.Down:
			s.move(1)
			return s, nil
		default:
			var cmd tea.Cmd
			s.searchInput, cmd = s.searchInput.Update(msg)
			s.applyFilter(s.searchInput.Value())
			return s, cmd
		}
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		s.move(-1)
	case keys.Down, "j":
		s.move(1)
	case keys.Home, "g":
		s.selectedIdx = 0
		s.ensureVisible()
	case keys.End, "G":
		s.selectedIdx = max(len(s.displaySessions())-1, 0)
		s.ensureVisible()
	case keys.Escape:
		if s.filtered != nil {
			s.ExitSearchMode()
		}
	}
	return s, nil
}

func (s *Sidebar) move(delta int) {
	next := s.selectedIdx + delta
	if next < 0 || next >= len(s.displaySessions()) {
		return
	}
	s.selectedIdx = next
	s.ensureVisible()
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(s.width)
	innerHeight := ctx.InnerHeight(s.height)

	var lines []string
	lines = append(lines, PanelTitleStyle.Render("Sohbet Geçmişi"))
	lines = append(lines, SidebarMetaStyle.PaddingLeft(1).Render(fmt.Sprintf("%d sohbet", len(s.sessions))))

	if s.searchMode {
		lines = append(lines, lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true).PaddingLeft(1).Render("/ ")+s.searchInput.View())
	} else if s.filtered != nil {
		lines = append(lines, SidebarMetaStyle.PaddingLeft(1).Render("filtre: "+s.searchInput.Value()))
	}

	list := s.displaySessions()
	switch {
	case len(s.sessions) == 0:
		muted := lipgloss.NewStyle().Foreground(ColorTextMuted).PaddingLeft(1)
		lines = append(lines, "",
			muted.Italic(true).Render("Henüz sohbet geçmişi yok"),
			muted.Render("İlk mesajınızı gönderin!"))
	case len(list) == 0:
		lines = append(lines, "", lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true).PaddingLeft(1).Render("Sonuç bulunamadı"))
	default:
		s.ensureVisible()
		end := min(s.scrollOffset+s.visibleRows(), len(list))
		for i := s.scrollOffset; i < end; i++ {
			lines = append(lines, s.renderRow(list[i], i == s.selectedIdx, innerWidth)...)
		}
	}

	if len(lines) > innerHeight && innerHeight > 0 {
		lines = lines[:innerHeight]
	}
	content := strings.Join(lines, "\n")
	return style.Width(s.width).Height(s.height).Render(content)
}

// renderRow renders the title line and preview line of one session.
func (s *Sidebar) renderRow(sess chat.ChatSession, selected bool, width int) []string {
	// Item padding takes one column on each side
	w := max(width-2, 4)

	date := chat.RelativeDate(sess.UpdatedAt, s.now())
	dateW := runewidth.StringWidth(date)

	star := ""
	if sess.IsFavorite {
		star = "★ "
	}
	title := sess.Title
	if title == "" {
		title = chat.DefaultTitle
	}
	titleW := w - dateW - 1 - runewidth.StringWidth(star)
	if titleW < 1 {
		date, dateW = "", 0
		titleW = w - runewidth.StringWidth(star)
	}
	title = runewidth.Truncate(title, max(titleW, 1), "…")
	gap := max(w-runewidth.StringWidth(star)-runewidth.StringWidth(title)-dateW, 1)

	preview := runewidth.Truncate(sess.PreviewText(), w, "…")

	if selected && s.focused {
		line1 := star + title + strings.Repeat(" ", gap) + date
		return []string{
			SidebarSelectedStyle.Width(width).Render(line1),
			SidebarSelectedStyle.Width(width).Bold(false).Render(preview),
		}
	}

	titleStyle := lipgloss.NewStyle().Foreground(ColorText)
	if sess.ID == s.activeID {
		titleStyle = titleStyle.Foreground(ColorPrimary).Bold(true)
	}
	if selected {
		// Unfocused selection keeps a marker so the cursor is not lost
		titleStyle = titleStyle.Underline(true)
	}

	line1 := SidebarFavoriteStyle.Render(star) + titleStyle.Render(title) +
		strings.Repeat(" ", gap) + SidebarMetaStyle.Render(date)
	line2 := lipgloss.NewStyle().Foreground(ColorTextMuted).Render(preview)
	return []string{
		SidebarItemStyle.Render(line1),
		SidebarItemStyle.Render(line2),
	}
}
