package styles

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/countwave/internal/config/colors"
	"github.com/thenoetrevino/countwave/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Owner:", "Shared:"
	ValueStyle    lipgloss.Style // For field values
	IDStyle       lipgloss.Style

	// Outcome styles
	CreateStyle lipgloss.Style
	EditStyle   lipgloss.Style
	DeleteStyle lipgloss.Style
	DoneStyle   lipgloss.Style

	// Message styles
	InfoStyle    lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
)

// Init initializes all CLI styles with the given color scheme
func Init(c colors.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Accent)).
		Padding(0, 1).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Normal))

	IDStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Accent))

	CreateStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Create))

	EditStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Edit))

	DeleteStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Delete))

	DoneStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Done)).
		Strikethrough(true)

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.InfoFg))

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.WarningFg))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.ErrorFg))
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// Checkbox renders the completion marker of a todo or subtask
func Checkbox(done bool) string {
	if done {
		return CreateStyle.Render("[x]")
	}
	return SubtitleStyle.Render("[ ]")
}

// RenderWorkspaceLine renders "[id] Name  3/5 done  shared"
func RenderWorkspaceLine(ws *models.Workspace) string {
	line := fmt.Sprintf("%s %s", IDStyle.Render(fmt.Sprintf("[%d]", ws.ID)), TitleStyle.Render(ws.Name))
	if n := ws.TodoCount(); n > 0 {
		line += SubtitleStyle.Render(fmt.Sprintf("  %d/%d done", ws.CompletedCount(), n))
	}
	if ws.IsPublic {
		line += "  " + InfoStyle.Render("shared")
	}
	if !ws.IsVisible {
		line += "  " + SubtitleStyle.Render("hidden")
	}
	return line
}

// RenderTodoLine renders a todo as a checklist row
func RenderTodoLine(t *models.Todo) string {
	task := ValueStyle.Render(t.Task)
	if t.IsCompleted {
		task = DoneStyle.Render(t.Task)
	}
	line := fmt.Sprintf("%s %s %s", Checkbox(t.IsCompleted), IDStyle.Render(fmt.Sprintf("%d", t.ID)), task)
	if n := t.SubtaskCount(); n > 0 {
		line += SubtitleStyle.Render(fmt.Sprintf("  (%d/%d)", t.CompletedSubtasks(), n))
	}
	return line
}

// RenderSubtaskLine renders a subtask indented under its todo
func RenderSubtaskLine(s *models.Subtask, last bool) string {
	branch := "├─"
	if last {
		branch = "└─"
	}
	name := ValueStyle.Render(s.Name)
	if s.IsCompleted {
		name = DoneStyle.Render(s.Name)
	}
	return fmt.Sprintf("    %s %s %s %s", SubtitleStyle.Render(branch), Checkbox(s.IsCompleted),
		IDStyle.Render(fmt.Sprintf("%d", s.ID)), name)
}

// RenderField renders "Label: value"
func RenderField(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
