package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"repohub/internal/domain"
)

// RepositoryRenderer handles rendering of repository rows
type RepositoryRenderer struct {
	styles          *Styles
	showOwner       bool
	showDescription bool
}

// NewRepositoryRenderer creates a new repository renderer
func NewRepositoryRenderer(styles *Styles, showOwner, showDescription bool) *RepositoryRenderer {
	return &RepositoryRenderer{
		styles:          styles,
		showOwner:       showOwner,
		showDescription: showDescription,
	}
}

// RowLines is the number of lines one rendered row takes
func (r *RepositoryRenderer) RowLines() int {
	if r.showDescription {
		return 2
	}
	return 1
}

// RenderRepository renders a repository row, highlighting searchQuery in the name
func (r *RepositoryRenderer) RenderRepository(repo domain.Repository, isSelected bool, width int, searchQuery string) string {
	// Background color for selection
	bgColor := ""
	if isSelected {
		bgColor = "238"
	}
	bg := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))

	marker := "  "
	if isSelected {
		marker = "> "
	}

	// Right-hand stats are fixed width, the name gets what is left
	stats := r.stats(repo)
	nameWidth := width - runewidth.StringWidth(marker) - runewidth.StringWidth(stats) - 1
	if nameWidth < 8 {
		nameWidth = 8
	}

	name := repo.Name
	if r.showOwner {
		name = repo.FullName()
	}
	name = runewidth.Truncate(name, nameWidth, "…")
	pad := strings.Repeat(" ", max(nameWidth-runewidth.StringWidth(name), 0)+1)

	nameStyle := r.styles.Name.Inherit(bg)
	var renderedName string
	if searchQuery != "" && strings.Contains(strings.ToLower(name), strings.ToLower(searchQuery)) {
		renderedName = r.highlightMatch(name, searchQuery, r.styles.Highlight.Inherit(bg), nameStyle)
	} else {
		renderedName = nameStyle.Render(name)
	}

	line := bg.Render(marker) + renderedName + bg.Render(pad) + r.styles.Stars.Inherit(bg).Render(stats)
	if !r.showDescription {
		return line
	}

	desc := repo.Description
	if desc == "" {
		desc = "No description"
	}
	desc = runewidth.Truncate(desc, max(width-4, 1), "…")
	return line + "\n" + bg.Render("    ") + r.styles.Description.Inherit(bg).Render(desc)
}

// stats formats language, stars and forks
func (r *RepositoryRenderer) stats(repo domain.Repository) string {
	var parts []string
	if repo.Fork {
		parts = append(parts, "fork")
	}
	if repo.Private {
		parts = append(parts, "private")
	}
	if repo.Language != "" {
		parts = append(parts, repo.Language)
	}
	parts = append(parts, fmt.Sprintf("★%s", formatCount(repo.Stars)))
	parts = append(parts, fmt.Sprintf("⑂%s", formatCount(repo.Forks)))
	return strings.Join(parts, " ")
}

// highlightMatch highlights matching text within a string
func (r *RepositoryRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 || len(lowerText) != len(text) {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}

// formatCount abbreviates large counts: 1234 -> 1.2k
func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fm", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// RenderDetail renders the detail screen body
func RenderDetail(styles *Styles, d *domain.RepositoryDetail, readme string, width int, now time.Time) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(d.FullName()))
	if d.Private {
		b.WriteString(" " + styles.Badge.Render("[private]"))
	}
	if d.Archived {
		b.WriteString(" " + styles.Badge.Render("[archived]"))
	}
	b.WriteString("\n")
	if d.Description != "" {
		b.WriteString(styles.Description.Width(max(width, 20)).Render(d.Description))
		b.WriteString("\n")
	}

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(styles.Label.Render(label))
		b.WriteString(styles.Value.Render(runewidth.Truncate(value, max(width-16, 8), "…")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if d.Language != "" {
		b.WriteString(styles.Label.Render("Language"))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(LanguageColor(d.Language))).Render(d.Language))
		b.WriteString("\n")
	}
	row("Stars", fmt.Sprintf("%d", d.Stars))
	row("Forks", fmt.Sprintf("%d", d.Forks))
	row("Watchers", fmt.Sprintf("%d", d.Watchers))
	row("Open issues", fmt.Sprintf("%d", d.OpenIssues))
	row("Default branch", d.DefaultBranch)
	row("Fork of", d.Parent)
	row("Homepage", d.Homepage)
	row("Clone URL", d.CloneURL)
	if !d.UpdatedAt.IsZero() {
		row("Updated", FormatAge(now.Sub(d.UpdatedAt)))
	}

	b.WriteString(styles.Section.Render("README"))
	b.WriteString("\n")
	if readme == "" {
		b.WriteString(styles.Dim.Render("No README"))
	} else {
		lines := strings.Split(readme, "\n")
		if len(lines) > 8 {
			lines = append(lines[:8], "…")
		}
		for i, l := range lines {
			lines[i] = runewidth.Truncate(l, max(width, 8), "…")
		}
		b.WriteString(styles.Dim.Render(strings.Join(lines, "\n")))
	}
	return b.String()
}

// FormatAge renders a duration like "3 days ago"
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d < 365*24*time.Hour:
		return plural(int(d/(30*24*time.Hour)), "month")
	default:
		return plural(int(d/(365*24*time.Hour)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
