package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kitshelf/kitshelf/pkg/catalog"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// KitListModel - Interactive catalog browser
// =============================================================================

// KitListModel is the bubbletea model for browsing the catalog.
type KitListModel struct {
	All        catalog.Catalog
	Visible    catalog.Catalog
	Categories []string
	Sort       catalog.SortMode
	Category   string
	Featured   bool
	Cursor     int
	Offset     int
	Height     int
	Selected   *catalog.Entry
	Now        time.Time
}

// NewKitListModel creates a browser over kits, ordered by sort.
func NewKitListModel(kits catalog.Catalog, sort catalog.SortMode) KitListModel {
	m := KitListModel{
		All:        kits,
		Categories: append([]string{catalog.CategoryAll}, kits.Categories()...),
		Sort:       sort,
		Category:   catalog.CategoryAll,
		Height:     15,
		Now:        time.Now(),
	}
	m.apply()
	return m
}

// apply recomputes the visible rows and clamps the cursor.
func (m *KitListModel) apply() {
	m.Visible = m.All.Filter("", m.Category, m.Featured)
	m.Visible.Sort(m.Sort)
	if m.Cursor >= len(m.Visible) {
		m.Cursor = max(len(m.Visible)-1, 0)
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Offset > 0 && m.Offset+m.Height > len(m.Visible) {
		m.Offset = max(len(m.Visible)-m.Height, 0)
	}
}

func (m KitListModel) Init() tea.Cmd {
	return nil
}

func (m KitListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "s":
			m.Sort = next(catalog.SortModes, m.Sort)
			m.Cursor, m.Offset = 0, 0
			m.apply()
		case "c":
			m.Category = next(m.Categories, m.Category)
			m.Cursor, m.Offset = 0, 0
			m.apply()
		case "f":
			m.Featured = !m.Featured
			m.Cursor, m.Offset = 0, 0
			m.apply()
		case "enter":
			if len(m.Visible) == 0 {
				return m, nil
			}
			kit := m.Visible[m.Cursor]
			m.Selected = &kit
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

// next returns the element after cur in all, wrapping around.
func next[T comparable](all []T, cur T) T {
	i := slices.Index(all, cur)
	return all[(i+1)%len(all)]
}

func (m KitListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Starter Kits"))
	b.WriteString("  ")
	filters := fmt.Sprintf("sort: %s · category: %s", m.Sort, m.Category)
	if m.Featured {
		filters += " · featured"
	}
	b.WriteString(listDimStyle.Render(filters))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  s sort  c category  f featured  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Visible) == 0 {
		b.WriteString(listDimStyle.Render("  No kits match"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Visible))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		k := m.Visible[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		featured := ""
		if k.Featured {
			featured = "★"
		}
		rows = append(rows, []string{
			cursor,
			k.Name,
			k.Category,
			formatCount(k.Stars),
			formatCount(k.Forks),
			formatRelativeTime(k.UpdatedAt, m.Now),
			featured,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Kit", "Category", "Stars", "Forks", "Updated", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}

			actualIdx := m.Offset + row
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			switch col {
			case 3, 4:
				base = base.Align(lipgloss.Right).Foreground(colorCyan)
			case 5:
				base = base.Foreground(colorDim)
			case 6:
				base = base.Foreground(colorYellow)
			}
			if isCurrent {
				if col == 1 || col == 0 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))
	if len(m.Visible) > 0 {
		if desc := m.Visible[m.Cursor].Description; desc != "" {
			b.WriteString("  ")
			b.WriteString(StyleValue.Render(desc))
		}
	}

	return b.String()
}
