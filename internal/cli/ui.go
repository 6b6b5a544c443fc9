package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kitshelf/kitshelf/pkg/catalog"
	"github.com/kitshelf/kitshelf/pkg/enrich"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failures.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder = lipgloss.NewStyle().Foreground(colorDim)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Tables
// =============================================================================

// headerRow is the row index StyleFunc receives for the header.
const headerRow = -1

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...)
}

// kitTable renders kits with their counters.
func kitTable(kits catalog.Catalog) string {
	rows := make([][]string, 0, len(kits))
	for _, k := range kits {
		rows = append(rows, []string{
			strconv.Itoa(k.ID),
			k.Name,
			k.Category,
			formatCount(k.Stars),
			formatCount(k.Forks),
			formatRelativeTime(k.UpdatedAt, time.Now()),
		})
	}
	return newTable("ID", "Kit", "Category", "Stars", "Forks", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == headerRow:
				return base.Inherit(styleHeader)
			case col == 3 || col == 4:
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			case col == 0 || col == 5:
				return base.Foreground(colorGray)
			}
			return base
		}).
		Render()
}

// outcomeTable renders the per-kit result of a pass.
func outcomeTable(res enrich.Result) string {
	names := make(map[int]catalog.Entry, len(res.Catalog))
	for _, k := range res.Catalog {
		names[k.ID] = k
	}

	rows := make([][]string, 0, len(res.Outcomes))
	states := make([]enrich.State, 0, len(res.Outcomes))
	for _, o := range res.Outcomes {
		k := names[o.ID]
		repo := o.Key
		if repo == "" {
			repo = "—"
		}
		rows = append(rows, []string{
			k.Name,
			repo,
			string(o.State),
			formatCount(k.Stars),
			formatCount(k.Forks),
		})
		states = append(states, o.State)
	}

	return newTable("Kit", "Repository", "Result", "Stars", "Forks").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == headerRow {
				return base.Inherit(styleHeader)
			}
			switch col {
			case 2:
				if row < len(states) {
					return base.Inherit(stateStyle(states[row]))
				}
			case 3, 4:
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			case 1:
				return base.Foreground(colorGray)
			}
			return base
		}).
		Render()
}

func stateStyle(s enrich.State) lipgloss.Style {
	switch s {
	case enrich.StateFetched, enrich.StateFallbackFetched:
		return StyleSuccess
	case enrich.StateCacheHit, enrich.StateFallbackCacheHit:
		return StyleNumber
	case enrich.StateNotFound, enrich.StateUnresolvable:
		return StyleWarning
	case enrich.StateTransient:
		return StyleError
	}
	return StyleDim
}

// passSummary formats a one-line summary of a pass.
func passSummary(res enrich.Result) string {
	parts := []string{
		fmt.Sprintf("%d updated", res.Updated()),
		fmt.Sprintf("%d fetched", res.Count(enrich.StateFetched)+res.Count(enrich.StateFallbackFetched)),
		fmt.Sprintf("%d cached", res.Count(enrich.StateCacheHit)+res.Count(enrich.StateFallbackCacheHit)),
	}
	if n := res.Count(enrich.StateNotFound) + res.Count(enrich.StateTransient) + res.Count(enrich.StateUnresolvable); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}
	parts = append(parts, fmt.Sprintf("%d requests", res.Fetches))
	return strings.Join(parts, StyleDim.Render(" · "))
}

// =============================================================================
// Formatting
// =============================================================================

// formatCount abbreviates large counters: 1234 -> 1.2k, 207000 -> 207k.
func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	case n >= 100_000:
		return fmt.Sprintf("%dk", n/1000)
	case n >= 1000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1000)) + "k"
	}
	return strconv.Itoa(n)
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

func formatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
