// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// BlockRow represents one block in the latest-blocks list.
type BlockRow struct {
	Height    uint64
	StateHash string
	SeenAt    time.Time
}

// BlocksComponent renders the latest blocks pane, newest first.
type BlocksComponent struct {
	rows    []BlockRow
	maxRows int
}

// NewBlocksComponent creates a new blocks component.
func NewBlocksComponent(maxRows int) *BlocksComponent {
	return &BlocksComponent{
		rows:    make([]BlockRow, 0),
		maxRows: maxRows,
	}
}

// Add prepends a block. Duplicate heights replace the existing row so a
// reorged block updates in place.
func (b *BlocksComponent) Add(row BlockRow) {
	for i, r := range b.rows {
		if r.Height == row.Height {
			b.rows[i] = row
			return
		}
	}
	b.rows = append([]BlockRow{row}, b.rows...)
	if len(b.rows) > b.maxRows {
		b.rows = b.rows[:b.maxRows]
	}
}

// Clear removes all rows.
func (b *BlocksComponent) Clear() {
	b.rows = make([]BlockRow, 0)
}

// Latest returns the newest height, or 0 when empty.
func (b *BlocksComponent) Latest() uint64 {
	if len(b.rows) == 0 {
		return 0
	}
	return b.rows[0].Height
}

// View renders the blocks component.
func (b *BlocksComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	heightStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	result := headerStyle.Render("LATEST BLOCKS") + "\n\n"
	if len(b.rows) == 0 {
		return result + dimStyle.Render("  Waiting for blocks...")
	}

	for _, row := range b.rows {
		hash := row.StateHash
		if len(hash) > 16 {
			hash = hash[:16] + "…"
		}
		ago := time.Since(row.SeenAt).Round(time.Second)
		result += fmt.Sprintf("  %s  %s  %s\n",
			heightStyle.Render(fmt.Sprintf("#%-8d", row.Height)),
			hash,
			dimStyle.Render(fmt.Sprintf("%s ago", ago)),
		)
	}
	return result
}
