// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Stats holds network statistics for display.
type Stats struct {
	PeriodDays      int
	TotalBlocks     int
	TotalTxs        int
	ZkAppTxs        int
	AvgBlockTimeSec float64
	TPS             float64
	AvgFeeMina      string
	Reduced         bool // archive lacks zkApp fields
}

// StatsComponent renders network statistics.
type StatsComponent struct {
	stats *Stats
}

// NewStatsComponent creates a new stats component.
func NewStatsComponent() *StatsComponent {
	return &StatsComponent{}
}

// Update updates the statistics.
func (s *StatsComponent) Update(stats Stats) {
	s.stats = &stats
}

// View renders the stats component.
func (s *StatsComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)

	result := headerStyle.Render("NETWORK STATS") + "\n\n"
	if s.stats == nil {
		return result + style.Render("  Waiting for analytics...")
	}

	st := s.stats
	result += fmt.Sprintf("  Period: %s  │  Blocks: %s  │  Txs: %s\n",
		valueStyle.Render(fmt.Sprintf("%dd", st.PeriodDays)),
		valueStyle.Render(fmt.Sprintf("%d", st.TotalBlocks)),
		valueStyle.Render(fmt.Sprintf("%d", st.TotalTxs)),
	)
	result += fmt.Sprintf("  Block time: %s  │  TPS: %s  │  Avg fee: %s\n",
		valueStyle.Render(fmt.Sprintf("%.0fs", st.AvgBlockTimeSec)),
		valueStyle.Render(fmt.Sprintf("%.4f", st.TPS)),
		valueStyle.Render(st.AvgFeeMina),
	)
	if st.Reduced {
		result += style.Render("  zkApp counts unavailable on this archive") + "\n"
	} else {
		result += fmt.Sprintf("  zkApp txs: %s\n", valueStyle.Render(fmt.Sprintf("%d", st.ZkAppTxs)))
	}
	return result
}
