// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// PriceData holds the cached price values for display.
type PriceData struct {
	USD       float64
	EUR       float64
	Change24h *float64
	Stale     bool
}

// PriceComponent renders the MINA price pane.
type PriceComponent struct {
	data *PriceData
}

// NewPriceComponent creates a new price component.
func NewPriceComponent() *PriceComponent {
	return &PriceComponent{}
}

// Update replaces the displayed price.
func (p *PriceComponent) Update(data PriceData) {
	p.data = &data
}

// View renders the price component.
func (p *PriceComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	positiveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	negativeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	result := headerStyle.Render("MINA PRICE") + "\n\n"
	if p.data == nil {
		return result + dimStyle.Render("  Waiting for price data...")
	}

	result += fmt.Sprintf("  %s    %s\n",
		valueStyle.Render(fmt.Sprintf("$%.4f", p.data.USD)),
		dimStyle.Render(fmt.Sprintf("€%.4f", p.data.EUR)),
	)
	if p.data.Change24h != nil {
		change := *p.data.Change24h
		style := positiveStyle
		if change < 0 {
			style = negativeStyle
		}
		result += fmt.Sprintf("  24h: %s\n", style.Render(fmt.Sprintf("%+.2f%%", change)))
	}
	if p.data.Stale {
		result += dimStyle.Render("  (cached value, oracle unreachable)") + "\n"
	}
	return result
}
