// Package render builds the text panels shown for each scan. A panel is a
// complete surface: every state transition replaces the previous panel
// wholesale, nothing is patched in place.
package render

import (
	"fmt"
	"strings"

	"github.com/addrsentry/addrsentry/internal/classify"
	"github.com/addrsentry/addrsentry/internal/model"
)

// Kind tells a sink which surface it is replacing the current one with.
type Kind int

const (
	KindResult Kind = iota
	KindError
	KindLoading
)

// Placeholder shown for optional values the backend did not send. A missing
// sub-score is never rendered as 0.
const Placeholder = "—"

const barWidth = 20

// Panel is a fully built result surface.
type Panel struct {
	Kind  Kind
	Lines []string
}

func (p Panel) String() string {
	return strings.Join(p.Lines, "\n")
}

// Assessment builds the result panel for a decoded assessment. Section
// order is fixed: address, sanctions banner, badge, bar, flags, stats.
func Assessment(a *model.RiskAssessment) Panel {
	level := classify.Classify(a.RiskScore)

	lines := []string{"Address: " + a.Address}

	if a.IsSanctioned {
		lines = append(lines, "*** SANCTIONED ADDRESS — listed on a sanctions list ***")
	}

	lines = append(lines,
		fmt.Sprintf("Risk: [%s] %.0f/100 — %s", strings.ToUpper(level.String()), a.RiskScore, a.RiskLabel),
		fmt.Sprintf("Sub-scores: ml %s | heuristic %s", subScore(a.MLRawScore), subScore(a.HeuristicScore)),
		riskBar(a.RiskScore),
	)

	// An empty flag list renders no flags section at all.
	if len(a.Flags) > 0 {
		lines = append(lines, "Flags:")
		marker := "-"
		if level.EmphasizeFlags() {
			marker = "!"
		}
		for _, f := range a.Flags {
			lines = append(lines, fmt.Sprintf("  %s %s", marker, f))
		}
	}

	// Quick stats appear only for a present, non-zero tx_count. A zero
	// count hides the block the same as an absent summary.
	if fs := a.FeatureSummary; fs != nil && fs.TxCount != 0 {
		lines = append(lines,
			"Activity:",
			fmt.Sprintf("  Transactions:   %d", fs.TxCount),
			fmt.Sprintf("  Counterparties: %s", counterparties(fs)),
			fmt.Sprintf("  Sent:           %.3f ETH", fs.SentETH()),
			fmt.Sprintf("  Received:       %.3f ETH", fs.ReceivedETH()),
		)
	}

	return Panel{Kind: KindResult, Lines: lines}
}

// Error builds the single panel shown for any failed scan: the failure
// summary plus the configured backend URL, so a user can tell a down
// backend from a misconfigured one.
func Error(summary, apiURL string) Panel {
	return Panel{
		Kind: KindError,
		Lines: []string{
			"Scan failed: " + summary,
			"Backend: " + apiURL,
		},
	}
}

// Loading builds the transient panel shown while a request is outstanding.
func Loading(addr string) Panel {
	return Panel{
		Kind:  KindLoading,
		Lines: []string{fmt.Sprintf("Scanning %s ...", TruncateAddress(addr))},
	}
}

// TruncateAddress shortens an address to its first 8 and last 4 characters.
func TruncateAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:8] + "…" + addr[len(addr)-4:]
}

func subScore(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.2f", *v)
}

func counterparties(fs *model.FeatureSummary) string {
	if fs.UniqueCounterparties == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d", *fs.UniqueCounterparties)
}

func riskBar(score float64) string {
	fill := classify.BarFill(score)
	cells := fill * barWidth / 100
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("#", cells),
		strings.Repeat("-", barWidth-cells),
		fill,
	)
}
