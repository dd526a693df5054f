package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/freight-audit/internal/audit"
	"github.com/Veraticus/freight-audit/internal/filingwindow"
	"github.com/Veraticus/freight-audit/internal/misccharges"
	"github.com/Veraticus/freight-audit/internal/model"
)

// Renderer writes audit results to a terminal.
type Renderer struct {
	writer io.Writer
}

// NewRenderer creates a renderer. A nil writer selects stdout.
func NewRenderer(writer io.Writer) *Renderer {
	if writer == nil {
		writer = os.Stdout
	}
	return &Renderer{writer: writer}
}

func (r *Renderer) println(s string) {
	if _, err := fmt.Fprintln(r.writer, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

// Summary renders the headline numbers of an audit run.
func (r *Renderer) Summary(res *audit.Result) {
	s := res.Summary
	content := fmt.Sprintf("Audit ID:            %s\n", SubtleStyle.Render(res.ID)) +
		fmt.Sprintf("Shipments loaded:    %d\n", res.TotalShipments) +
		fmt.Sprintf("Main audit:          %d\n", res.MainAuditCount) +
		fmt.Sprintf("%s Residential review: %d\n", HouseIcon, res.ResidentialCount) +
		fmt.Sprintf("Total charges:       %s\n", FormatMoney(s.TotalCharges)) +
		fmt.Sprintf("%s Potential savings: %s (%.1f%%)\n", MoneyIcon, FormatMoney(s.TotalSavings), s.SavingsRate) +
		fmt.Sprintf("Affected shipments:  %d (%.1f%%)", s.AffectedShipments, s.AffectedRate)

	r.println(RenderBox(ChartIcon+" Audit Summary", content))

	switch {
	case len(res.Findings) == 0:
		r.println(FormatSuccess("No billing errors found"))
	default:
		r.println(FormatInfo(fmt.Sprintf("%d findings, %d ready to submit", len(res.Findings), len(res.Actionable))))
	}
	if res.MiscErr != nil {
		r.println(FormatWarning("Misc charge detection failed: " + res.MiscErr.Error()))
	}
}

// Findings renders up to limit findings as a table. A limit of zero or less
// renders all of them.
func (r *Renderer) Findings(findings []model.Finding, limit int) {
	if len(findings) == 0 {
		return
	}

	shown := findings
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	headers := []string{"Type", "Tracking", "Carrier", "Refund", "Priority", "Reason"}
	rows := make([][]string, 0, len(shown))
	for _, f := range shown {
		rows = append(rows, []string{
			string(f.ErrorType),
			f.TrackingNumber,
			f.Carrier,
			Money(f.RefundEstimate),
			string(f.ClaimPriority),
			truncate(f.DisputeReason, 60),
		})
	}

	r.println(TitleStyle.Render("Findings"))
	r.println(renderTable(headers, rows))
	if len(shown) < len(findings) {
		r.println(SubtleStyle.Render(fmt.Sprintf("... and %d more", len(findings)-len(shown))))
	}
}

// Filing renders the claim filing-window buckets.
func (r *Renderer) Filing(res filingwindow.Result) {
	s := res.Summary
	if s.TotalOriginal == 0 {
		return
	}
	content := fmt.Sprintf("%s Within window: %d (%s)\n", SuccessIcon, s.WithinWindow, Money(s.WithinWindowValue)) +
		fmt.Sprintf("%s Expired:       %d (%s)\n", ErrorIcon, s.Expired, Money(s.ExpiredValue)) +
		fmt.Sprintf("?  Missing date:  %d (%s)", s.MissingDate, Money(s.MissingDateValue))
	r.println(RenderBox(ClockIcon+" Filing Windows", content))
}

// Misc renders the advisory misc-charge rollups.
func (r *Renderer) Misc(views misccharges.Views) {
	if views.Summary.Count == 0 {
		return
	}
	r.println(TitleStyle.Render("Misc Non-Shipment Charges (advisory)"))
	r.println(fmt.Sprintf("%d charges, %s total, %s average",
		views.Summary.Count, Money(views.Summary.Sum), Money(views.Summary.Avg)))

	rows := make([][]string, 0, len(views.ByCategory))
	for _, c := range views.ByCategory {
		rows = append(rows, []string{c.Category, fmt.Sprintf("%d", c.Count), Money(c.Total)})
	}
	r.println(renderTable([]string{"Category", "Count", "Total"}, rows))
}

// History renders stored audit sessions.
func (r *Renderer) History(sessions []model.AuditSession) {
	if len(sessions) == 0 {
		r.println(FormatInfo("No audits saved yet"))
		return
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.ID,
			s.AuditDate.Format("2006-01-02 15:04"),
			s.Filename,
			fmt.Sprintf("%d", s.TotalShipments),
			Money(s.TotalCharges),
			Money(s.TotalSavings),
			fmt.Sprintf("%.1f%%", s.SavingsRate),
		})
	}
	r.println(TitleStyle.Render("Audit History"))
	r.println(renderTable([]string{"ID", "Date", "File", "Shipments", "Charges", "Savings", "Rate"}, rows))
}

// Session renders one stored session with its findings.
func (r *Renderer) Session(session *model.AuditSession, findings []model.Finding) {
	content := fmt.Sprintf("File:               %s\n", session.Filename) +
		fmt.Sprintf("Audited:            %s\n", session.AuditDate.Format("2006-01-02 15:04")) +
		fmt.Sprintf("Shipments:          %d (%d residential review)\n", session.TotalShipments, session.ResidentialCount) +
		fmt.Sprintf("Total charges:      %s\n", FormatMoney(session.TotalCharges)) +
		fmt.Sprintf("Potential savings:  %s (%.1f%%)\n", FormatMoney(session.TotalSavings), session.SavingsRate) +
		fmt.Sprintf("Affected shipments: %d (%.1f%%)", session.AffectedShipments, session.AffectedRate)
	r.println(RenderBox("Audit "+session.ID, content))
	r.Findings(findings, 0)
}

// Statistics renders totals across stored audits.
func (r *Renderer) Statistics(stats *model.AuditStatistics) {
	content := fmt.Sprintf("Audits:            %d\n", stats.SessionCount) +
		fmt.Sprintf("Findings:          %d\n", stats.FindingCount) +
		fmt.Sprintf("Charges audited:   %s\n", FormatMoney(stats.TotalCharges)) +
		fmt.Sprintf("Savings found:     %s\n", FormatMoney(stats.TotalSavings)) +
		fmt.Sprintf("Avg savings rate:  %.1f%%", stats.AverageSavingsRate)
	r.println(RenderBox(ChartIcon+" All Audits", content))
}

func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	cells := func(values []string, style lipgloss.Style) string {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = TableCellStyle.Width(widths[i] + 2).Render(v)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, cells(headers, TableHeaderStyle))
	for _, row := range rows {
		lines = append(lines, cells(row, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
