package commands

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/optitask/optitask/internal/analytics"
	"github.com/optitask/optitask/internal/config"
	"github.com/optitask/optitask/internal/db"
	"github.com/optitask/optitask/internal/models"
)

// Report color theme
const (
	colorAccent    = "#7C3AED" // headings
	colorSecondary = "#B1B8C7" // dates, totals-per-day
	colorSuccess   = "#22C55E" // grand total
	colorMuted     = "240"     // empty-state text
)

var (
	reportUser      string
	reportPeriod    string
	reportStartDate string
	reportEndDate   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a time report for one user straight from the database",
	Long: `Print a styled analytics report for one user without going through the
HTTP API: total tracked time per project and per day for the selected
period.

Examples:
  optitask report --user 5f6d… --period this_week
  optitask report --user 5f6d… --start-date 2026-08-01 --end-date 2026-08-28`,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := uuid.Parse(reportUser)
		if err != nil {
			return fmt.Errorf("invalid --user %q: expected a UUID", reportUser)
		}

		query := analytics.Query{Period: reportPeriod}
		if reportStartDate != "" {
			d, err := models.ParseDate(reportStartDate)
			if err != nil {
				return err
			}
			query.StartDate = &d
		}
		if reportEndDate != "" {
			d, err := models.ParseDate(reportEndDate)
			if err != nil {
				return err
			}
			query.EndDate = &d
		}

		window, err := query.ResolveWindow(models.DateOf(time.Now()))
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		gdb, err := db.Open(db.Options{
			Path:         cfg.Database.Path,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		svc := db.NewAnalyticsService(gdb)
		ctx := cmd.Context()

		stats, err := svc.TimeByProject(ctx, owner, window)
		if err != nil {
			return err
		}
		trend, err := svc.ProductivityTrend(ctx, owner, window)
		if err != nil {
			return err
		}

		printReport(window, stats, trend)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportUser, "user", "", "owner identity (UUID, required)")
	reportCmd.Flags().StringVar(&reportPeriod, "period", "", "this_week, last_7_days, this_month or last_30_days")
	reportCmd.Flags().StringVar(&reportStartDate, "start-date", "", "explicit window start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEndDate, "end-date", "", "explicit window end (YYYY-MM-DD)")
	reportCmd.MarkFlagRequired("user")
}

func printReport(w analytics.Window, stats []db.ProjectTimeStat, trend []db.TrendPoint) {
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary))
	total := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorSuccess))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))

	fmt.Println(heading.Render("Time by project"))
	fmt.Println(dim.Render(fmt.Sprintf("%s — %s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))))
	if len(stats) == 0 {
		fmt.Println(muted.Render("no tracked time in this window"))
	}
	var grand int64
	for _, st := range stats {
		grand += st.TotalDurationSeconds
		fmt.Printf("  %-30s %s\n", st.ProjectName, formatSeconds(st.TotalDurationSeconds))
	}
	if grand > 0 {
		fmt.Printf("  %-30s %s\n", "total", total.Render(formatSeconds(grand)))
	}

	fmt.Println()
	fmt.Println(heading.Render("Daily trend"))
	if len(trend) == 0 {
		fmt.Println(muted.Render("no tracked time in this window"))
	}
	for _, point := range trend {
		fmt.Printf("  %s  %s\n", dim.Render(point.DatePoint.String()), formatSeconds(point.TotalDurationSeconds))
	}
}

// formatSeconds formats a duration in a human-readable way
func formatSeconds(secs int64) string {
	d := time.Duration(secs) * time.Second
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}
