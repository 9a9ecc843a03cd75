package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"timetrack/internal/bootstrap"
	activitydomain "timetrack/internal/modules/activity/domain"
	reportdto "timetrack/internal/modules/report/dto"
	"timetrack/internal/platform/config"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "timetrack",
		Short:         "Activity session tracker and time reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newActivityCmd(&dataDir))
	root.AddCommand(newReportCmd(&dataDir))
	root.AddCommand(newRotateCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	root.AddCommand(newExporterCmd(&dataDir))
	root.AddCommand(newCategoriesCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func parseDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	day, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return day, nil
}

func parseDateTime(value string) (time.Time, error) {
	at, err := time.ParseInLocation(dateTimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (want YYYY-MM-DDTHH:MM:SS)", value)
	}
	return at, nil
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run timetrack terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Activity session lifecycle"}

	var note string
	start := &cobra.Command{
		Use:   "start <category>",
		Short: "Start tracking a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Start(context.Background(), args[0], note)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %s category=%s at=%s\n",
				out.SessionID, out.Category, out.StartedAt.Format("2006-01-02T15:04:05Z07:00"))
			return nil
		},
	}
	start.Flags().StringVar(&note, "note", "", "optional note stored with the record")

	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Stop(context.Background())
			if err != nil {
				return err
			}
			if !out.Persisted {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session discarded: %s ran %s, below the minimum\n",
					out.Category, out.Duration.Truncate(time.Second))
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session stored: %s duration=%s\n",
				out.Category, out.Duration.Truncate(time.Second))
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Status(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "category=%s started=%s elapsed=%s\n",
				out.Category, out.StartedAt.Format("2006-01-02T15:04:05Z07:00"), out.Elapsed.Truncate(time.Second))
			if out.Note != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note: %s\n", out.Note)
			}
			return nil
		},
	}

	session.AddCommand(start, stop, status)
	return session
}

func newActivityCmd(dataDir *string) *cobra.Command {
	activity := &cobra.Command{Use: "activity", Short: "Stored activity records"}

	activity.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List completed records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			records, err := app.ActivityCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no records")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s", r.Start.Format(dateTimeLayout), r.Category, r.Duration)
				if r.Note != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t%s", r.Note)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var amendCategory, amendStart, amendEnd, amendNote string
	amend := &cobra.Command{
		Use:   "amend --category <name> --start <ts> --end <ts>",
		Short: "Replace the first record of a category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(amendCategory) == "" {
				return fmt.Errorf("--category is required")
			}
			start, err := parseDateTime(amendStart)
			if err != nil {
				return err
			}
			end, err := parseDateTime(amendEnd)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.ActivityCLI.Amend(context.Background(), amendCategory, start, end, amendNote); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "amended %s: %s — %s\n", amendCategory, amendStart, amendEnd)
			return nil
		},
	}
	amend.Flags().StringVar(&amendCategory, "category", "", "category to amend")
	amend.Flags().StringVar(&amendStart, "start", "", "start timestamp (YYYY-MM-DDTHH:MM:SS)")
	amend.Flags().StringVar(&amendEnd, "end", "", "end timestamp (YYYY-MM-DDTHH:MM:SS)")
	amend.Flags().StringVar(&amendNote, "note", "", "optional note")

	var historyFrom, historyTo string
	history := &cobra.Command{
		Use:   "history --from <date> --to <date>",
		Short: "List indexed records in a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := parseDate(historyFrom)
			if err != nil {
				return err
			}
			to, err := parseDate(historyTo)
			if err != nil {
				return err
			}
			if from.IsZero() || to.IsZero() {
				return fmt.Errorf("--from and --to are required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			records, err := app.ActivityCLI.History(context.Background(), from, to)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no records in range")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.2fh\n", r.Start.Format(dateTimeLayout), r.Category, r.Hours)
			}
			return nil
		},
	}
	history.Flags().StringVar(&historyFrom, "from", "", "range start (YYYY-MM-DD)")
	history.Flags().StringVar(&historyTo, "to", "", "range end (YYYY-MM-DD)")

	activity.AddCommand(amend, history)
	return activity
}

func newReportCmd(dataDir *string) *cobra.Command {
	report := &cobra.Command{Use: "report", Short: "Aggregated time reports"}

	var date string
	week := &cobra.Command{
		Use:   "week",
		Short: "Weekday distribution for the current week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			anchor, err := parseDate(date)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ReportCLI.Week(context.Background(), anchor)
			if err != nil {
				return err
			}
			printReport(cmd, out)
			return nil
		},
	}
	month := &cobra.Command{
		Use:   "month",
		Short: "Day-of-month distribution for the current month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			anchor, err := parseDate(date)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ReportCLI.Month(context.Background(), anchor)
			if err != nil {
				return err
			}
			printReport(cmd, out)
			return nil
		},
	}
	report.PersistentFlags().StringVar(&date, "date", "", "anchor date (YYYY-MM-DD, default today)")

	report.AddCommand(week, month)
	return report
}

func printReport(cmd *cobra.Command, out reportdto.ReportOutput) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, out.Title)
	if out.DayAxis != "" {
		_, _ = fmt.Fprintln(w, out.DayAxis)
	}
	categories := make([]string, 0, len(out.Series))
	for category := range out.Series {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for i, label := range out.Labels {
		for _, category := range categories {
			row := out.Series[category]
			if i >= len(row) || row[i] == 0 {
				continue
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%.2f\n", label, category, row[i])
		}
	}
	_, _ = fmt.Fprintf(w, "%s: %.2f\n", out.Axis, out.Total)
	for _, category := range categories {
		_, _ = fmt.Fprintf(w, "%s\t%.2f\t%.1f%%\n", category, out.Totals[category], out.Shares[category])
	}
}

func newRotateCmd(dataDir *string) *cobra.Command {
	var weekEndOnly bool
	rotate := &cobra.Command{
		Use:   "rotate",
		Short: "Clear stored records and the index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ActivityCLI.Rotate(context.Background(), weekEndOnly)
			if err != nil {
				return err
			}
			if !out.Cleared {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "rotate skipped: not the end of the week")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rotated: %d records cleared\n", out.Removed)
			return nil
		},
	}
	rotate.Flags().BoolVar(&weekEndOnly, "week-end-only", false, "rotate only on the last day of the week")
	return rotate
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite index from the record store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.ActivityCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}

func newExporterCmd(dataDir *string) *cobra.Command {
	exporter := &cobra.Command{Use: "exporter", Short: "Report exporter plugins"}

	exporter.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List exporter manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			exporters, err := app.ExporterCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(exporters) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no exporters configured")
				return nil
			}
			for _, e := range exporters {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s capabilities=%s\n",
					e.Name, e.Version, e.Enabled, e.Binary, strings.Join(e.Capabilities, ","))
			}
			return nil
		},
	})

	exporter.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate exporter checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			results, err := app.ExporterCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no exporters configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var formatsExporter string
	formats := &cobra.Command{
		Use:   "formats --exporter <name>",
		Short: "List formats exposed by an exporter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(formatsExporter) == "" {
				return fmt.Errorf("--exporter is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			items, err := app.ExporterCLI.ListFormats(context.Background(), formatsExporter)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no formats")
				return nil
			}
			for _, item := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s kind=%s timeout_ms=%d title=%q\n", item.ID, item.Kind, item.TimeoutMS, item.Title)
			}
			return nil
		},
	}
	formats.Flags().StringVar(&formatsExporter, "exporter", "", "exporter name")
	exporter.AddCommand(formats)

	var exportDate, exportCwd string
	export := &cobra.Command{
		Use:   "export <exporter> <format> <week|month>",
		Short: "Feed a report to an exporter format",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := parseDate(exportDate)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ExporterCLI.Export(context.Background(), args[0], args[1], args[2], anchor, exportCwd)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exporter=%s format=%s exit=%d\n", out.ExporterName, out.FormatID, out.ExitCode)
			if strings.TrimSpace(out.Stdout) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Stdout)
			}
			if strings.TrimSpace(out.Stderr) != "" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), out.Stderr)
			}
			if strings.TrimSpace(out.OutputJSON) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OutputJSON)
			}
			return nil
		},
	}
	export.Flags().StringVar(&exportDate, "date", "", "anchor date (YYYY-MM-DD, default today)")
	export.Flags().StringVar(&exportCwd, "cwd", "", "working directory for the exporter process")
	exporter.AddCommand(export)

	return exporter
}

func newCategoriesCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the category taxonomy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*dataDir)
			if err != nil {
				return err
			}
			language := activitydomain.Language(cfg.Settings.Language)
			for _, category := range activitydomain.AllCategories() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", category, language.CategoryLabel(category))
			}
			return nil
		},
	}
}
