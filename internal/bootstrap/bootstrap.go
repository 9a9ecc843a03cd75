package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	activityinadapter "timetrack/internal/modules/activity/adapter/in"
	activityoutadapter "timetrack/internal/modules/activity/adapter/out"
	activitydomain "timetrack/internal/modules/activity/domain"
	activityservice "timetrack/internal/modules/activity/service"
	activityusecase "timetrack/internal/modules/activity/usecase"
	exporterinadapter "timetrack/internal/modules/exporter/adapter/in"
	exporteroutadapter "timetrack/internal/modules/exporter/adapter/out"
	exporterservice "timetrack/internal/modules/exporter/service"
	exporterusecase "timetrack/internal/modules/exporter/usecase"
	reportinadapter "timetrack/internal/modules/report/adapter/in"
	reportservice "timetrack/internal/modules/report/service"
	reportusecase "timetrack/internal/modules/report/usecase"
	sessioninadapter "timetrack/internal/modules/session/adapter/in"
	sessionoutadapter "timetrack/internal/modules/session/adapter/out"
	sessionservice "timetrack/internal/modules/session/service"
	sessionusecase "timetrack/internal/modules/session/usecase"
	"timetrack/internal/platform/clock"
	"timetrack/internal/platform/config"
	"timetrack/internal/platform/id"
	uiapp "timetrack/internal/ui/app"
	trackerview "timetrack/internal/ui/views/tracker"
)

type App struct {
	Config      config.Config
	ActivityCLI activityinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	ReportCLI   reportinadapter.CLIHandler
	ReportTUI   reportinadapter.TUIHandler
	ExporterCLI exporterinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	weekStart, err := cfg.WeekStart()
	if err != nil {
		return nil, err
	}

	recordStore := activityoutadapter.NewFileRecordStore(cfg.StorePath)
	recordIndex, err := activityoutadapter.NewSQLiteRecordIndex(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new record index: %w", err)
	}
	activityUC := activityusecase.NewInteractor(
		activityservice.NewActivityService(clk, recordStore, recordIndex, weekStart))

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids),
		activityUC,
		sessionoutadapter.NewFileActiveSessionStore(cfg.ActivePath),
		cfg.MinSessionDuration(),
	)

	reportUC := reportusecase.NewInteractor(reportservice.NewReportService(
		clk,
		activityUC,
		activitydomain.Language(cfg.Settings.Language),
		weekStart,
	))

	exporterUC := exporterusecase.NewInteractor(exporterservice.NewExporterService(
		exporteroutadapter.NewFileManifestStore(cfg.DataDir, cfg.PluginsPath),
		exporteroutadapter.NewGRPCHost(),
		reportUC,
		cfg.DataDir,
	))

	return &App{
		Config:      cfg,
		ActivityCLI: activityinadapter.NewCLIHandler(activityUC),
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		ReportCLI:   reportinadapter.NewCLIHandler(reportUC),
		ReportTUI:   reportinadapter.NewTUIHandler(reportUC),
		ExporterCLI: exporterinadapter.NewCLIHandler(exporterUC),
	}, nil
}

func RunTUI(app *App) error {
	language := activitydomain.Language(app.Config.Settings.Language)
	categories := make([]trackerview.Category, 0, len(activitydomain.AllCategories()))
	for _, category := range activitydomain.AllCategories() {
		categories = append(categories, trackerview.Category{
			Key:   string(category),
			Label: language.CategoryLabel(category),
		})
	}

	model := uiapp.NewModel(
		app.Config.DataDir,
		app.SessionCLI,
		app.ActivityCLI,
		app.ReportTUI,
		app.ExporterCLI,
		categories,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
