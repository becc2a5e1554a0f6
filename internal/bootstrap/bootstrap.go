package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	bankinadapter "qbank/internal/modules/bank/adapter/in"
	bankoutadapter "qbank/internal/modules/bank/adapter/out"
	bankout "qbank/internal/modules/bank/port/out"
	bankservice "qbank/internal/modules/bank/service"
	bankusecase "qbank/internal/modules/bank/usecase"
	"qbank/internal/platform/clock"
	"qbank/internal/platform/config"
	"qbank/internal/platform/logging"
	uiapp "qbank/internal/ui/app"
)

type App struct {
	BankCLI bankinadapter.CLIHandler
	BankTUI bankinadapter.TUIHandler
	Log     logging.Logger

	closers []func() error
}

// Options tune how New treats optional infrastructure.
type Options struct {
	// RequireIndex turns a projector that cannot be opened into an error.
	// Otherwise the app logs a warning and runs without the index.
	RequireIndex bool
}

func New(cfg config.Config, log logging.Logger, opts Options) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}
	app := &App{Log: log}

	// keep the interface nil unless indexing is on
	var projector bankout.RecordIndexProjector
	if cfg.IndexEnabled {
		p, err := bankoutadapter.NewSQLiteRecordProjector(cfg.IndexPath, clock.SystemClock{})
		switch {
		case err != nil && opts.RequireIndex:
			return nil, fmt.Errorf("new record projector: %w", err)
		case err != nil:
			log.Warn("failed to open index, continuing without it", "path", cfg.IndexPath, "error", err)
		default:
			projector = p
			app.closers = append(app.closers, p.Close)
		}
	}

	svc := bankservice.NewBankService(
		bankoutadapter.NewTextInputSource(cfg.InputPath),
		bankoutadapter.NewRecordStore(cfg.OutputPath),
		projector,
		log.Named("bank"),
	)
	uc := bankusecase.NewInteractor(svc, bankusecase.Options{KeepInputOnSaveError: cfg.KeepInputOnSaveError}, log.Named("import"))

	app.BankCLI = bankinadapter.NewCLIHandler(uc)
	app.BankTUI = bankinadapter.NewTUIHandler(uc)
	return app, nil
}

func (a *App) Close() error {
	var first error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func RunTUI(title string, app *App) error {
	model := uiapp.NewModel(title, app.BankTUI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
