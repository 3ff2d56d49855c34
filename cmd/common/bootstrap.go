package common

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"github.com/ducminhle1904/freqtrade-launcher/internal/config"
	"github.com/ducminhle1904/freqtrade-launcher/internal/console"
	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
	"github.com/ducminhle1904/freqtrade-launcher/internal/frontend"
	"github.com/ducminhle1904/freqtrade-launcher/internal/logger"
	"github.com/ducminhle1904/freqtrade-launcher/internal/monitoring"
	"github.com/ducminhle1904/freqtrade-launcher/internal/prompt"
	"github.com/ducminhle1904/freqtrade-launcher/internal/runner"
	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
	"github.com/ducminhle1904/freqtrade-launcher/pkg/reporting"
)

const defaultSettingsHint = config.DefaultSettingsFile

// Exit codes
const (
	ExitOK    = 0
	ExitFatal = 1
	ExitUsage = 2
)

// App describes one launcher binary
type App struct {
	Name        string
	Frontend    string
	Description string
	Examples    []UsageExample

	// Runner overrides the process runner, used by tests
	Runner runner.Runner
}

// Main runs the app against the process streams and exits
func (a App) Main() {
	os.Exit(a.Run(os.Args[1:], os.Stdin, os.Stdout))
}

// Run parses args, builds the session and drives it to completion.
// It returns the process exit code.
func (a App) Run(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet(a.Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags := RegisterCommonFlags(fs)

	usage := NewUsageFormatter(a.Name, a.Description)
	for _, ex := range a.Examples {
		usage.AddExample(ex.Command, ex.Description)
	}

	con := console.New(stdout)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage.PrintUsage(stdout, fs)
			return ExitOK
		}
		con.Error("%v", err)
		return ExitUsage
	}

	con.ShowColors = !*flags.NoColors
	con.Verbose = *flags.Verbose

	if CheckHelpAndVersion(stdout, flags, usage, fs) {
		return ExitOK
	}

	validator := NewFlagValidator().ValidateAddr("metrics-addr", *flags.MetricsAddr)
	if *flags.History != reporting.AutoHistory {
		validator.ValidateExtension("history", *flags.History, []string{".xlsx", ".csv", ".json"})
	}
	if *flags.Settings != "" {
		validator.ValidateFile("settings", *flags.Settings, true)
	}
	if validator.HasErrors() {
		con.Error("%v", validator.GetError())
		return ExitUsage
	}

	_ = NewEnvLoader(con).LoadEnvFile(*flags.EnvFile)

	settingsPath, required := *flags.Settings, true
	if settingsPath == "" {
		settingsPath, required = config.DefaultSettingsFile, false
	}
	settings, err := config.Load(settingsPath, required)
	if err != nil {
		con.Error("%s", err.Error())
		return ExitFatal
	}

	fe, err := frontend.New(a.Frontend, settings)
	if err != nil {
		con.Error("%s", lerrors.Message(err))
		return ExitFatal
	}

	// before anything creates files under the project dir
	workDir := config.NewWorkDir(settings.ProjectDir, con)
	if err := workDir.Ensure(); err != nil {
		con.Error("%s", lerrors.Message(err))
		return ExitFatal
	}

	metrics := monitoring.NewMetrics()
	health := monitoring.NewHealthChecker(fe.Name())
	observers := []session.Observer{metrics, health}

	var audit *logger.Logger
	if !*flags.NoAudit {
		audit, err = logger.NewLogger(settings.LogDirPath(), fe.Name())
		if err != nil {
			con.Warning("Audit log disabled: %v", err)
		} else {
			defer audit.Close()
			observers = append(observers, audit)
			con.Debug("Audit log: %s", audit.GetLogPath())
		}
	}

	if *flags.MetricsAddr != "" {
		srv, err := monitoring.Serve(*flags.MetricsAddr, metrics, health)
		if err != nil {
			con.Warning("Metrics endpoint disabled: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = srv.Shutdown(ctx)
			}()
			con.Debug("Serving metrics on %s", *flags.MetricsAddr)
		}
	}

	p := prompt.New(stdin, con)
	p.OnReject = metrics.RejectionHook(fe.Name())

	run := a.Runner
	if run == nil {
		run = runner.NewExecRunner()
	}

	sess := session.New(session.Options{
		Frontend:  fe,
		Prompter:  p,
		Runner:    run,
		WorkDir:   workDir,
		Observers: observers,
	})

	// Ctrl-C is left to the default handler so it ends the launcher and the child together
	runErr := sess.Run(context.Background())

	reporter := reporting.NewDefaultReporter()
	reporter.RenderHistory(con.Writer(), fe.Name(), sess.History())
	if historyPath := *flags.History; historyPath != "" {
		if historyPath == reporting.AutoHistory {
			historyPath = reporting.DefaultHistoryPath(fe.Name(), "xlsx", time.Now())
		}
		if err := reporter.WriteHistory(sess.History(), historyPath); err != nil {
			con.Warning("Could not write history to %s: %v", historyPath, err)
		} else {
			con.Info("History written to %s", historyPath)
		}
	}

	if runErr == nil {
		return ExitOK
	}
	if audit != nil {
		audit.Error("session terminated", runErr)
	}
	con.Error("%s", lerrors.Message(runErr))
	return ExitFatal
}
