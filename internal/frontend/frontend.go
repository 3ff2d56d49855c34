// Package frontend implements the interactive tools: backtest, download-data and hyperopt.
package frontend

import (
	"errors"
	"fmt"
	"os"

	"github.com/ducminhle1904/freqtrade-launcher/internal/command"
	"github.com/ducminhle1904/freqtrade-launcher/internal/config"
	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
	"github.com/ducminhle1904/freqtrade-launcher/internal/prompt"
	"github.com/ducminhle1904/freqtrade-launcher/internal/selector"
	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

// Parameter names shared by the front-ends
const (
	ParamContainer       = "container"
	ParamConfig          = "config"
	ParamTimerange       = "timerange"
	ParamTimeframes      = "timeframes"
	ParamUseCache        = "use_cache"
	ParamDisableMaxPos   = "disable_max_market_positions"
	ParamPositionStack   = "enable_position_stacking"
	ParamIncludeInactive = "include_inactive_pairs"
	ParamSpaces          = "spaces"
	ParamEpochs          = "epochs"
	ParamWorkers         = "workers"
	ParamLoss            = "hyperopt_loss"
)

const defaultParamsQuestion = "Do you want to use default parameters? (Yes/No):"

// New returns the front-end registered under name
func New(name string, s *config.Settings) (session.Frontend, error) {
	switch name {
	case BacktestName:
		return NewBacktest(s), nil
	case DownloadName:
		return NewDownload(s), nil
	case HyperoptName:
		return NewHyperopt(s), nil
	}
	return nil, lerrors.NewConfigurationError("frontend", "new", fmt.Sprintf("unknown front-end %q", name))
}

func composeFor(s *config.Settings) command.Compose {
	return command.Compose{Binary: s.Compose.Binary, Service: s.Compose.Service}
}

// useDefaults asks whether the configured defaults should be used
func useDefaults(p *prompt.Prompter) (bool, error) {
	return prompt.YesNo(p, "use_defaults", defaultParamsQuestion,
		"Default parameters selected.", "Custom parameters selected.")
}

// listConfigs enumerates strategy config files, mapping selector failures to
// operator-facing fatal errors
func listConfigs(s *config.Settings, component string) ([]selector.Candidate, error) {
	cs, err := selector.List(s.ConfigDir(), s.ConfigPattern, s.SelectorOrdering())
	switch {
	case err == nil:
		return cs, nil
	case errors.Is(err, selector.ErrDirectoryMissing):
		cwd, _ := os.Getwd()
		return nil, lerrors.Fatal(err, component, "list_configs",
			fmt.Sprintf("Directory '%s' does not exist. Current path: %s", s.ConfigFolder, cwd))
	case errors.Is(err, selector.ErrNoCandidates):
		return nil, lerrors.Fatal(err, component, "list_configs",
			fmt.Sprintf("No %s files found in '%s'.", s.ConfigPattern, s.ConfigFolder))
	default:
		return nil, err
	}
}
