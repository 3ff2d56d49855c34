package frontend

import (
	"context"
	"fmt"

	"github.com/ducminhle1904/freqtrade-launcher/internal/command"
	"github.com/ducminhle1904/freqtrade-launcher/internal/config"
	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
	"github.com/ducminhle1904/freqtrade-launcher/internal/params"
	"github.com/ducminhle1904/freqtrade-launcher/internal/prompt"
	"github.com/ducminhle1904/freqtrade-launcher/internal/selector"
	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

const BacktestName = "backtest"

// Backtest runs `freqtrade backtesting` against a selected strategy config
type Backtest struct {
	settings *config.Settings
	compose  command.Compose
}

func NewBacktest(s *config.Settings) *Backtest {
	return &Backtest{settings: s, compose: composeFor(s)}
}

func (b *Backtest) Name() string       { return BacktestName }
func (b *Backtest) Subcommand() string { return "backtesting" }

func (b *Backtest) Vocabulary() session.Vocabulary {
	return session.ShortAndLong("Select 'retry' (r), 'new' (n), 'exit' (e)",
		"Running command with selected parameters...")
}

func (b *Backtest) Collect(_ context.Context, p *prompt.Prompter) (*params.Set, error) {
	con := p.Console()

	cs, err := listConfigs(b.settings, BacktestName)
	if err != nil {
		con.Error("%s", lerrors.Message(err))
		return nil, lerrors.Fatal(err, BacktestName, "collect", "No backtest option selected. Exiting...")
	}

	chosen, err := selector.Select(p, cs, selector.Menu{
		Title: "Available Backtest Configs:",
		Entry: func(i int, c selector.Candidate) string {
			return fmt.Sprintf("%d. Backtest_%s with %s", i, c.Number, c.Name)
		},
		Inline: "Enter your choice (1-%d): ",
	})
	if err != nil {
		return nil, err
	}

	container := "Backtest_" + chosen.Number
	cfg := b.settings.ConfigArg(chosen.Name)
	con.Info("Selected Container: %s", container)
	con.Info("Config File: %s", cfg)

	set := params.New().
		PutString(ParamContainer, container).
		PutString(ParamConfig, cfg)

	defaults, err := useDefaults(p)
	if err != nil {
		return nil, err
	}
	if defaults {
		return set.
			PutString(ParamTimerange, b.settings.Backtest.Timerange).
			PutBool(ParamUseCache, b.settings.Backtest.UseCache).
			PutBool(ParamDisableMaxPos, false).
			PutBool(ParamPositionStack, false), nil
	}

	timerange, err := prompt.Timerange(p, "Enter the timerange (format: YYYYMMDD-YYYYMMDD):")
	if err != nil {
		return nil, err
	}
	useCache, err := prompt.YesNo(p, ParamUseCache, "Do you want to use cached backtest results? (Yes/No)",
		"Using cached results.", "Cache disabled.")
	if err != nil {
		return nil, err
	}
	disableMax, err := prompt.YesNo(p, ParamDisableMaxPos, "Do you want to disable max market positions? (Yes/No)",
		"Max market positions disabled.", "Max market positions enforced.")
	if err != nil {
		return nil, err
	}
	stacking, err := prompt.YesNo(p, ParamPositionStack, "Do you want to enable position stacking? (Yes/No)",
		"Position stacking enabled.", "Position stacking disabled.")
	if err != nil {
		return nil, err
	}

	return set.
		PutString(ParamTimerange, timerange).
		PutBool(ParamUseCache, useCache).
		PutBool(ParamDisableMaxPos, disableMax).
		PutBool(ParamPositionStack, stacking), nil
}

func (b *Backtest) Build(set *params.Set) command.Spec {
	return b.compose.Run(set.String(ParamContainer), b.Subcommand()).
		Option("--config", set.String(ParamConfig)).
		Option("--data-format-ohlcv", "feather").
		Option("--export", "trades").
		Option("--timerange", set.String(ParamTimerange)).
		OptionIf(!set.Bool(ParamUseCache), "--cache", "none").
		FlagIf(set.Bool(ParamDisableMaxPos), "--disable-max-market-positions").
		FlagIf(set.Bool(ParamPositionStack), "--enable-position-stacking").
		Build()
}
