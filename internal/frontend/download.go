package frontend

import (
	"context"

	"github.com/ducminhle1904/freqtrade-launcher/internal/command"
	"github.com/ducminhle1904/freqtrade-launcher/internal/config"
	"github.com/ducminhle1904/freqtrade-launcher/internal/params"
	"github.com/ducminhle1904/freqtrade-launcher/internal/prompt"
	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

const DownloadName = "download-data"

// Download runs `freqtrade download-data` for the configured exchange
type Download struct {
	settings *config.Settings
	compose  command.Compose
}

func NewDownload(s *config.Settings) *Download {
	return &Download{settings: s, compose: composeFor(s)}
}

func (d *Download) Name() string       { return DownloadName }
func (d *Download) Subcommand() string { return "download-data" }

// Vocabulary accepts full words only
func (d *Download) Vocabulary() session.Vocabulary {
	return session.LongOnly(
		"Type 'retry' to use same parameters, 'new' to enter new parameters, or 'exit' to close this window",
		"Running the Docker command with new parameters...")
}

func (d *Download) Collect(_ context.Context, p *prompt.Prompter) (*params.Set, error) {
	defaults, err := useDefaults(p)
	if err != nil {
		return nil, err
	}

	set := params.New()
	if defaults {
		return set.
			PutString(ParamTimerange, d.settings.Download.Timerange).
			PutList(ParamTimeframes, d.settings.Download.Timeframes).
			PutBool(ParamIncludeInactive, d.settings.Download.IncludeInactivePairs), nil
	}

	timerange, err := prompt.Timerange(p, "Enter the timerange (format: YYYYMMDD-YYYYMMDD):")
	if err != nil {
		return nil, err
	}
	timeframes, err := prompt.Timeframes(p)
	if err != nil {
		return nil, err
	}
	inactive, err := prompt.YesNo(p, ParamIncludeInactive, "Do you want to include inactive pairs? (Yes/No)",
		"Including inactive pairs.", "Excluding inactive pairs.")
	if err != nil {
		return nil, err
	}

	return set.
		PutString(ParamTimerange, timerange).
		PutList(ParamTimeframes, timeframes).
		PutBool(ParamIncludeInactive, inactive), nil
}

func (d *Download) Build(set *params.Set) command.Spec {
	return d.compose.Run("DataDownload", d.Subcommand()).
		Option("--exchange", d.settings.Download.Exchange).
		Option("--config", d.settings.Download.Config).
		Option("--data-format-ohlcv", "feather").
		FlagIf(set.Bool(ParamIncludeInactive), "--include-inactive-pairs").
		Flag("--prepend").
		Option("--timerange", set.String(ParamTimerange)).
		OptionList("--timeframes", set.List(ParamTimeframes)).
		Build()
}
