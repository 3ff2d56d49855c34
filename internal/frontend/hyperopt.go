package frontend

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ducminhle1904/freqtrade-launcher/internal/command"
	"github.com/ducminhle1904/freqtrade-launcher/internal/config"
	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
	"github.com/ducminhle1904/freqtrade-launcher/internal/params"
	"github.com/ducminhle1904/freqtrade-launcher/internal/prompt"
	"github.com/ducminhle1904/freqtrade-launcher/internal/selector"
	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

const HyperoptName = "hyperopt"

// CustomLoss is the menu value that switches to a user-provided loss class
const CustomLoss = "Custom"

// LossFunction is one entry of the hyperopt-loss menu
type LossFunction struct {
	Key         string
	Class       string
	Label       string
	Description string
}

// LossFunctions lists the built-in freqtrade hyperopt losses in menu order
var LossFunctions = []LossFunction{
	{"1", "ShortTradeDurHyperOptLoss", "Short Trade Duration", "Favors short trade times and avoiding losses."},
	{"2", "OnlyProfitHyperOptLoss", "Only Profit", "Focuses only on total profit."},
	{"3", "SharpeHyperOptLoss", "Sharpe", "Targets high Sharpe Ratio (return vs. volatility) on trade returns."},
	{"4", "SharpeHyperOptLossDaily", "Sharpe Daily", "Same as Sharpe, but calculated on daily returns."},
	{"5", "SortinoHyperOptLoss", "Sortino", "Targets high Sortino Ratio (return vs. downside risk) on trade returns."},
	{"6", "SortinoHyperOptLossDaily", "Sortino Daily", "Same as Sortino, but calculated on daily returns."},
	{"7", "MaxDrawDownHyperOptLoss", "Max DrawDown", "Minimizes the largest account drop (max drawdown)."},
	{"8", "MaxDrawDownRelativeHyperOptLoss", "Max DrawDown Relative", "Minimizes both largest drop and relative drop size."},
	{"9", "CalmarHyperOptLoss", "Calmar", "Targets high Calmar Ratio (return vs. max drawdown)."},
	{"10", "ProfitDrawDownHyperOptLoss", "Profit DrawDown", "Balances high profit with low drawdown."},
}

const customLossKey = "11"

func lossMenu() ([]string, map[string]string) {
	lines := make([]string, 0, len(LossFunctions)+1)
	options := make(map[string]string, len(LossFunctions)+1)
	for _, l := range LossFunctions {
		lines = append(lines, fmt.Sprintf("%-5s%-26s- %s", l.Key+":", l.Label, l.Description))
		options[l.Key] = l.Class
	}
	lines = append(lines, customLossKey+": *List of Customs*          - Shows custom hyperopt loss functions.")
	options[customLossKey] = CustomLoss
	return lines, options
}

// Hyperopt runs `freqtrade hyperopt` with a built-in or custom loss function
type Hyperopt struct {
	settings *config.Settings
	compose  command.Compose
}

func NewHyperopt(s *config.Settings) *Hyperopt {
	return &Hyperopt{settings: s, compose: composeFor(s)}
}

func (h *Hyperopt) Name() string       { return HyperoptName }
func (h *Hyperopt) Subcommand() string { return "hyperopt" }

func (h *Hyperopt) Vocabulary() session.Vocabulary {
	v := session.ShortAndLong(
		"Type 'retry' (or 'r') to use same parameters, 'new' (or 'n') to enter new parameters, or 'exit' (or 'e') to close this window",
		"Running command with new parameters...")
	v.Invalid = "Invalid input. Please type 'retry', 'new', or 'exit'."
	return v
}

func (h *Hyperopt) Collect(_ context.Context, p *prompt.Prompter) (*params.Set, error) {
	timerange, err := prompt.Timerange(p, "Enter the timerange (format: YYYYMMDD-YYYYMMDD for example: 20240101-20250601 ):")
	if err != nil {
		return nil, err
	}

	cs, err := listConfigs(h.settings, HyperoptName)
	if err != nil {
		return nil, err
	}
	chosen, err := selector.Select(p, cs, selector.Menu{
		Title: "Available Backtest Configs:",
		Entry: func(i int, c selector.Candidate) string {
			return fmt.Sprintf("%d. Backtest_%d with %s", i, i, c.Name)
		},
		Inline: "Enter your choice (1-%d): ",
	})
	if err != nil {
		return nil, err
	}

	spaces, err := prompt.Spaces(p)
	if err != nil {
		return nil, err
	}
	epochs, err := prompt.PositiveInt(p, ParamEpochs, "Enter the number of epochs (-e):",
		"Invalid input. Please enter a positive integer for epochs.")
	if err != nil {
		return nil, err
	}
	workers, err := prompt.PositiveInt(p, ParamWorkers, "Enter the number of workers:",
		"Invalid input. Please enter a positive integer for workers.")
	if err != nil {
		return nil, err
	}

	loss, err := h.chooseLoss(p)
	if err != nil {
		return nil, err
	}

	return params.New().
		PutString(ParamTimerange, timerange).
		PutString(ParamConfig, h.settings.ConfigArg(chosen.Name)).
		PutList(ParamSpaces, spaces).
		PutInt(ParamEpochs, epochs).
		PutInt(ParamWorkers, workers).
		PutString(ParamLoss, loss), nil
}

func (h *Hyperopt) chooseLoss(p *prompt.Prompter) (string, error) {
	hints, options := lossMenu()
	loss, err := prompt.Choice(p, prompt.Question[string]{
		Field:       ParamLoss,
		Instruction: "Choose the hyperopt-loss type:",
		Hints:       hints,
		Inline:      "Enter your choice: ",
		Invalid:     fmt.Sprintf("Invalid choice. Please enter a number between 1 and %d.", len(options)),
	}, options)
	if err != nil || loss != CustomLoss {
		return loss, err
	}

	p.Console().Tell("Custom hyperopt loss selected.")
	class, err := h.customLoss(p)
	if err != nil {
		if errors.Is(err, prompt.ErrInputClosed) {
			return "", err
		}
		return "", lerrors.Fatal(err, HyperoptName, "custom_loss",
			"No custom loss selected or could not parse class. Please run again and choose correctly.")
	}
	return class, nil
}

// customLoss lets the operator pick a loss file and extracts its class name
func (h *Hyperopt) customLoss(p *prompt.Prompter) (string, error) {
	con := p.Console()

	files, err := selector.List(h.settings.HyperoptsDir(), h.settings.LossPattern, h.settings.SelectorOrdering())
	if err != nil {
		con.Action("Available custom hyperopt loss files:")
		con.Error("No custom hyperopt loss files found in the specified folder.")
		return "", err
	}

	chosen, err := selector.Select(p, files, selector.Menu{
		Title: "Available custom hyperopt loss files:",
		Entry: func(i int, c selector.Candidate) string {
			return fmt.Sprintf("%d: %s", i, c.Name)
		},
		EntryWarning: true,
		Inline:       "Enter the number corresponding to custom hyperopt loss file: ",
	})
	if err != nil {
		return "", err
	}

	class, err := selector.LossClassFromFile(chosen.Path)
	if err != nil {
		if errors.Is(err, selector.ErrLossClassNotFound) {
			con.Error("Could not find a class inheriting from %s in the selected file.", selector.HyperOptLossBase)
		} else {
			con.Error("Failed to read %s: %v", chosen.Path, lerrors.Cause(err))
		}
		return "", err
	}
	return class, nil
}

func (h *Hyperopt) Build(set *params.Set) command.Spec {
	return h.compose.Run("Hyperopt", h.Subcommand()).
		Option("--config", set.String(ParamConfig)).
		Option("--data-format-ohlcv", "feather").
		Option("--random-state", strconv.Itoa(h.settings.Hyperopt.RandomState)).
		Option("--timerange", set.String(ParamTimerange)).
		OptionList("--spaces", set.List(ParamSpaces)).
		Option("-e", strconv.Itoa(set.Int(ParamEpochs))).
		Option("-j", strconv.Itoa(set.Int(ParamWorkers))).
		Option("--hyperopt-loss", set.String(ParamLoss)).
		Build()
}
