package main

import (
	"github.com/ducminhle1904/freqtrade-launcher/cmd/common"
	"github.com/ducminhle1904/freqtrade-launcher/internal/frontend"
)

func main() {
	common.App{
		Name:        "backtest",
		Frontend:    frontend.BacktestName,
		Description: "Interactive launcher for freqtrade backtesting",
		Examples: []common.UsageExample{
			{Command: "backtest", Description: "Pick a config and run with default parameters"},
			{Command: "backtest -settings launcher.yml -history results/backtest.xlsx", Description: "Custom settings, keep a run history workbook"},
		},
	}.Main()
}
