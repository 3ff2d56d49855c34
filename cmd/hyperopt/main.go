package main

import (
	"github.com/ducminhle1904/freqtrade-launcher/cmd/common"
	"github.com/ducminhle1904/freqtrade-launcher/internal/frontend"
)

func main() {
	common.App{
		Name:        "hyperopt",
		Frontend:    frontend.HyperoptName,
		Description: "Interactive launcher for freqtrade hyperopt",
		Examples: []common.UsageExample{
			{Command: "hyperopt", Description: "Choose timerange, config, spaces and loss interactively"},
			{Command: "hyperopt -metrics-addr :9109 -verbose", Description: "Expose run counters while optimizing"},
		},
	}.Main()
}
