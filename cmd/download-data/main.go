package main

import (
	"github.com/ducminhle1904/freqtrade-launcher/cmd/common"
	"github.com/ducminhle1904/freqtrade-launcher/internal/frontend"
)

func main() {
	common.App{
		Name:        "download-data",
		Frontend:    frontend.DownloadName,
		Description: "Interactive launcher for freqtrade download-data",
		Examples: []common.UsageExample{
			{Command: "download-data", Description: "Download OHLCV data for the default timerange and timeframes"},
			{Command: "FTL_DOWNLOAD_EXCHANGE=binance download-data", Description: "Override the exchange from the environment"},
		},
	}.Main()
}
