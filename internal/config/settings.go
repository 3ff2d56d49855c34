package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
	"github.com/ducminhle1904/freqtrade-launcher/internal/prompt"
	"github.com/ducminhle1904/freqtrade-launcher/internal/selector"
)

// DefaultSettingsFile is read when no -settings flag is given; it may be absent
const DefaultSettingsFile = "launcher.yml"

// Settings is the immutable configuration record handed to every front-end
type Settings struct {
	// ProjectDir is the expected working directory holding docker-compose.yml
	ProjectDir      string `yaml:"project_dir"`
	ConfigFolder    string `yaml:"config_folder"`
	ConfigPattern   string `yaml:"config_pattern"`
	HyperoptsFolder string `yaml:"hyperopts_folder"`
	LossPattern     string `yaml:"loss_pattern"`
	Ordering        string `yaml:"ordering"`
	LogDir          string `yaml:"log_dir"`

	Compose  ComposeSettings  `yaml:"compose"`
	Backtest BacktestSettings `yaml:"backtest"`
	Download DownloadSettings `yaml:"download"`
	Hyperopt HyperoptSettings `yaml:"hyperopt"`
}

type ComposeSettings struct {
	Binary  string `yaml:"binary"`
	Service string `yaml:"service"`
}

type BacktestSettings struct {
	Timerange string `yaml:"timerange"`
	UseCache  bool   `yaml:"use_cache"`
}

type DownloadSettings struct {
	Timerange            string   `yaml:"timerange"`
	Timeframes           []string `yaml:"timeframes"`
	IncludeInactivePairs bool     `yaml:"include_inactive_pairs"`
	Exchange             string   `yaml:"exchange"`
	Config               string   `yaml:"config"`
}

type HyperoptSettings struct {
	RandomState int `yaml:"random_state"`
}

// Default returns the settings for the stock Windows project layout
func Default() *Settings {
	return &Settings{
		ProjectDir:      `K:\Freqtrade`,
		ConfigFolder:    "user_data",
		ConfigPattern:   "config-*.json",
		HyperoptsFolder: "user_data/hyperopts",
		LossPattern:     "*.py",
		Ordering:        string(selector.OrderNatural),
		LogDir:          "logs",
		Compose: ComposeSettings{
			Binary:  "docker-compose",
			Service: "freqtrade",
		},
		Backtest: BacktestSettings{
			Timerange: "20240101-20250601",
			UseCache:  false,
		},
		Download: DownloadSettings{
			Timerange:            "20240101-20241100",
			Timeframes:           []string{"1m", "5m", "15m", "1h"},
			IncludeInactivePairs: false,
			Exchange:             "kucoin",
			Config:               "user_data/config-1.json",
		},
		Hyperopt: HyperoptSettings{
			RandomState: 49125,
		},
	}
}

// Load builds settings from defaults, then the YAML file at path, then FTL_*
// environment variables. A missing file is only an error when required.
func Load(path string, required bool) (*Settings, error) {
	s := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, lerrors.Wrap(err, lerrors.ErrorCategoryConfiguration, "config", "load", "could not parse settings file "+path)
			}
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return nil, lerrors.Wrap(err, lerrors.ErrorCategoryConfiguration, "config", "load", "could not read settings file "+path)
		}
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("FTL_PROJECT_DIR", &s.ProjectDir)
	setString("FTL_CONFIG_FOLDER", &s.ConfigFolder)
	setString("FTL_HYPEROPTS_FOLDER", &s.HyperoptsFolder)
	setString("FTL_ORDERING", &s.Ordering)
	setString("FTL_LOG_DIR", &s.LogDir)
	setString("FTL_COMPOSE_BINARY", &s.Compose.Binary)
	setString("FTL_COMPOSE_SERVICE", &s.Compose.Service)
	setString("FTL_DOWNLOAD_EXCHANGE", &s.Download.Exchange)

	if v := os.Getenv("FTL_HYPEROPT_RANDOM_STATE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return lerrors.Wrap(err, lerrors.ErrorCategoryConfiguration, "config", "env", "FTL_HYPEROPT_RANDOM_STATE must be an integer")
		}
		s.Hyperopt.RandomState = n
	}
	return nil
}

// Validate checks the defaults against the same rules operator input must pass
func (s *Settings) Validate() error {
	var problems []string

	if strings.TrimSpace(s.ProjectDir) == "" {
		problems = append(problems, "project_dir is required")
	}
	if s.ConfigFolder == "" {
		problems = append(problems, "config_folder is required")
	}
	if _, err := filepath.Match(s.ConfigPattern, ""); err != nil || s.ConfigPattern == "" {
		problems = append(problems, fmt.Sprintf("config_pattern is not a valid glob: %q", s.ConfigPattern))
	}
	if _, err := filepath.Match(s.LossPattern, ""); err != nil || s.LossPattern == "" {
		problems = append(problems, fmt.Sprintf("loss_pattern is not a valid glob: %q", s.LossPattern))
	}
	if _, err := selector.ParseOrdering(s.Ordering); err != nil {
		problems = append(problems, err.Error())
	}
	if s.Compose.Binary == "" || s.Compose.Service == "" {
		problems = append(problems, "compose.binary and compose.service are required")
	}
	if !prompt.IsTimerange(s.Backtest.Timerange) {
		problems = append(problems, fmt.Sprintf("backtest.timerange must be YYYYMMDD-YYYYMMDD, got %q", s.Backtest.Timerange))
	}
	if !prompt.IsTimerange(s.Download.Timerange) {
		problems = append(problems, fmt.Sprintf("download.timerange must be YYYYMMDD-YYYYMMDD, got %q", s.Download.Timerange))
	}
	if !prompt.AllIn(prompt.AllowedTimeframes)(strings.Join(s.Download.Timeframes, " ")) {
		problems = append(problems, fmt.Sprintf("download.timeframes must be a non-empty subset of %s", strings.Join(prompt.AllowedTimeframes, ", ")))
	}
	if s.Download.Exchange == "" || s.Download.Config == "" {
		problems = append(problems, "download.exchange and download.config are required")
	}

	if len(problems) == 0 {
		return nil
	}
	return lerrors.NewConfigurationError("config", "validate", "invalid settings:\n  - "+strings.Join(problems, "\n  - "))
}

// SelectorOrdering returns the parsed candidate ordering
func (s *Settings) SelectorOrdering() selector.Ordering {
	o, err := selector.ParseOrdering(s.Ordering)
	if err != nil {
		return selector.OrderNatural
	}
	return o
}

// ConfigDir is the directory searched for strategy config files
func (s *Settings) ConfigDir() string {
	return s.resolve(s.ConfigFolder)
}

// HyperoptsDir is the directory searched for custom loss files
func (s *Settings) HyperoptsDir() string {
	return s.resolve(s.HyperoptsFolder)
}

// LogDirPath is the directory the audit log is written to
func (s *Settings) LogDirPath() string {
	return s.resolve(s.LogDir)
}

// ConfigArg is the --config value for a file name, relative to the project dir
func (s *Settings) ConfigArg(name string) string {
	return filepath.ToSlash(filepath.Join(s.ConfigFolder, name))
}

func (s *Settings) resolve(p string) string {
	if filepath.IsAbs(p) || isWindowsAbs(p) {
		return p
	}
	return filepath.Join(s.ProjectDir, p)
}

// isWindowsAbs recognizes drive-letter paths regardless of the host OS
func isWindowsAbs(p string) bool {
	return len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/') &&
		((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z'))
}
