package contract

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/dugoutlab/trackstat/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultBatchSize   = 200
	DefaultPrecision   = 3

	// MaxFetchPages caps paginated season reads as a safety valve
	// against an inconsistent or runaway paginated source.
	DefaultMaxFetchPages = 500
)

// DefaultWorkers is the default number of concurrent file workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ConfigRawInput holds the raw, unvalidated configuration from all
// sources (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	DataDir       string `mapstructure:"data-dir"`
	Backend       string `mapstructure:"backend"`
	DBConnect     string `mapstructure:"db-connect"`
	Season        int    `mapstructure:"season"`
	RankScale     string `mapstructure:"rank-scale"`
	Limit         int    `mapstructure:"limit"`
	Stat          string `mapstructure:"stat"`
	Output        string `mapstructure:"output"`
	OutputFile    string `mapstructure:"output-file"`
	Workers       int    `mapstructure:"workers"`
	BatchSize     int    `mapstructure:"batch-size"`
	MaxFetchPages int    `mapstructure:"max-fetch-pages"`
	GridPath      string `mapstructure:"xba-grid"`
	XSLGModel     string `mapstructure:"xslg-model"`
	XWOBAModel    string `mapstructure:"xwoba-model"`
	Color         string `mapstructure:"color"`
	Verbose       bool   `mapstructure:"verbose"`
	Width         int    `mapstructure:"width"`
}

// Config holds the runtime configuration. This struct remains the
// "final, validated" config.
type Config struct {
	DataDir       string
	Backend       schema.DatabaseBackend
	DBConnect     string // Please use env var as this is plaintext
	Season        int
	RankScale     schema.RankScale
	ResultLimit   int
	Stat          string
	Output        schema.OutputMode
	OutputFile    string
	Workers       int
	BatchSize     int
	MaxFetchPages int
	GridPath      string
	XSLGModel     string
	XWOBAModel    string
	UseColors     bool
	Verbose       bool
	Width         int // Terminal width override (0 = auto-detect)
}

// Clone returns a copy of the config safe for per-request mutation.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// ProcessAndValidate turns raw viper input into a validated Config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = input.DataDir

	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(input.Backend)))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid backend %q: must be sqlite, mysql, postgresql, or none", input.Backend)
	}
	cfg.Backend = backend
	cfg.DBConnect = input.DBConnect

	if input.Season < 0 {
		return fmt.Errorf("season cannot be negative")
	}
	cfg.Season = input.Season

	scale := schema.RankScale(strings.TrimSpace(input.RankScale))
	if scale == "" {
		scale = schema.Scale100
	}
	if _, ok := schema.ValidRankScales[scale]; !ok {
		return fmt.Errorf("invalid rank scale %q: must be %q or %q", input.RankScale, schema.Scale100, schema.Scale99)
	}
	cfg.RankScale = scale

	if input.Limit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	} else if input.Limit > MaxResultLimit {
		return fmt.Errorf("limit cannot exceed %d rows", MaxResultLimit)
	} else {
		cfg.ResultLimit = input.Limit
	}

	cfg.Stat = strings.TrimSpace(input.Stat)

	output := schema.OutputMode(strings.ToLower(input.Output))
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	cfg.Workers = input.Workers
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	cfg.BatchSize = input.BatchSize
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	cfg.MaxFetchPages = input.MaxFetchPages
	if cfg.MaxFetchPages <= 0 {
		cfg.MaxFetchPages = DefaultMaxFetchPages
	}

	cfg.GridPath = input.GridPath
	cfg.XSLGModel = input.XSLGModel
	cfg.XWOBAModel = input.XWOBAModel

	cfg.UseColors = parseYesNo(input.Color, isTerminal())
	cfg.Verbose = input.Verbose
	cfg.Width = input.Width

	SetVerbose(cfg.Verbose)
	return nil
}

// parseYesNo interprets a yes/no/auto setting with a fallback default.
func parseYesNo(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "on", "1":
		return true
	case "no", "false", "off", "0":
		return false
	default:
		return def
	}
}

func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
