package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"iot-simulator/controller"
	"iot-simulator/log"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is read from the working directory when -config is not given.
	DefaultConfigFile = "config.toml"

	// DefaultLogFilename is empty: no log file unless -log or the config file names one.
	DefaultLogFilename = ""
	DefaultLogLevel    = "info"
)

// DeviceConfig is one row of the device table.
type DeviceConfig struct {
	ID   string `toml:"id" yaml:"id"`
	Name string `toml:"name" yaml:"name"`
}

// Config holds every setting of the simulator.
type Config struct {
	Debug bool `toml:"debug" yaml:"debug"`
	Log   struct {
		Filename string `toml:"filename" yaml:"filename"`
		Level    string `toml:"level" yaml:"level"`
	} `toml:"log" yaml:"log"`
	Devices []DeviceConfig `toml:"devices" yaml:"devices"`
}

// DefaultDevices returns the household shipped with the simulator.
func DefaultDevices() []DeviceConfig {
	return []DeviceConfig{
		{ID: "1", Name: "Lâmpada da Sala"},
		{ID: "2", Name: "Ar-Condicionado"},
		{ID: "3", Name: "Câmera de Segurança"},
		{ID: "4", Name: "Computador"},
		{ID: "5", Name: "Roteador Wi-Fi"},
	}
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	cfg := &Config{
		Debug:   false,
		Devices: DefaultDevices(),
	}
	cfg.Log.Filename = DefaultLogFilename
	cfg.Log.Level = DefaultLogLevel
	return cfg
}

// LoadConfig resolves settings in this order:
// 1. the file at configPath, if given
// 2. DefaultConfigFile in the working directory, if present
// 3. defaults
//
// A file that lists devices replaces the default table.
func LoadConfig(configPath string) (*Config, error) {
	config := NewConfig()

	filePath := configPath
	if filePath == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return config, nil
		}
		filePath = DefaultConfigFile
	}

	fileConfig := NewConfig()
	fileConfig.Devices = nil
	if err := decodeFile(filePath, fileConfig); err != nil {
		return nil, err
	}
	if len(fileConfig.Devices) == 0 {
		fileConfig.Devices = config.Devices
	}
	return fileConfig, nil
}

func decodeFile(path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q (use .toml, .yaml or .yml)", ext)
	}
	return nil
}

// Validate checks the device table and the log level.
func (c *Config) Validate() error {
	if len(c.Devices) == 0 {
		return controller.ErrEmptyRegistry
	}
	seen := make([]string, 0, len(c.Devices))
	for i, d := range c.Devices {
		if d.ID == "" || d.Name == "" {
			return controller.InvalidEntryError{Index: i, Entry: controller.Entry(d)}
		}
		if slices.Contains(seen, d.ID) {
			return controller.DuplicateIDError{ID: d.ID}
		}
		seen = append(seen, d.ID)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Entries converts the device table into registry rows.
func (c *Config) Entries() []controller.Entry {
	entries := make([]controller.Entry, 0, len(c.Devices))
	for _, d := range c.Devices {
		entries = append(entries, controller.Entry(d))
	}
	return entries
}

// ApplyCommandLineArgs overrides settings with flags given on the command line.
func (c *Config) ApplyCommandLineArgs(args CommandLineArgs) {
	if args.DebugSpecified {
		c.Debug = args.Debug
	}
	if args.LogFilenameSpecified {
		c.Log.Filename = args.LogFilename
	}
	if args.LogLevelSpecified {
		c.Log.Level = args.LogLevel
	}
}

// CommandLineArgs holds flag values and whether each flag was given.
type CommandLineArgs struct {
	ConfigFile      string
	ConfigSpecified bool

	Debug          bool
	DebugSpecified bool

	LogFilename          string
	LogFilenameSpecified bool
	LogLevel             string
	LogLevelSpecified    bool
}

// ParseCommandLineArgs parses args (without the program name).
func ParseCommandLineArgs(args []string) (CommandLineArgs, error) {
	var parsed CommandLineArgs

	fs := flag.NewFlagSet("iot-simulator", flag.ContinueOnError)
	fs.StringVar(&parsed.ConfigFile, "config", "", "path to a TOML or YAML config file")
	fs.BoolVar(&parsed.Debug, "debug", false, "enable debug logging to stderr")
	fs.StringVar(&parsed.LogFilename, "log", DefaultLogFilename, "log file name (empty: no log file)")
	fs.StringVar(&parsed.LogLevel, "log-level", DefaultLogLevel, "log level (trace, debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return CommandLineArgs{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "config":
			parsed.ConfigSpecified = true
		case "debug":
			parsed.DebugSpecified = true
		case "log":
			parsed.LogFilenameSpecified = true
		case "log-level":
			parsed.LogLevelSpecified = true
		}
	})

	return parsed, nil
}
