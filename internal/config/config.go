// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidebug/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
	Panes  PanesConfig   `toml:"panes"`
	// Plugins holds [plugins.<name>] tables, read by plugins at startup.
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// PluginValue returns a key of a plugin's config table.
func (c *Config) PluginValue(pluginName, key string) (interface{}, bool) {
	table, ok := c.Plugins[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// EditorConfig holds source view settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
	StatusBarHeight int  `toml:"status_bar_height"`
}

// PanesConfig holds breakpoint pane settings.
type PanesConfig struct {
	BreakpointsWidth int `toml:"breakpoints_width"`
	// ExceptionPausing is "inline" (radio list under the header) or
	// "dropdown" (a single "Pause on..." trigger).
	ExceptionPausing string `toml:"exception_pausing"`
	ShowSnippets     *bool  `toml:"show_snippets"`
}

// Snippets reports whether breakpoint rows show the source line.
func (p PanesConfig) Snippets() bool {
	return p.ShowSnippets == nil || *p.ShowSnippets
}

var (
	loadedConfig *Config
	mu           sync.RWMutex
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
		Panes: PanesConfig{
			BreakpointsWidth: DefaultBreakpointsWidth,
			ExceptionPausing: ExceptionPausingInline,
		},
	}
}

// DefaultPath returns ~/.config/tidebug/config.toml, or "" if the user
// config dir is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// ThemesDir returns the directory user theme files are read from.
func ThemesDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, ThemesDirName)
}

// loadFromFile decodes the TOML file at filePath over cfg. A missing file
// is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 { // Allow 0
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}

	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok || c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	if c.Panes.BreakpointsWidth < MinBreakpointsWidth {
		c.Panes.BreakpointsWidth = defaults.Panes.BreakpointsWidth
	}
	switch c.Panes.ExceptionPausing {
	case ExceptionPausingInline, ExceptionPausingDropdown:
	default:
		c.Panes.ExceptionPausing = defaults.Panes.ExceptionPausing
	}
}

// Load builds a configuration from defaults, the TOML file at
// configFilePath (DefaultPath when empty) and flag overrides. The returned
// config is always usable; a non-nil error means the file could not be read.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultPath()
	}

	var loadErr error
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			loadErr = err
			cfg = NewDefaultConfig()
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, loadErr
}

// LoadConfig loads the configuration and stores it for Get.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	cfg, err := Load(configFilePath, flags)
	mu.Lock()
	loadedConfig = cfg
	mu.Unlock()
	return cfg, err
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
