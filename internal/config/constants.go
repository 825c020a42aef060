package config

import "time"

// Base application details
const AppName = "tidebug"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"   // Active theme file
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "tidebug.log"

// UI Layout
const StatusBarHeight = 1
const DefaultBreakpointsWidth = 40
const MinBreakpointsWidth = 20

// Status Bar
const MessageTimeout = 4 * time.Second

// Exception pausing control styles
const (
	ExceptionPausingInline   = "inline"
	ExceptionPausingDropdown = "dropdown"
)

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = false
