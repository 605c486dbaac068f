package config

// Default values.
const (
	DefaultTodoFile   = "todos.json"
	DefaultTimeFormat = "2006-01-02 15:04:05"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
)

// Flag names shared with the command tree.
const (
	FlagFile          = "file"
	FlagTimeFormat    = "time-format"
	FlagNoColor       = "no-color"
	FlagLogLevel      = "log-level"
	FlagLogFormat     = "log-format"
	FlagLogTimestamps = "log-timestamps"
)

// Config holds the full configuration for todo.
type Config struct {
	// Paths
	TodoFile string `toml:"todo_file"`

	// Output
	TimeFormat string `toml:"time_format"`
	Color      bool   `toml:"color"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Config files that were applied, lowest priority first (computed)
	Files []string `toml:"-"`

	// Working directory used to resolve relative paths (computed)
	ProjectRoot string `toml:"-"`
}

// setDefaults fills cfg with the built-in defaults.
func setDefaults(cfg *Config) {
	cfg.TodoFile = DefaultTodoFile
	cfg.TimeFormat = DefaultTimeFormat
	cfg.Color = true
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
