package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers the global configuration flags on fs.
// Defaults are left empty: only flags the user sets override lower layers.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagFile, "f", "", "Path to task file (default \""+DefaultTodoFile+"\")")
	fs.String(FlagTimeFormat, "", "Go time layout for created timestamps")
	fs.Bool(FlagNoColor, false, "Disable colored output")
	fs.String(FlagLogLevel, "", "Log level (debug|info|warn|error)")
	fs.String(FlagLogFormat, "", "Log format (text|json|logfmt)")
	fs.Bool(FlagLogTimestamps, false, "Include timestamps in log output")
}

// applyFlags copies explicitly set flags into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	var err error
	str := func(name string, target *string) {
		if err != nil || !fs.Changed(name) {
			return
		}
		*target, err = fs.GetString(name)
	}
	boolean := func(name string, target *bool, invert bool) {
		if err != nil || !fs.Changed(name) {
			return
		}
		var v bool
		v, err = fs.GetBool(name)
		if invert {
			v = !v
		}
		*target = v
	}

	str(FlagFile, &cfg.TodoFile)
	str(FlagTimeFormat, &cfg.TimeFormat)
	boolean(FlagNoColor, &cfg.Color, true)
	str(FlagLogLevel, &cfg.LogLevel)
	str(FlagLogFormat, &cfg.LogFormat)
	boolean(FlagLogTimestamps, &cfg.LogTimestamps, false)

	return err
}
