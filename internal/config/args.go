package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/utkarsh5026/budgetwc/internal/display"
)

// UsageError is a command-line mistake. The CLI prints it after the
// program name, follows it with the --help hint and exits with status 1.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// valueOptions take an argument, either as --name=value or --name value.
var valueOptions = map[string]bool{
	"workers": true,
	"queue":   true,
	"rate":    true,
	"burst":   true,
	"config":  true,
	"color":   true,
}

// Parse reads the command-line arguments (without the program name).
//
// Options come first; the first argument that does not start with '-', or
// everything after "--", is a file. A lone "-" is treated as a file name.
// Values given on the command line win over a --config file.
func Parse(args []string) (Config, error) {
	cfg := Default()
	set := make(map[string]bool)
	var configPath string

	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			break
		}

		if !strings.HasPrefix(arg, "--") {
			if err := parseShort(arg[1:], &cfg.Fields); err != nil {
				return cfg, err
			}
			continue
		}

		name, value, hasValue := strings.Cut(arg[2:], "=")
		if valueOptions[name] && !hasValue {
			if i+1 >= len(args) {
				return cfg, usageErrorf("option '--%s' requires an argument", name)
			}
			i++
			value = args[i]
		} else if !valueOptions[name] && hasValue {
			return cfg, usageErrorf("option '--%s' doesn't allow an argument", name)
		}

		var err error
		switch name {
		case "help":
			cfg.ShowHelp = true
			return cfg, nil
		case "lines":
			cfg.Fields.Lines = true
		case "words":
			cfg.Fields.Words = true
		case "bytes":
			cfg.Fields.Bytes = true
		case "chars":
			cfg.Fields.Chars = true
		case "workers":
			cfg.Workers, err = parseInt(name, value)
		case "queue":
			cfg.QueueCapacity, err = parseInt(name, value)
		case "burst":
			cfg.Burst, err = parseInt(name, value)
		case "rate":
			cfg.RateLimit, err = strconv.ParseFloat(value, 64)
			if err != nil {
				err = usageErrorf("invalid argument '%s' for '--rate'", value)
			}
		case "config":
			configPath = value
		case "color":
			cfg.Color = value
		case "table":
			cfg.Table = true
		case "progress":
			cfg.Progress = true
		case "verbose":
			cfg.Verbose = true
		case "lock-threads":
			cfg.LockThreads = true
		default:
			return cfg, usageErrorf("unrecognized option '%s'", arg)
		}
		if err != nil {
			return cfg, err
		}
		set[name] = true
	}
	cfg.Files = append([]string(nil), args[i:]...)

	if configPath != "" {
		fc, err := LoadFile(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = merge(cfg, fc, set)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, &UsageError{Msg: err.Error()}
	}
	return cfg, nil
}

// parseShort handles a cluster of single-letter flags such as "lwc".
func parseShort(letters string, f *display.Fields) error {
	for _, c := range letters {
		switch c {
		case 'l':
			f.Lines = true
		case 'w':
			f.Words = true
		case 'c':
			f.Bytes = true
		case 'm':
			f.Chars = true
		default:
			return usageErrorf("invalid option -- '%c'", c)
		}
	}
	return nil
}

func parseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, usageErrorf("invalid argument '%s' for '--%s'", value, name)
	}
	return n, nil
}

// merge layers the file config under the options given on the command line.
func merge(cli Config, fc *FileConfig, set map[string]bool) Config {
	out := Default()
	fc.Apply(&out)

	out.Fields = cli.Fields
	out.Files = cli.Files
	out.Verbose = cli.Verbose
	out.Table = out.Table || cli.Table
	out.Progress = out.Progress || cli.Progress
	out.LockThreads = out.LockThreads || cli.LockThreads

	if set["workers"] {
		out.Workers = cli.Workers
	}
	if set["queue"] {
		out.QueueCapacity = cli.QueueCapacity
	}
	if set["rate"] {
		out.RateLimit = cli.RateLimit
	}
	if set["burst"] {
		out.Burst = cli.Burst
	}
	if set["color"] {
		out.Color = cli.Color
	}
	return out
}
