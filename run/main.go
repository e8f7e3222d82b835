// Package run runs the top-level task of a command with a logger configured
// from the command line and signal handling.
package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nanahuse/constmapper/tlog"
	"github.com/ridge/must/v2"
	"github.com/ridge/parallel"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var fs = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)

func init() {
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.String("log-format", "", "Log format (json|text)")
	fs.String("log-color", "", "Colored logs (yes|no|auto)")
	fs.String("log-output", "", "Log destination: a file path, stdout or stderr (default)")
	fs.BoolP("verbose", "v", false, "Enable verbose (debug level) messages")
	// Hide usage while parsing the command line here, will be covered by a regular command line parsing.
	fs.Usage = func() {}

	// Add options help to the main command-line parser.
	pflag.CommandLine.AddFlagSet(fs)
}

// Tool runs the top-level task of a command, watching for signals.
//
// The context passed to the task contains a logger. If an interruption or
// termination signal arrives, the context is closed.
//
// Tool does not return. It exits with code 0 if the task returns nil, with
// the code of an error implementing WithExitCode, and with code 1 for other
// errors.
//
//	func main() {
//	    run.Tool(func(ctx context.Context) error {
//	        m, err := tablefile.LoadFile(path)
//	        if err != nil {
//	            return err
//	        }
//	        ...
//	    })
//	}
func Tool(task func(ctx context.Context) error) {
	// os.Exit doesn't run deferred functions, so we'll call it in the first
	// defer which runs last
	var err error
	defer func() {
		if err != nil {
			os.Exit(ExitCode(err))
		}
	}()

	ctx := rootContext()

	err = parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		spawn("main", parallel.Exit, task)
		spawn("signals", parallel.Exit, func(ctx context.Context) error {
			return waitForSignal(ctx, stopSignals...)
		})
		return nil
	})
	if err != nil {
		tlog.Get(ctx).Error("Error", zap.Error(err))
	}
}

// Server runs a long-running task similar to Tool.
//
// The difference is in signal handling: if the task exits with (possibly
// wrapped) context.Canceled while handling the signal, the program exits with
// code 0.
func Server(task func(ctx context.Context) error) {
	Tool(func(ctx context.Context) error {
		err := task(ctx)
		if errors.Is(err, ctx.Err()) {
			return nil
		}
		return err
	})
}

// WithExitCode is an optional interface that can be implemented by an error.
//
// When a (possibly wrapped) error implementing WithExitCode reaches the top
// level, the value returned by the ExitCode method becomes the exit code of the
// process. The default exit code for other errors is 1.
type WithExitCode interface {
	ExitCode() int
}

// ExitCode returns the process exit code for an error returned by a task
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var wec WithExitCode
	if errors.As(err, &wec) {
		return wec.ExitCode()
	}
	return 1
}

// cliConfig returns the Config derived from the command line
func cliConfig(args []string) (tlog.Config, error) {
	if err := fs.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return tlog.Config{}, err
	}

	config := tlog.Config{
		Name:   filepath.Base(os.Args[0]),
		Format: tlog.FormatText,
		Color:  tlog.ColorAuto,
	}
	if fs.Lookup("log-format").Changed {
		config.Format = tlog.Format(must.OK1(fs.GetString("log-format")))
		if config.Format != tlog.FormatJSON && config.Format != tlog.FormatText {
			return tlog.Config{}, fmt.Errorf("invalid --log-format value %q", config.Format)
		}
	}
	if fs.Lookup("log-color").Changed {
		colorArg := must.OK1(fs.GetString("log-color"))
		switch colorArg {
		case "", "auto":
			config.Color = tlog.ColorAuto
		case "yes":
			config.Color = tlog.ColorYes
		case "no":
			config.Color = tlog.ColorNo
		default:
			return tlog.Config{}, fmt.Errorf("invalid --log-color value %q", colorArg)
		}
	}
	config.Output = must.OK1(fs.GetString("log-output"))
	config.Verbose = must.OK1(fs.GetBool("verbose"))
	return config, nil
}

func rootContext() context.Context {
	config, err := cliConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return tlog.WithLogger(context.Background(), tlog.New(config))
}
