// scopez runs concurrent logical threads that activate nested trace
// contexts, and logs from inside each scope so the mirrored ids can be seen
// on every line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/oklog/run"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/peterbourgon/ff/v4/ffval"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zoobzio/scopez"
)

func main() {
	var (
		ctx    = context.Background()
		stderr = os.Stderr
		args   = os.Args[1:]
	)
	err := exec(ctx, stderr, args)
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.As(err, &(run.SignalError{})):
		os.Exit(0)
	case err != nil:
		fmt.Fprintf(stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	threads  int
	depth    int
	detach   bool
	logLevel string
	encoding string
}

func (cfg *config) register(fs *ff.FlagSet) {
	fs.AddFlag(ff.FlagConfig{ShortName: 't', LongName: "threads" /*   */, Value: ffval.NewValueDefault(&cfg.threads, 4) /*                             */, Usage: "number of concurrent logical threads"})
	fs.AddFlag(ff.FlagConfig{ShortName: 'd', LongName: "depth" /*     */, Value: ffval.NewValueDefault(&cfg.depth, 3) /*                               */, Usage: "nested spans activated per thread"})
	fs.AddFlag(ff.FlagConfig{ShortName: 0x0, LongName: "detach" /*    */, Value: ffval.NewValue(&cfg.detach) /*                                        */, Usage: "clear the trace context at the innermost span", NoDefault: true})
	fs.AddFlag(ff.FlagConfig{ShortName: 'l', LongName: "log-level" /* */, Value: ffval.NewEnum(&cfg.logLevel, "info", "debug", "warn", "error") /*    */, Usage: "log level: info, debug, warn, error", Placeholder: "LEVEL"})
	fs.AddFlag(ff.FlagConfig{ShortName: 'e', LongName: "encoding" /*  */, Value: ffval.NewEnum(&cfg.encoding, "console", "json") /*                  */, Usage: "log encoding: console, json", Placeholder: "FORMAT"})
}

func exec(ctx context.Context, stderr io.Writer, args []string) (err error) {
	cfg := &config{}
	fs := ff.NewFlagSet("scopez")
	cfg.register(fs)

	cmd := &ff.Command{
		Name:      "scopez",
		ShortHelp: "activate nested trace contexts and log with mirrored diagnostics",
		Flags:     fs,
	}

	defer func() {
		if errors.Is(err, ff.ErrHelp) {
			fmt.Fprintf(stderr, "\n%s\n", ffhelp.Command(cmd))
			err = nil
		}
	}()

	if err := cmd.Parse(args, ff.WithEnvVarPrefix("SCOPEZ")); err != nil {
		return err
	}

	if cfg.threads <= 0 {
		return fmt.Errorf("threads must be > 0")
	}
	if cfg.depth <= 0 {
		return fmt.Errorf("depth must be > 0")
	}

	logger, err := newLogger(cfg.logLevel, cfg.encoding)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync errors are not actionable

	provider, err := scopez.New(scopez.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	ids := scopez.NewIDGenerator()
	defer ids.Close()

	w := &workload{
		provider: provider,
		ids:      ids,
		threads:  cfg.threads,
		depth:    cfg.depth,
		detach:   cfg.detach,
	}

	var g run.Group

	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			return w.run(ctx)
		}, func(error) {
			cancel()
		})
	}

	{
		g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))
	}

	return g.Run()
}

func newLogger(level, encoding string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	if encoding == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
