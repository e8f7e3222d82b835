// Package query implements the constmapper command: it loads a table document
// and answers a conversion or a pattern query against it.
package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nanahuse/constmapper"
	"github.com/nanahuse/constmapper/meta"
	"github.com/nanahuse/constmapper/run"
	"github.com/nanahuse/constmapper/tablefile"
	"github.com/nanahuse/constmapper/tlog"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Exit codes of the command
const (
	ExitUsage    = 2
	ExitNotFound = 3
)

// Config contains the query parameters
type Config struct {
	Table   string   // path to the table document
	From    string   // name of the key column
	To      string   // name of the result column
	Key     string   // key, parsed as a value of the From column
	Pattern []string // one entry per column, see tablefile.ParseKey
	Index   bool     // build the secondary index
	Watch   bool     // answer again every time the table document changes
}

type exitError struct {
	err  error
	code int
}

func (e exitError) Error() string {
	return e.err.Error()
}

func (e exitError) Unwrap() error {
	return e.err
}

// ExitCode fulfils run.WithExitCode
func (e exitError) ExitCode() int {
	return e.code
}

func usageError(format string, args ...any) error {
	return exitError{err: fmt.Errorf(format, args...), code: ExitUsage}
}

// Main handles the command line and runs the query
func Main(args []string) {
	run.Server(func(ctx context.Context) error {
		var config Config
		pflag.StringVar(&config.Table, "table", "", "table document (JSON)")
		pflag.StringVar(&config.From, "from", "", "name of the key column")
		pflag.StringVar(&config.To, "to", "", "name of the result column")
		pflag.StringVar(&config.Key, "key", "", "key to look up in the --from column")
		pflag.StringSliceVar(&config.Pattern, "pattern", nil, "comma-separated pattern, one entry per column; ? returns the column, * matches anything")
		pflag.BoolVar(&config.Index, "index", false, "index the table")
		pflag.BoolVar(&config.Watch, "watch", false, "reload the table and repeat the query when the document changes")
		_ = pflag.CommandLine.Parse(args[1:])

		return Run(ctx, config, os.Stdout)
	})
}

// Validate checks that the configuration describes exactly one query
func (c Config) Validate() error {
	if c.Table == "" {
		return usageError("--table is required")
	}
	conversion := c.From != "" || c.To != "" || c.Key != ""
	switch {
	case conversion && len(c.Pattern) > 0:
		return usageError("--pattern cannot be combined with --from, --to or --key")
	case conversion && (c.From == "" || c.To == ""):
		return usageError("--from and --to are required for a conversion")
	case !conversion && len(c.Pattern) == 0:
		return usageError("either --pattern or --from, --to and --key is required")
	}
	return nil
}

// Run answers the query and writes the answer to w, one line per answer
func Run(ctx context.Context, config Config, w io.Writer) error {
	if err := config.Validate(); err != nil {
		return err
	}

	logger := tlog.Get(ctx)
	opts := []constmapper.Option{constmapper.WithLogger(logger)}
	if config.Index {
		opts = append(opts, constmapper.Indexed)
	}

	if !config.Watch {
		m, err := tablefile.LoadFile(config.Table, opts...)
		if err != nil {
			return err
		}
		return answer(m, config, w)
	}

	return tablefile.Watch(ctx, config.Table, func(m *constmapper.Mapper[any]) error {
		err := answer(m, config, w)
		if code := run.ExitCode(err); code == ExitNotFound || code == ExitUsage {
			// the next version of the table may answer
			logger.Warn("Query failed", zap.Error(err))
			return nil
		}
		return err
	}, opts...)
}

func answer(m *constmapper.Mapper[any], config Config, w io.Writer) error {
	var values []any
	var err error
	if len(config.Pattern) > 0 {
		values, err = matchPattern(m, config.Pattern)
	} else {
		values, err = convert(m, config)
	}
	if errors.Is(err, constmapper.ErrNotFound) {
		return exitError{err: err, code: ExitNotFound}
	}
	if err != nil {
		return err
	}

	fields := make([]string, 0, len(values))
	for _, v := range values {
		fields = append(fields, fmt.Sprint(v))
	}
	_, err = fmt.Fprintln(w, strings.Join(fields, "\t"))
	return err
}

func column(s meta.Struct, name string) (int, error) {
	i, ok := s.ColumnByName(name)
	if !ok {
		return 0, usageError("table has no column %q", name)
	}
	return i, nil
}

func convert(m *constmapper.Mapper[any], config Config) ([]any, error) {
	s := m.Schema()
	from, err := column(s, config.From)
	if err != nil {
		return nil, err
	}
	to, err := column(s, config.To)
	if err != nil {
		return nil, err
	}
	key, err := tablefile.ParseValue(s.Column(from), config.Key)
	if err != nil {
		return nil, usageError("%w", err)
	}
	v, err := m.To(to, from, key)
	if err != nil {
		return nil, err
	}
	return []any{v}, nil
}

func matchPattern(m *constmapper.Mapper[any], fields []string) ([]any, error) {
	s := m.Schema()
	pattern, err := tablefile.ParsePattern(s, fields)
	if err != nil {
		return nil, usageError("%w", err)
	}
	for _, key := range pattern {
		if _, ok := key.(constmapper.Result); ok {
			v, err := m.PatternMatch(pattern...)
			if err != nil {
				return nil, err
			}
			if values, ok := v.([]any); ok {
				return values, nil
			}
			return []any{v}, nil
		}
	}
	// no Result entries, print the whole row
	row, err := m.MatchRow(pattern...)
	if err != nil {
		return nil, err
	}
	return s.Values(row), nil
}
