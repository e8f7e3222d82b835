// Package test contains helpers shared by the tests of constmapper packages
package test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nanahuse/constmapper/tlog"
	"github.com/ridge/parallel"
	"github.com/stretchr/testify/require"
)

// Context returns a context whose logger writes to the test log, so reload
// warnings and construction messages show up next to the failing test
func Context(t *testing.T) context.Context {
	return tlog.WithLogger(context.Background(), tlog.NewForTesting(t))
}

// ContextWithTimeout is Context closed with context.DeadlineExceeded after
// timeout, for tests that wait for file events
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(Context(t), timeout)
	t.Cleanup(cancel)
	return ctx
}

// GroupWithTimeout returns a group for long-running tasks such as
// tablefile.Watch. The group is closed when the test finishes, and the test
// fails if a task ended with an error other than context.Canceled.
func GroupWithTimeout(t *testing.T, timeout time.Duration) *parallel.Group {
	group := parallel.NewGroup(ContextWithTimeout(t, timeout))
	t.Cleanup(func() {
		group.Exit(nil)
		if err := group.Wait(); !errors.Is(err, context.Canceled) {
			require.NoError(t, err)
		}
	})
	return group
}

// WriteFile writes content to a file in a temporary directory of the test
// and returns the file path
func WriteFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
