package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/brewmaster/internal/testutil"
)

const staffHCL = `
Employees {
  Cook "gordon" {
    catchphrase = "Order up!"
    years       = 20
  }

  Waiter "ann" {
    tips = var.tips
  }
}
`

// runApp runs an App with debug logging captured in a buffer and returns
// what it printed.
func runApp(t *testing.T, cfg Config, opts ...Option) (string, *testutil.SafeBuffer, error) {
	t.Helper()

	logs := &testutil.SafeBuffer{}
	testutil.DumpLogsOnCleanup(t, logs)

	cfg.LogLevel = "debug"
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a, err := NewApp(out, appConfig, append([]Option{WithLogWriter(logs)}, opts...)...)
	require.NoError(t, err)

	err = a.Run(context.Background())
	return out.String(), logs, err
}
