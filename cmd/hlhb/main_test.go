package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/evdnx/hlhb/logger"
	"github.com/evdnx/hlhb/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCandles(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("date,open,high,low,close,volume\n")
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	prev := 2000.0
	for i := 0; i < n; i++ {
		x := float64(i)
		c := 2000 + 160*math.Sin(x/40) + 60*math.Sin(x/6)
		fmt.Fprintf(&b, "%s,%f,%f,%f,%f,5\n",
			start.Add(time.Duration(i)*3*time.Minute).Format(time.RFC3339),
			prev, math.Max(prev, c)+6, math.Min(prev, c)-6, c)
		prev = c
	}
	path := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func TestSignalsCommand(t *testing.T) {
	path := writeCandles(t, 120)

	out, err := run(t, "signals", "--candles", path, "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "120 of 120 candles shown")
	assert.Contains(t, out, "enter_long")

	out, err = run(t, "signals", "--candles", path)
	require.NoError(t, err)
	assert.Contains(t, out, "of 120 candles shown")
}

func TestSignalsCommandExport(t *testing.T) {
	path := writeCandles(t, 120)
	out := filepath.Join(t.TempDir(), "analysed.csv")

	_, err := run(t, "signals", "--candles", path, "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 121)
	assert.Equal(t, "date,open,high,low,close,volume,adx,ema10,ema5,hl2,rsi,enter_long,enter_short,exit_long,exit_short", lines[0])
	// row 73 is a long entry and so also a short exit
	assert.True(t, strings.HasSuffix(lines[74], ",true,false,false,true"), lines[74])
	assert.True(t, strings.HasSuffix(lines[91], ",false,true,true,false"), lines[91])
}

func TestSignalsCommandSyncsLogger(t *testing.T) {
	mockLog := testutils.NewMockLogger()
	var level zapcore.Level
	opts := &options{newLogger: func(l zapcore.Level) (logger.Logger, error) {
		level = l
		return mockLog, nil
	}}
	cmd := newRootCmdWith(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-v", "signals", "--candles", writeCandles(t, 80)})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, zapcore.DebugLevel, level)
	assert.Equal(t, 1, mockLog.Syncs())
	assert.Equal(t, 1, mockLog.Count("analysis_complete"))
}

func TestSignalsCommandErrors(t *testing.T) {
	_, err := run(t, "signals")
	assert.Error(t, err)

	_, err = run(t, "signals", "--candles", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestStoplossCommand(t *testing.T) {
	out, err := run(t, "stoploss", "--pair", "ETH/USDT", "--profit", "0.03")
	require.NoError(t, err)
	assert.Contains(t, out, "stoploss=-1 (keep initial stop)")

	out, err = run(t, "stoploss", "--pair", "ETH/USDT", "--profit", "0.1")
	require.NoError(t, err)
	assert.Contains(t, out, "stoploss=0.05\n")

	out, err = run(t, "stoploss", "--pair", "BTC/USDT", "--profit", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "stoploss=0.08\n")
}

func TestStoplossCommandStopPrice(t *testing.T) {
	out, err := run(t, "stoploss", "--pair", "ETH/USDT", "--profit", "0.1", "--rate", "110")
	require.NoError(t, err)
	assert.Contains(t, out, "stoploss=0.05 stop_price=104.5\n")

	out, err = run(t, "stoploss", "--pair", "BTC/USDT", "--profit", "0.5", "--rate", "200", "--side", "short")
	require.NoError(t, err)
	assert.Contains(t, out, "stoploss=0.08 stop_price=216\n")

	out, err = run(t, "stoploss", "--profit", "0.01", "--rate", "110")
	require.NoError(t, err)
	assert.Contains(t, out, "(keep initial stop)")
	assert.NotContains(t, out, "stop_price")

	_, err = run(t, "stoploss", "--side", "flat")
	assert.Error(t, err)
}

func TestLeverageCommand(t *testing.T) {
	out, err := run(t, "leverage", "--pair", "ETH/USDT", "--max", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "leverage=5 clamped=3")

	out, err = run(t, "leverage", "--pair", "BTC/USDT", "--side", "short")
	require.NoError(t, err)
	assert.Contains(t, out, "leverage=2 clamped=2")

	_, err = run(t, "leverage", "--side", "sideways")
	assert.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("no_such_key: 1\n"), 0o600))
	_, err := run(t, "--config", bad, "stoploss", "--profit", "0.1")
	assert.Error(t, err)

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("can_short: false\n"), 0o600))
	_, err = run(t, "--config", good, "stoploss", "--profit", "0.1")
	assert.NoError(t, err)
}
