package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type buffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (b *buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

func TestDisabledByDefault(t *testing.T) {
	var out buffer
	f := New(WithConsole(&out))
	f.Logger().Info("hidden")
	assert.Empty(t, out.String())
}

func TestLineFormat(t *testing.T) {
	var out buffer
	f := New(WithConsole(&out))
	require.NoError(t, f.Init(Config{EnableDebug: true}))
	defer f.Cleanup()

	f.Logger().Debug("md_api_created")
	line := strings.TrimSpace(out.String())
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3} DEBUG logger_test\.go:\d+ md_api_created$`), line)
}

func TestCallerWithoutDirectory(t *testing.T) {
	ent := zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Date(2024, 10, 15, 9, 0, 0, 0, time.Local),
		Message: "spi_registered",
		Caller:  zapcore.NewEntryCaller(0, "/src/go-ctp/internal/flat/api.go", 42, true),
	}
	buf, err := encoder().EncodeEntry(ent, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-10-15 09:00:00.000 INFO api.go:42 spi_registered\n", buf.String())

	ent.Caller = zapcore.EntryCaller{}
	buf, err = encoder().EncodeEntry(ent, nil)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "api.go")
}

func TestLevelConfig(t *testing.T) {
	var out buffer
	f := New(WithConsole(&out))
	require.NoError(t, f.Init(Config{Level: "warn"}))
	defer f.Cleanup()

	log := f.Logger()
	log.Info("skipped")
	log.Warn("kept")
	assert.NotContains(t, out.String(), "skipped")
	assert.Contains(t, out.String(), "kept")

	assert.Error(t, f.Init(Config{Level: "loud"}))
}

func TestLoggerFollowsReinit(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	f := New(WithConsole(&buffer{}))
	log := f.Logger().With()
	require.NoError(t, f.Init(Config{EnableDebug: true, LogFilePath: first}))
	log.Debug("one")

	require.NoError(t, f.Init(Config{EnableDebug: true, LogFilePath: second}))
	log.Debug("two")
	f.Cleanup()

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(a), "one")
	assert.NotContains(t, string(a), "two")
	assert.Contains(t, string(b), "two")
	assert.NotContains(t, string(b), "one")
}

func TestCleanupTwice(t *testing.T) {
	var out buffer
	f := New(WithConsole(&out))
	require.NoError(t, f.Init(Config{EnableDebug: true, LogFilePath: filepath.Join(t.TempDir(), "a.log")}))
	f.Cleanup()
	f.Cleanup()

	f.Logger().Info("after")
	assert.NotContains(t, out.String(), "after")
}

func TestUnopenableFileDegrades(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	var out buffer
	f := New(WithConsole(&out))
	require.NoError(t, f.Init(Config{EnableDebug: true, LogFilePath: filepath.Join(blocker, "sub", "x.log")}))
	defer f.Cleanup()

	assert.True(t, f.Degraded())
	assert.Equal(t, 1, strings.Count(out.String(), "log_file_unavailable"))

	f.Logger().Info("still_logged")
	assert.Contains(t, out.String(), "still_logged")

	require.NoError(t, f.Init(Config{EnableDebug: true}))
	assert.False(t, f.Degraded())
}

func TestBoundFields(t *testing.T) {
	var out buffer
	f := New(WithConsole(&out))
	log := f.Logger().Named("flat").With()
	child := log.With()
	require.NoError(t, f.Init(Config{EnableDebug: true}))
	defer f.Cleanup()

	child.Sugar().Debugw("spi_registered", "handle", 7)
	assert.Contains(t, out.String(), `spi_registered {"handle": 7}`)
	assert.Contains(t, out.String(), "flat")
}

func TestDefaultFacility(t *testing.T) {
	assert.Same(t, Default(), std)
	require.NoError(t, Init(Config{}))
	Cleanup()
	assert.NotNil(t, L())
}
