// Package logging provides the process-wide diagnostic log for the bridge
// and the flat API using zap.
//
// The Facility is a zapcore.Core whose output can be reconfigured at any
// time. Loggers obtained from it before a reconfiguration follow the new
// settings, which is what lets a foreign caller switch debug logging on and
// off through the C surface while handles are live.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// TimeLayout is the timestamp format of every log line.
const TimeLayout = "2006-01-02 15:04:05.000"

// Config selects what the facility writes and where.
type Config struct {
	// EnableDebug turns the facility on at debug level.
	EnableDebug bool `yaml:"enableDebug"`
	// Level turns the facility on at the given level when EnableDebug is
	// false. Empty leaves it off.
	Level          string `yaml:"level"`
	LogFilePath    string `yaml:"logFilePath"`
	MaxFileSizeMB  int    `yaml:"maxFileSizeMb"`
	MaxBackupFiles int    `yaml:"maxBackupFiles"`
	MaxAgeDays     int    `yaml:"maxAgeDays"`
	Compress       bool   `yaml:"compress"`
}

// Facility is a reconfigurable zap core. The zero value is not usable; use
// New.
type Facility struct {
	mu       sync.Mutex
	console  zapcore.WriteSyncer
	core     zapcore.Core
	file     *lumberjack.Logger
	degraded bool
}

// Option configures a Facility.
type Option func(*Facility)

// WithConsole replaces stderr as the console sink.
func WithConsole(w io.Writer) Option {
	return func(f *Facility) { f.console = zapcore.Lock(zapcore.AddSync(w)) }
}

// New returns a disabled facility.
func New(opts ...Option) *Facility {
	f := &Facility{console: zapcore.Lock(os.Stderr)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func encoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(TimeLayout)
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeCaller = fileCaller
	cfg.ConsoleSeparator = " "
	cfg.StacktraceKey = ""
	return zapcore.NewConsoleEncoder(cfg)
}

// fileCaller writes the caller as file.go:line without its directory.
func fileCaller(c zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	if !c.Defined {
		enc.AppendString("undefined")
		return
	}
	enc.AppendString(filepath.Base(c.File) + ":" + strconv.Itoa(c.Line))
}

// Init applies cfg, closing any file opened by a previous Init. When the
// file cannot be opened the facility logs to the console only and
// Degraded reports true.
func (f *Facility) Init(cfg Config) error {
	lvl := zapcore.DebugLevel
	if !cfg.EnableDebug && cfg.Level != "" {
		var err error
		if lvl, err = zapcore.ParseLevel(cfg.Level); err != nil {
			return fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeLocked()
	if !cfg.EnableDebug && cfg.Level == "" {
		return nil
	}

	enc := encoder()
	cores := []zapcore.Core{zapcore.NewCore(enc, f.console, lvl)}
	var openErr error
	if cfg.LogFilePath != "" {
		if openErr = checkWritable(cfg.LogFilePath); openErr == nil {
			f.file = &lumberjack.Logger{
				Filename:   cfg.LogFilePath,
				MaxSize:    cfg.MaxFileSizeMB,
				MaxBackups: cfg.MaxBackupFiles,
				MaxAge:     cfg.MaxAgeDays,
				Compress:   cfg.Compress,
			}
			cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(f.file), lvl))
		}
	}
	f.core = zapcore.NewTee(cores...)

	if openErr != nil {
		f.degraded = true
		ent := zapcore.Entry{Level: zapcore.WarnLevel, Time: time.Now(), Message: "log_file_unavailable"}
		_ = f.core.Write(ent, []zapcore.Field{zap.String("path", cfg.LogFilePath), zap.Error(openErr)})
	}
	return nil
}

// checkWritable makes sure path can be opened for appending before lumberjack,
// which opens lazily, is handed the file.
func checkWritable(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
	}
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	return fh.Close()
}

// Cleanup closes the log file and turns the facility off. Calling it more
// than once is harmless.
func (f *Facility) Cleanup() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeLocked()
}

func (f *Facility) closeLocked() {
	if f.core != nil {
		_ = f.core.Sync()
	}
	if f.file != nil {
		_ = f.file.Close()
	}
	f.core = nil
	f.file = nil
	f.degraded = false
}

// Degraded reports whether the last Init fell back to console-only output.
func (f *Facility) Degraded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded
}

// Logger returns a logger bound to f. It keeps following f across Init and
// Cleanup.
func (f *Facility) Logger() *zap.Logger {
	return zap.New(f, zap.AddCaller())
}

func (f *Facility) Enabled(lvl zapcore.Level) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.core != nil && f.core.Enabled(lvl)
}

func (f *Facility) With(fields []zapcore.Field) zapcore.Core {
	return &bound{f: f, fields: fields}
}

func (f *Facility) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if f.Enabled(ent.Level) {
		return ce.AddCore(ent, f)
	}
	return ce
}

func (f *Facility) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.core == nil {
		return nil
	}
	return f.core.Write(ent, fields)
}

func (f *Facility) Sync() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.core == nil {
		return nil
	}
	return f.core.Sync()
}

// bound carries fields added with Logger.With while still resolving the
// facility's current core on every write.
type bound struct {
	f      *Facility
	fields []zapcore.Field
}

func (b *bound) Enabled(lvl zapcore.Level) bool { return b.f.Enabled(lvl) }

func (b *bound) With(fields []zapcore.Field) zapcore.Core {
	all := make([]zapcore.Field, 0, len(b.fields)+len(fields))
	all = append(all, b.fields...)
	return &bound{f: b.f, fields: append(all, fields...)}
}

func (b *bound) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if b.Enabled(ent.Level) {
		return ce.AddCore(ent, b)
	}
	return ce
}

func (b *bound) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(b.fields)+len(fields))
	all = append(all, b.fields...)
	return b.f.Write(ent, append(all, fields...))
}

func (b *bound) Sync() error { return b.f.Sync() }

var std = New()

// Default returns the process-wide facility.
func Default() *Facility { return std }

// Init configures the process-wide facility.
func Init(cfg Config) error { return std.Init(cfg) }

// Cleanup turns the process-wide facility off.
func Cleanup() { std.Cleanup() }

// L returns a logger bound to the process-wide facility.
func L() *zap.Logger { return std.Logger() }
