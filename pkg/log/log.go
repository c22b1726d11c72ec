// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package log provides the process-wide loggers. Callers grab the global
// logger via L() or S(), or a named sub logger via Logger(name). Sub loggers
// inherit the global configuration unless overridden in InitLoggers.
package log

import (
	"encoding/hex"
	stdlog "log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GlobalConfig defines the global logger configurations.
type GlobalConfig struct {
	Zap                *zap.Config `json:"zap" yaml:"zap"`
	StderrRedirectFile *string     `json:"stderrRedirectFile" yaml:"stderrRedirectFile"`
	RedirectStdLog     bool        `json:"stdLogRedirect" yaml:"stdLogRedirect"`
	EcsIntegration     bool        `json:"ecsIntegration" yaml:"ecsIntegration"`
}

var (
	_logMu       sync.RWMutex
	_globalCfg   GlobalConfig
	_logServeMux = http.NewServeMux()
	_subLoggers  map[string]*zap.Logger

	errSubLoggerName = errors.New("invalid sub logger name")
)

func init() {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapCfg.Level.SetLevel(zap.InfoLevel)
	l, err := zapCfg.Build()
	if err != nil {
		stdlog.Println("Failed to init zap global logger, no zap log will be shown till zap is properly initialized: ", err)
		return
	}
	_logMu.Lock()
	_globalCfg.Zap = &zapCfg
	_subLoggers = make(map[string]*zap.Logger)
	_logMu.Unlock()
	zap.ReplaceGlobals(l)
}

// L wraps zap.L().
func L() *zap.Logger { return zap.L() }

// S wraps zap.S().
func S() *zap.SugaredLogger { return zap.S() }

// Logger returns the sub logger registered with the given name, or the global
// logger if no such sub logger exists.
func Logger(name string) *zap.Logger {
	logger, ok := _subLoggers[name]
	if !ok {
		return L()
	}
	return logger
}

// Hex creates a zap field which logs byte slices in hex format
func Hex(k string, d []byte) zap.Field {
	return zap.String(k, hex.EncodeToString(d))
}

// InitLoggers initializes the global logger and the sub loggers.
func InitLoggers(globalCfg GlobalConfig, subCfgs map[string]GlobalConfig, opts ...zap.Option) error {
	if _, exists := subCfgs["global"]; exists {
		return errSubLoggerName
	}
	_logMu.Lock()
	defer _logMu.Unlock()
	if globalCfg.Zap == nil {
		zapCfg := zap.NewProductionConfig()
		globalCfg.Zap = &zapCfg
	}
	_globalCfg = globalCfg
	if globalCfg.StderrRedirectFile != nil {
		stderrF, err := os.OpenFile(*globalCfg.StderrRedirectFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		if err := redirectStderr(stderrF); err != nil {
			return err
		}
	}

	globalLogger, err := buildLogger(globalCfg, opts...)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(globalLogger)
	if globalCfg.RedirectStdLog {
		zap.RedirectStdLog(globalLogger)
	}

	_subLoggers = make(map[string]*zap.Logger)
	_logServeMux = http.NewServeMux()
	_logServeMux.HandleFunc("/global", globalCfg.Zap.Level.ServeHTTP)
	for name, subCfg := range subCfgs {
		if strings.ContainsAny(name, " \t\n") {
			return errSubLoggerName
		}
		if subCfg.Zap == nil {
			subCfg.Zap = globalCfg.Zap
		}
		subCfg.EcsIntegration = globalCfg.EcsIntegration
		logger, err := buildLogger(subCfg, opts...)
		if err != nil {
			return err
		}
		_subLoggers[name] = logger.Named(name)
		_logServeMux.HandleFunc("/"+name, subCfg.Zap.Level.ServeHTTP)
	}
	return nil
}

// RegisterLevelConfigMux registers the log level handlers on the mux. Each
// logger's level can be read or changed over HTTP at /logging/<name>.
func RegisterLevelConfigMux(root *http.ServeMux) {
	_logMu.Lock()
	root.Handle("/logging/", http.StripPrefix("/logging", _logServeMux))
	_logMu.Unlock()
}

func buildLogger(cfg GlobalConfig, opts ...zap.Option) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Zap != nil {
		zapCfg = *cfg.Zap
	}
	if !cfg.EcsIntegration {
		return zapCfg.Build(opts...)
	}
	core := ecszap.NewCore(
		ecszap.NewDefaultEncoderConfig(),
		zapcore.Lock(os.Stdout),
		zapCfg.Level,
	)
	return zap.New(core, append(opts, zap.AddCaller())...), nil
}
