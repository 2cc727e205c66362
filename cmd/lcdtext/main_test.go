// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lcdtext.log")
	logger := newLogger(path)
	logger.Info("display initialized", zap.String("dev", "hd44780::PCF8574_27"))
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"msg":"display initialized"`) {
		t.Errorf("log file missing entry: %s", b)
	}
}

func TestNewLoggerStderr(t *testing.T) {
	if newLogger("") == nil {
		t.Fatal("newLogger(\"\") returned nil")
	}
}
