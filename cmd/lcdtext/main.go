// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lcdtext writes text to an HD44780 LCD behind a PCF8574 I²C backpack.
//
// Each positional argument is written on its own row. With --random the
// display is filled with random capital letters until interrupted.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/lcdbackpack/hd44780"
	"github.com/GermanBionicSystems/lcdbackpack/pcf857x"
)

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	busName     = flag.String("bus", "", "I²C bus name, empty for the default bus")
	address     = flag.Uint16("addr", pcf857x.DefaultAddress, "backpack I²C address")
	cols        = flag.Int("cols", 16, "display columns")
	rows        = flag.Int("rows", 2, "display rows (1, 2 or 4)")
	cursor      = flag.Bool("cursor", false, "show the cursor")
	noBacklight = flag.Bool("no-backlight", false, "switch the backlight off")
	random      = flag.Bool("random", false, "write random letters until interrupted")
	logFile     = flag.String("log-file", "", "write logs to this file, rotated, instead of stderr")
)

func newLogger(path string) *zap.Logger {
	if path == "" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return logger
	}
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
	})
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), w, zap.InfoLevel)
	return zap.New(core)
}

func run(logger *zap.Logger) error {
	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		return fmt.Errorf("failed to open I²C: %w", err)
	}
	defer bus.Close()

	dev, err := hd44780.New(bus, *address, *cols, *rows)
	if err != nil {
		return err
	}
	logger.Info("display initialized", zap.Stringer("dev", dev))

	if *noBacklight {
		if err = dev.SetBacklight(false); err != nil {
			return err
		}
	}
	if *cursor {
		if err = dev.CursorOn(); err != nil {
			return err
		}
	}
	if err = dev.Clear(); err != nil {
		return err
	}
	if err = dev.Home(); err != nil {
		return err
	}
	for row, text := range flag.Args() {
		if row >= dev.Rows() {
			logger.Warn("dropping text beyond the last row", zap.Int("row", row), zap.String("text", text))
			continue
		}
		if err = dev.SetCursor(0, row); err != nil {
			return err
		}
		if _, err = dev.WriteString(text); err != nil {
			return err
		}
	}
	if !*random {
		return nil
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	written := 0
	for {
		select {
		case sig := <-stop:
			logger.Info("stopping", zap.Stringer("signal", sig), zap.Int("written", written))
			return dev.Halt()
		default:
		}
		if _, err = dev.WriteString(string(letters[rand.Intn(len(letters))])); err != nil {
			return err
		}
		written++
	}
}

func main() {
	flag.Parse()
	logger := newLogger(*logFile)
	err := run(logger)
	if err != nil {
		logger.Error("lcdtext failed", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
