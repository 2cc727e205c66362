// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780_test

import (
	"log"

	"github.com/GermanBionicSystems/lcdbackpack/hd44780"
	"github.com/GermanBionicSystems/lcdbackpack/pcf857x"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Open default I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	dev, err := hd44780.New(bus, pcf857x.DefaultAddress, 20, 4)
	if err != nil {
		log.Fatal(err)
	}
	_ = dev.Clear()
	_ = dev.Home()
	_, _ = dev.WriteString("Hello")
	_ = dev.SetCursor(5, 2)
	_, _ = dev.WriteString("World")
	_ = dev.CursorOn()
}
