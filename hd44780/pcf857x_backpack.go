// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"periph.io/x/conn/v3/i2c"
)

// Backpack geometries commonly sold with a PCF8574 daughter board.
const (
	LCD1602Rows, LCD1602Cols = 2, 16
	LCD2004Rows, LCD2004Cols = 4, 20
)

// NewPCF857xBackpack returns a display configured for the pcf8574 i2c
// backpacks. It takes rows before cols, in the order used by the other
// periph text display constructors.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
func NewPCF857xBackpack(bus i2c.Bus, address uint16, rows, cols int) (*Dev, error) {
	return New(bus, address, cols, rows)
}
