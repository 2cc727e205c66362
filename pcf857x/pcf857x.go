// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf857x drives the output side of the TI/NXP PCF8574 I²C I/O
// expander as it is wired on the ubiquitous HD44780 LCD backpacks,
// particularly those sold as LCD2004 or LCD1602.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// A good description of the I2C LCD backpack usage can be found here:
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// # Notes
//
// This chip doesn't implement normal i2c register architectures. You write a
// single byte, and that latches the eight quasi-bidirectional pins P0-P7.
//
// On the backpack the low four pins carry the HD44780 control lines and the
// backlight transistor, and the high four pins carry the D4-D7 data lines:
//
//	P0 RS  register select
//	P1 RW  read/write
//	P2 E   enable
//	P3 BL  backlight
//	P4-P7  D4-D7
//
// Unlike a GPIO driver, Port never elides a write whose value is unchanged.
// The LCD strobe protocol depends on every byte reaching the bus.
package pcf857x

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

const (
	// DefaultAddress is the factory address of the PCF8574 on most LCD
	// backpacks (A0-A2 pulled high). PCF8574A based boards use 0x3f.
	DefaultAddress uint16 = 0x27

	// RS selects the data register when set and the instruction register
	// when clear.
	RS byte = 1 << 0
	// RW selects a read cycle. The backpack protocol is write only, so it is
	// never set by the drivers in this module.
	RW byte = 1 << 1
	// E is the HD44780 enable strobe.
	E byte = 1 << 2
	// BL switches the backlight transistor.
	BL byte = 1 << 3
	// DataMask covers P4-P7, wired to D4-D7.
	DataMask byte = 0xf0

	maxAddress uint16 = 0x7f
)

var ErrInvalidAddress = errors.New("pcf857x: invalid I²C address")

// Port is the 8 bit output latch of a PCF8574.
type Port struct {
	d *i2c.Dev
}

// New returns a Port talking to the expander at address on bus. address is
// a 7 bit I²C address.
func New(bus i2c.Bus, address uint16) (*Port, error) {
	if address > maxAddress {
		return nil, fmt.Errorf("%w 0x%x", ErrInvalidAddress, address)
	}
	return &Port{d: &i2c.Dev{Bus: bus, Addr: address}}, nil
}

// Out writes value to the pins as a single byte I²C transaction.
func (p *Port) Out(value byte) error {
	if err := p.d.Tx([]byte{value}, nil); err != nil {
		return fmt.Errorf("pcf857x: %w", err)
	}
	return nil
}

// Addr returns the I²C address of the expander.
func (p *Port) Addr() uint16 {
	return p.d.Addr
}

func (p *Port) String() string {
	return fmt.Sprintf("PCF8574_%x", p.d.Addr)
}
