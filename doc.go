// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdbackpack is a container for the HD44780 over PCF8574 I²C
// backpack drivers.
//
// See package hd44780 for the display and package pcf857x for the
// expander.
package lcdbackpack
