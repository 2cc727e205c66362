// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"periph.io/x/conn/v3/display"
)

// Not supported by this device. Returns ErrNotImplemented. The entry mode is
// fixed to left to right without display shift.
func (dev *Dev) AutoScroll(enabled bool) error {
	return ErrNotImplemented
}

// Turn the display's backlight on or off. The backpack switches the
// backlight with a transistor, so any non-zero intensity is full on.
func (dev *Dev) Backlight(intensity display.Intensity) error {
	return dev.SetBacklight(intensity > 0)
}

// Set the cursor mode. CursorOff hides the cursor and CursorUnderline shows
// it. The blinking modes are not supported.
func (dev *Dev) Cursor(modes ...display.CursorMode) error {
	for _, mode := range modes {
		var err error
		switch mode {
		case display.CursorOff:
			err = dev.CursorOff()
		case display.CursorUnderline:
			err = dev.CursorOn()
		case display.CursorBlink, display.CursorBlock:
			err = ErrNotImplemented
		default:
			err = fmt.Errorf("%s: unexpected cursor: %d", packageName, mode)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Return the min column position.
func (dev *Dev) MinCol() int {
	return 1
}

// Return the min row position.
func (dev *Dev) MinRow() int {
	return 1
}

// Move the cursor forward or backward.
func (dev *Dev) Move(dir display.CursorDirection) error {
	cmd := cmdCursorShift
	switch dir {
	case display.Backward:
	case display.Forward:
		cmd |= shiftRight
	default:
		return ErrNotImplemented
	}
	return dev.command(cmd)
}

// Move the cursor to arbitrary position. row and col are one based, and
// unlike SetCursor out of range values are an error.
func (dev *Dev) MoveTo(row, col int) error {
	if row < dev.MinRow() || row > dev.rows || col < dev.MinCol() || col > dev.cols {
		return fmt.Errorf("%s.MoveTo(%d,%d) value out of range", packageName, row, col)
	}
	return dev.SetCursor(col-1, row-1)
}
