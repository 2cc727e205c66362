// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780 controls the Hitachi LCD display chipset HD-44780 through
// a PCF8574 I²C backpack.
//
// The backpack multiplexes the 4 bit data bus, the RS/RW/E control lines and
// the backlight switch onto one I²C byte. Every byte sent to the controller
// becomes two nibble transfers, and every nibble transfer becomes three
// expander writes: control lines alone, data with E high, data with E low.
// The controller latches on the falling edge of E.
//
// The RW line is never raised, so the busy flag cannot be polled. Timing is
// delay based: the initialization handshake and Home() sleep, everything else
// relies on the I²C transaction time.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GermanBionicSystems/lcdbackpack/pcf857x"
	"github.com/jonboulle/clockwork"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
)

const packageName = "hd44780"

// Instructions.
const (
	cmdClearDisplay   byte = 0x01
	cmdReturnHome     byte = 0x02
	cmdEntryModeSet   byte = 0x04
	cmdDisplayControl byte = 0x08
	cmdCursorShift    byte = 0x10
	cmdFunctionSet    byte = 0x20
	cmdSetDDRAMAddr   byte = 0x80
)

// Instruction flags.
const (
	entryIncrement byte = 0x02

	displayOn byte = 0x04
	cursorOn  byte = 0x02

	shiftRight byte = 0x04

	function8Bit  byte = 0x10
	function2Line byte = 0x08
	function5x8   byte = 0x00
)

// DDRAM layout shared by 16x2 and 20x4 modules. Rows 2 and 3 of a four line
// display are the tails of the two physical line buffers.
const (
	ddramOddRow   byte = 0x40
	ddramLowerRow byte = 0x14
	ddramMask     byte = 0x7f
)

const (
	delayInitFirst  = 5 * time.Millisecond
	delayInitSecond = 1 * time.Millisecond
	// The datasheet gives 1.52ms for return home.
	delayHome = 2 * time.Millisecond
)

var (
	// ErrTransport is returned, wrapping the bus error, whenever an expander
	// write fails. The display state is undefined afterwards.
	ErrTransport = errors.New(packageName + ": transport error")
	// ErrInvalidGeometry is returned by New for unsupported row/column counts.
	ErrInvalidGeometry = errors.New(packageName + ": invalid geometry")

	ErrNotImplemented = fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)
)

// Sleeper blocks the calling goroutine. clockwork.Clock satisfies it.
type Sleeper interface {
	Sleep(d time.Duration)
}

// Opts holds optional collaborators for NewWithOpts.
type Opts struct {
	// Clock provides the initialization and Home() delays. If nil the wall
	// clock is used.
	Clock Sleeper
}

// Dev is an HD44780 LCD behind a PCF8574 backpack.
//
// Dev performs no locking. Callers sharing the bus with other goroutines
// must serialize access themselves.
//
// Implements periph.io/conn/x/display/TextDisplay and display.DisplayBacklight
type Dev struct {
	port  *pcf857x.Port
	clock Sleeper
	rows  int
	cols  int

	backlight bool
	on        bool
	cursor    bool
}

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

// New returns an initialized display at address on bus. cols is the number
// of visible columns and rows must be 1, 2 or 4.
//
// The display starts with the backlight on, the display on and the cursor
// hidden. If initialization fails the display is left in an undefined state
// and the error is returned.
func New(bus i2c.Bus, address uint16, cols, rows int) (*Dev, error) {
	return NewWithOpts(bus, address, cols, rows, nil)
}

// NewWithOpts is New with optional collaborators.
func NewWithOpts(bus i2c.Bus, address uint16, cols, rows int, opts *Opts) (*Dev, error) {
	if cols <= 0 || (rows != 1 && rows != 2 && rows != 4) {
		return nil, fmt.Errorf("%w: %d cols x %d rows", ErrInvalidGeometry, cols, rows)
	}
	port, err := pcf857x.New(bus, address)
	if err != nil {
		return nil, wrap(err)
	}
	var clock Sleeper = clockwork.NewRealClock()
	if opts != nil && opts.Clock != nil {
		clock = opts.Clock
	}
	dev := &Dev{
		port:      port,
		clock:     clock,
		rows:      rows,
		cols:      cols,
		backlight: true,
		on:        true,
	}
	if err := dev.init(); err != nil {
		return nil, err
	}
	return dev, nil
}

// init runs the forced 4 bit initialization handshake from figure 24 of the
// datasheet. The controller may power up in either interface mode, so the 8
// bit function set is sent as a lone nibble three times before switching to
// 4 bit mode.
func (dev *Dev) init() error {
	steps := []struct {
		nibble byte
		delay  time.Duration
	}{
		{cmdFunctionSet | function8Bit, delayInitFirst},
		{cmdFunctionSet | function8Bit, delayInitSecond},
		{cmdFunctionSet | function8Bit, 0},
		{cmdFunctionSet, 0},
	}
	for _, step := range steps {
		if err := dev.writeNibble(0, step.nibble); err != nil {
			return err
		}
		if step.delay > 0 {
			dev.clock.Sleep(step.delay)
		}
	}

	// 4 bit mode from here on.
	function := cmdFunctionSet | function5x8
	if dev.rows > 1 {
		function |= function2Line
	}
	if err := dev.command(function); err != nil {
		return err
	}
	if err := dev.Clear(); err != nil {
		return err
	}
	if err := dev.updateDisplayControl(); err != nil {
		return err
	}
	return dev.command(cmdEntryModeSet | entryIncrement)
}

// SetBacklight switches the backlight. The expander latch is rewritten with
// every LCD line low, which leaves the display content untouched.
func (dev *Dev) SetBacklight(on bool) error {
	dev.backlight = on
	return dev.out(0)
}

// Clear blanks the display and moves the cursor home.
//
// No settle delay is applied. The controller needs up to 1.52ms before it
// accepts the next instruction, which callers issuing commands back to back
// on a fast bus must allow for.
func (dev *Dev) Clear() error {
	return dev.command(cmdClearDisplay)
}

// Home moves the cursor to the first position and waits for the controller
// to settle.
func (dev *Dev) Home() error {
	if err := dev.command(cmdReturnHome); err != nil {
		return err
	}
	dev.clock.Sleep(delayHome)
	return nil
}

// SetCursor moves the cursor to the zero based col and row. Out of range
// values are clamped to the nearest valid position.
func (dev *Dev) SetCursor(col, row int) error {
	col = clamp(col, dev.cols-1)
	row = clamp(row, dev.rows-1)

	addr := byte(col)
	if row == 1 || row == 3 {
		addr += ddramOddRow
	}
	if row >= 2 {
		addr += ddramLowerRow
	}
	return dev.command(cmdSetDDRAMAddr | addr&ddramMask)
}

// CursorOn shows the underline cursor. Blink is never enabled.
func (dev *Dev) CursorOn() error {
	dev.cursor = true
	return dev.updateDisplayControl()
}

// CursorOff hides the cursor.
func (dev *Dev) CursorOff() error {
	dev.cursor = false
	return dev.updateDisplayControl()
}

// Display turns the display on or off. DDRAM content is retained while off.
func (dev *Dev) Display(on bool) error {
	dev.on = on
	return dev.updateDisplayControl()
}

// Write sends p as character codes at the cursor position. There is no line
// wrapping: writing past the last visible column follows the controller's
// own DDRAM addressing.
func (dev *Dev) Write(p []byte) (n int, err error) {
	for _, b := range p {
		if err = dev.data(b); err != nil {
			return
		}
		n++
	}
	return
}

// WriteString writes one character code per rune of text. Runes beyond the
// 8 bit character ROM are written as '?'.
func (dev *Dev) WriteString(text string) (n int, err error) {
	for _, r := range text {
		b := byte(r)
		if r > 0xff {
			b = '?'
		}
		if err = dev.data(b); err != nil {
			return
		}
		n++
	}
	return
}

// BacklightOn reports the cached backlight state.
func (dev *Dev) BacklightOn() bool {
	return dev.backlight
}

// DisplayOn reports the cached display state.
func (dev *Dev) DisplayOn() bool {
	return dev.on
}

// CursorVisible reports the cached cursor state.
func (dev *Dev) CursorVisible() bool {
	return dev.cursor
}

// Return the number of columns the display supports
func (dev *Dev) Cols() int {
	return dev.cols
}

// Return the number of rows the display supports.
func (dev *Dev) Rows() int {
	return dev.rows
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s::%s - Rows: %d, Cols: %d", packageName, dev.port, dev.rows, dev.cols)
}

// Halt clears the display, turns the backlight off, and turns the display off.
// The controller needs no shutdown sequence; this only blanks the module.
func (dev *Dev) Halt() error {
	return multierr.Combine(
		dev.Clear(),
		dev.SetBacklight(false),
		dev.Display(false),
	)
}

func (dev *Dev) updateDisplayControl() error {
	cmd := cmdDisplayControl
	if dev.on {
		cmd |= displayOn
	}
	if dev.cursor {
		cmd |= cursorOn
	}
	return dev.command(cmd)
}

func (dev *Dev) command(value byte) error {
	return dev.writeByte(0, value)
}

func (dev *Dev) data(value byte) error {
	return dev.writeByte(pcf857x.RS, value)
}

// writeByte sends value high nibble first.
func (dev *Dev) writeByte(ctrl, value byte) error {
	if err := dev.writeNibble(ctrl, value); err != nil {
		return err
	}
	return dev.writeNibble(ctrl, value<<4)
}

// writeNibble presents the high nibble of value on D4-D7 and strobes E.
func (dev *Dev) writeNibble(ctrl, value byte) error {
	nibble := value & pcf857x.DataMask
	for _, b := range [...]byte{ctrl, ctrl | nibble | pcf857x.E, ctrl | nibble} {
		if err := dev.out(b); err != nil {
			return err
		}
	}
	return nil
}

// out writes one expander byte. The backlight bit tracks the flag on every
// write, so a nibble transfer never drops it.
func (dev *Dev) out(b byte) error {
	if dev.backlight {
		b |= pcf857x.BL
	}
	if err := dev.port.Out(b); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}

func clamp(v, upper int) int {
	if v > upper {
		return upper
	}
	if v < 0 {
		return 0
	}
	return v
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ conn.Resource = &Dev{}
