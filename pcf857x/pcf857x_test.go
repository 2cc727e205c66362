// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

var errNack = errors.New("nack")

type nackBus struct{}

func (nackBus) String() string { return "nack" }
func (nackBus) Tx(addr uint16, w, r []byte) error { return errNack }
func (nackBus) SetSpeed(f physic.Frequency) error { return nil }

func TestNew(t *testing.T) {
	bus := &i2ctest.Record{}
	p, err := New(bus, DefaultAddress)
	if err != nil {
		t.Fatal(err)
	}
	if p.Addr() != 0x27 {
		t.Errorf("Addr() expected 0x27, received 0x%x", p.Addr())
	}
	if s := p.String(); s != "PCF8574_27" {
		t.Errorf("String() expected PCF8574_27, received %q", s)
	}
	if len(bus.Ops) != 0 {
		t.Errorf("New() should not touch the bus, recorded %d ops", len(bus.Ops))
	}
}

func TestNewInvalidAddress(t *testing.T) {
	for _, addr := range []uint16{0x80, 0x100, 0xffff} {
		if _, err := New(&i2ctest.Record{}, addr); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("New(0x%x) expected ErrInvalidAddress, received %v", addr, err)
		}
	}
}

func TestOutWritesEveryByte(t *testing.T) {
	bus := &i2ctest.Record{}
	p, err := New(bus, 0x3f)
	if err != nil {
		t.Fatal(err)
	}
	values := []byte{0x08, 0x08, 0x0c, 0x00, 0x00}
	for _, v := range values {
		if err := p.Out(v); err != nil {
			t.Fatal(err)
		}
	}
	want := make([]i2ctest.IO, len(values))
	for ix, v := range values {
		want[ix] = i2ctest.IO{Addr: 0x3f, W: []byte{v}}
	}
	if diff := cmp.Diff(want, bus.Ops); diff != "" {
		t.Errorf("Out() recorded ops mismatch (-want +got):\n%s", diff)
	}
}

func TestOutError(t *testing.T) {
	p, err := New(nackBus{}, DefaultAddress)
	if err != nil {
		t.Fatal(err)
	}
	err = p.Out(0xff)
	if !errors.Is(err, errNack) {
		t.Errorf("Out() expected wrapped bus error, received %v", err)
	}
}

func TestPinAssignment(t *testing.T) {
	if RS|RW|E|BL|DataMask != 0xff {
		t.Error("pin assignment does not cover the port")
	}
	if (RS|RW|E|BL)&DataMask != 0 {
		t.Error("control lines overlap the data nibble")
	}
}
