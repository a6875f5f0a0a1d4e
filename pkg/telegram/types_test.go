/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package telegram

import (
	"errors"
	"testing"
	"time"
)

func TestDecodeBCD(t *testing.T) {
	tests := []struct {
		data []byte
		want int64
	}{
		{[]byte{0x66, 0x38}, 3866},
		{[]byte{0x01}, 1},
		{[]byte{0x99}, 99},
		{[]byte{0x00, 0x00, 0x00, 0x00}, 0},
		{[]byte{0x78, 0x56, 0x34, 0x12}, 12345678},
	}
	for _, tt := range tests {
		got, err := DecodeBCD(tt.data)
		if err != nil {
			t.Fatalf("DecodeBCD(% X): %v", tt.data, err)
		}
		if got != tt.want {
			t.Fatalf("DecodeBCD(% X) = %d, want %d", tt.data, got, tt.want)
		}
	}
}

func TestDecodeBCDInvalidDigit(t *testing.T) {
	_, err := DecodeBCD([]byte{0x12, 0xA3})
	var malformed ErrMalformed
	if !errors.As(err, &malformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if malformed.Offset != 1 {
		t.Fatalf("offending offset %d, want 1", malformed.Offset)
	}
	if _, err := DecodeBCD(nil); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestDecodeInt(t *testing.T) {
	tests := []struct {
		data []byte
		want int64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7F}, 127},
		{[]byte{0xFF}, -1},
		{[]byte{0xFE, 0xFF}, -2},
		{[]byte{0x34, 0x12}, 0x1234},
		{[]byte{0x00, 0x00, 0x80}, -8388608},
		{[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F}, 1<<63 - 1},
	}
	for _, tt := range tests {
		got, err := DecodeInt(tt.data)
		if err != nil {
			t.Fatalf("DecodeInt(% X): %v", tt.data, err)
		}
		if got != tt.want {
			t.Fatalf("DecodeInt(% X) = %d, want %d", tt.data, got, tt.want)
		}
	}
	if _, err := DecodeInt(make([]byte, 9)); err == nil {
		t.Fatal("9-byte integer accepted")
	}
}

func TestDecodeUint(t *testing.T) {
	got, err := DecodeUint([]byte{0xFF, 0xFF})
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xFFFF {
		t.Fatalf("DecodeUint = %d", got)
	}
}

func TestDecodeBool(t *testing.T) {
	v, err := DecodeBool([]byte{0x01})
	if err != nil || !v {
		t.Fatalf("DecodeBool(01) = %v, %v", v, err)
	}
	v, err = DecodeBool([]byte{0x00})
	if err != nil || v {
		t.Fatalf("DecodeBool(00) = %v, %v", v, err)
	}
}

func TestDecodeReal32(t *testing.T) {
	got, err := DecodeReal32([]byte{0x00, 0x00, 0x80, 0x3F})
	if err != nil {
		t.Fatal(err)
	}
	if got != 1.0 {
		t.Fatalf("DecodeReal32 = %v", got)
	}
	if _, err := DecodeReal32([]byte{0x00, 0x00}); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestDecodeDate(t *testing.T) {
	// day 10, month 5, year (20)19
	got, err := DecodeDate([]byte{0x6A, 0x25})
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2019, time.May, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DecodeDate = %v, want %v", got, want)
	}
}

func TestDecodeDateCentury(t *testing.T) {
	// year 81 is the first of the 1900 window
	got, err := DecodeDate([]byte{0x21, 0xA1})
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 1981 {
		t.Fatalf("year = %d, want 1981", got.Year())
	}
}

func TestDecodeDateInvalid(t *testing.T) {
	var malformed ErrMalformed
	// day 0
	if _, err := DecodeDate([]byte{0x00, 0x01}); !errors.As(err, &malformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	// month 13
	if _, err := DecodeDate([]byte{0x01, 0x0D}); !errors.As(err, &malformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, err := DecodeDate([]byte{0x01}); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestDecodeDateTime(t *testing.T) {
	// taken off a live water meter readout
	got, err := DecodeDateTime([]byte{0x27, 0x28, 0x7E, 0x2A})
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2019, time.October, 30, 8, 39, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DecodeDateTime = %v, want %v", got, want)
	}
}

func TestDecodeDateTimeWithSeconds(t *testing.T) {
	got, err := DecodeDateTime([]byte{0x27, 0x28, 0x7E, 0x2A, 0x2D})
	if err != nil {
		t.Fatal(err)
	}
	if got.Second() != 45 {
		t.Fatalf("seconds = %d, want 45", got.Second())
	}
}

func TestDecodeUnitType(t *testing.T) {
	got, err := DecodeUnitType([]byte{0x42, 0x81})
	if err != nil {
		t.Fatal(err)
	}
	if got.Unit2 != 0x40 || got.Unit1 != 0x80 {
		t.Fatalf("unexpected units: %+v", got)
	}
	if got.Media != [2]byte{0x02, 0x01} {
		t.Fatalf("unexpected media: %+v", got)
	}
	if got.Units() != [2]PhysicalUnit{UnitWattHour, UnitDayMonthYear} {
		t.Fatalf("unexpected unit codes: %v", got.Units())
	}
}

func TestPhysicalUnitString(t *testing.T) {
	tests := []struct {
		unit PhysicalUnit
		want string
	}{
		{UnitWattHour, "Wh"},
		{PhysicalUnit(0x06), "kWh x 10"},
		{PhysicalUnit(0x2E), "m^3 x 100"},
		{UnitCubicMeterPerHour + 2, "m^3/h x 100"},
		{UnitDimensionless, "dimensionless"},
		{PhysicalUnit(0x3B), "reserved (0x3B)"},
	}
	for _, tt := range tests {
		if got := tt.unit.String(); got != tt.want {
			t.Fatalf("0x%02X = %q, want %q", byte(tt.unit), got, tt.want)
		}
	}
}

func TestMeasuredMediumString(t *testing.T) {
	if MediumWater.String() != "water" {
		t.Fatalf("unexpected name: %s", MediumWater)
	}
	if MediumReserved1.String() != "reserved (0x09)" {
		t.Fatalf("unexpected name: %s", MediumReserved1)
	}
}
