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

// M-Bus application layer data types per IEC 870-5-4:
//
//	Type A = unsigned integer BCD
//	Type B = signed binary integer
//	Type C = unsigned integer
//	Type D = boolean
//	Type E = compound CP16, types and units information
//	Type F = compound CP32, date and time
//	Type G = compound CP16, date
//	Type H = IEEE 754 floating point
//
// Multibyte values are transmitted least significant byte first (mode 1).

package telegram

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// DecodeBCD converts a Type A payload (little endian byte order, low
// nibble first) to an unsigned integer. A nibble above 9 is malformed.
func DecodeBCD(data []byte) (int64, error) {
	if len(data) == 0 {
		return 0, ErrInsufficientData
	}
	var value, multiplier int64 = 0, 1
	for i, b := range data {
		low := int64(b & 0x0F)
		high := int64((b >> 4) & 0x0F)
		if low > 9 || high > 9 {
			return 0, ErrMalformed{Offset: i, Byte: b, What: "invalid BCD digit"}
		}
		value += low * multiplier
		multiplier *= 10
		value += high * multiplier
		multiplier *= 10
	}
	return value, nil
}

// DecodeInt converts a Type B payload (little endian, two's complement,
// sign in the MSB of the last byte) to a signed integer.
func DecodeInt(data []byte) (int64, error) {
	if len(data) == 0 {
		return 0, ErrInsufficientData
	}
	if len(data) > 8 {
		return 0, fmt.Errorf("integer value of %d bytes exceeds 64 bits", len(data))
	}
	var value uint64
	for i := len(data) - 1; i >= 0; i-- {
		value = value<<8 | uint64(data[i])
	}
	bits := uint(len(data) * 8)
	if bits < 64 && data[len(data)-1]&0x80 != 0 {
		// sign-extend
		value |= ^uint64(0) << bits
	}
	return int64(value), nil
}

// DecodeUint converts a Type C payload (little endian) to an unsigned
// integer.
func DecodeUint(data []byte) (uint64, error) {
	if len(data) == 0 {
		return 0, ErrInsufficientData
	}
	if len(data) > 8 {
		return 0, fmt.Errorf("integer value of %d bytes exceeds 64 bits", len(data))
	}
	var value uint64
	for i := len(data) - 1; i >= 0; i-- {
		value = value<<8 | uint64(data[i])
	}
	return value, nil
}

// DecodeBool converts a Type D payload to a boolean.
func DecodeBool(data []byte) (bool, error) {
	v, err := DecodeUint(data)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// DecodeReal32 converts a 4-byte Type H payload (IEEE 754, little
// endian) to a float.
func DecodeReal32(data []byte) (float64, error) {
	if len(data) < 4 {
		return 0, ErrInsufficientData
	}
	bits := binary.LittleEndian.Uint32(data[:4])
	return float64(math.Float32frombits(bits)), nil
}

// CP16/CP32 date masks.
const (
	yearMaskLow  = 0xE0
	yearMaskHigh = 0xF0
	monthMask    = 0x0F
	dayMask      = 0x1F
	hourMask     = 0x1F
	minuteMask   = 0x3F
	secondMask   = 0x3F
)

func decodeYear(low, high byte) int {
	year := int((high&yearMaskHigh)|(low&yearMaskLow)>>4) >> 1
	if year < 81 {
		return 2000 + year
	}
	return 1900 + year
}

// DecodeDate converts a 2-byte Type G payload (CP16) to a calendar date.
func DecodeDate(data []byte) (time.Time, error) {
	if len(data) < 2 {
		return time.Time{}, ErrInsufficientData
	}
	day := int(data[0] & dayMask)
	month := int(data[1] & monthMask)
	year := decodeYear(data[0], data[1])
	if day == 0 || day > 31 || month == 0 || month > 12 {
		return time.Time{}, ErrMalformed{Offset: 0, Byte: data[0], What: "invalid CP16 date encoding"}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// DecodeDateTime converts a Type F payload (CP32, 4 bytes, optionally a
// fifth seconds byte) to a timestamp in UTC.
func DecodeDateTime(data []byte) (time.Time, error) {
	if len(data) < 4 {
		return time.Time{}, ErrInsufficientData
	}
	minute := int(data[0] & minuteMask)
	hour := int(data[1] & hourMask)
	day := int(data[2] & dayMask)
	month := int(data[3] & monthMask)
	year := decodeYear(data[2], data[3])
	second := 0
	if len(data) >= 5 {
		second = int(data[4] & secondMask)
	}
	if minute > 59 || hour > 23 || day == 0 || day > 31 || month == 0 || month > 12 {
		return time.Time{}, ErrMalformed{Offset: 0, Byte: data[0], What: "invalid CP32 datetime encoding"}
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), nil
}

// UnitType is a Type E (CP16) types and units information value.
type UnitType struct {
	Unit1 byte    `json:"unit1"`
	Unit2 byte    `json:"unit2"`
	Media [2]byte `json:"media"`
}

// DecodeUnitType converts a 2-byte Type E payload.
func DecodeUnitType(data []byte) (UnitType, error) {
	if len(data) < 2 {
		return UnitType{}, ErrInsufficientData
	}
	const unitMask, mediaMask = 0xC0, 0x3F
	return UnitType{
		Unit1: data[1] & unitMask,
		Unit2: data[0] & unitMask,
		Media: [2]byte{data[0] & mediaMask, data[1] & mediaMask},
	}, nil
}

// Units resolves the masked media codes against the physical unit table.
func (u UnitType) Units() [2]PhysicalUnit {
	return [2]PhysicalUnit{PhysicalUnit(u.Media[0]), PhysicalUnit(u.Media[1])}
}

// PhysicalUnit is the unit table of the fixed data structure. Codes 0x02
// through 0x37 come in triplets: the base unit, the base times 10 and the
// base times 100.
type PhysicalUnit byte

const (
	UnitHourMinuteSecond  PhysicalUnit = 0x00
	UnitDayMonthYear      PhysicalUnit = 0x01
	UnitWattHour          PhysicalUnit = 0x02
	UnitKiloWattHour      PhysicalUnit = 0x05
	UnitMegaWattHour      PhysicalUnit = 0x08
	UnitKiloJoule         PhysicalUnit = 0x0B
	UnitMegaJoule         PhysicalUnit = 0x0E
	UnitGigaJoule         PhysicalUnit = 0x11
	UnitWatt              PhysicalUnit = 0x14
	UnitKiloWatt          PhysicalUnit = 0x17
	UnitMegaWatt          PhysicalUnit = 0x1A
	UnitKiloJoulePerHour  PhysicalUnit = 0x1D
	UnitMegaJoulePerHour  PhysicalUnit = 0x20
	UnitGigaJoulePerHour  PhysicalUnit = 0x23
	UnitMilliLiter        PhysicalUnit = 0x26
	UnitLiter             PhysicalUnit = 0x29
	UnitCubicMeter        PhysicalUnit = 0x2C
	UnitMilliLiterPerHour PhysicalUnit = 0x2F
	UnitLiterPerHour      PhysicalUnit = 0x32
	UnitCubicMeterPerHour PhysicalUnit = 0x35
	UnitMilliCelsius      PhysicalUnit = 0x38
	UnitHCA               PhysicalUnit = 0x39
	UnitHistoric          PhysicalUnit = 0x3E
	UnitDimensionless     PhysicalUnit = 0x3F
)

var unitNames = map[PhysicalUnit]string{
	UnitHourMinuteSecond:  "hour,minute,second",
	UnitDayMonthYear:      "day,month,year",
	UnitWattHour:          "Wh",
	UnitKiloWattHour:      "kWh",
	UnitMegaWattHour:      "MWh",
	UnitKiloJoule:         "kJ",
	UnitMegaJoule:         "MJ",
	UnitGigaJoule:         "GJ",
	UnitWatt:              "W",
	UnitKiloWatt:          "kW",
	UnitMegaWatt:          "MW",
	UnitKiloJoulePerHour:  "kJ/h",
	UnitMegaJoulePerHour:  "MJ/h",
	UnitGigaJoulePerHour:  "GJ/h",
	UnitMilliLiter:        "ml",
	UnitLiter:             "l",
	UnitCubicMeter:        "m^3",
	UnitMilliLiterPerHour: "ml/h",
	UnitLiterPerHour:      "l/h",
	UnitCubicMeterPerHour: "m^3/h",
	UnitMilliCelsius:      "mC",
	UnitHCA:               "H.C.A. Units",
	UnitHistoric:          "same but historic",
	UnitDimensionless:     "dimensionless",
}

func (u PhysicalUnit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	if u > UnitDayMonthYear && u < UnitMilliCelsius {
		base := UnitWattHour + (u-UnitWattHour)/3*3
		decade := []string{"", " x 10", " x 100"}[(u-UnitWattHour)%3]
		return unitNames[base] + decade
	}
	return fmt.Sprintf("reserved (0x%02X)", byte(u))
}

// MeasuredMedium is the medium table of the fixed data structure.
type MeasuredMedium byte

const (
	MediumOther         MeasuredMedium = 0x00
	MediumOil           MeasuredMedium = 0x01
	MediumElectricity   MeasuredMedium = 0x02
	MediumGas           MeasuredMedium = 0x03
	MediumHeat          MeasuredMedium = 0x04
	MediumSteam         MeasuredMedium = 0x05
	MediumHotWater      MeasuredMedium = 0x06
	MediumWater         MeasuredMedium = 0x07
	MediumHCA           MeasuredMedium = 0x08
	MediumReserved1     MeasuredMedium = 0x09
	MediumGasMode2      MeasuredMedium = 0x0A
	MediumHeatMode2     MeasuredMedium = 0x0B
	MediumHotWaterMode2 MeasuredMedium = 0x0C
	MediumWaterMode2    MeasuredMedium = 0x0D
	MediumHCAMode2      MeasuredMedium = 0x0E
	MediumReserved2     MeasuredMedium = 0x0F
)

var mediumNames = map[MeasuredMedium]string{
	MediumOther:         "other",
	MediumOil:           "oil",
	MediumElectricity:   "electricity",
	MediumGas:           "gas",
	MediumHeat:          "heat",
	MediumSteam:         "steam",
	MediumHotWater:      "hot water",
	MediumWater:         "water",
	MediumHCA:           "heat cost allocator",
	MediumGasMode2:      "gas (mode 2)",
	MediumHeatMode2:     "heat (mode 2)",
	MediumHotWaterMode2: "hot water (mode 2)",
	MediumWaterMode2:    "water (mode 2)",
	MediumHCAMode2:      "heat cost allocator (mode 2)",
}

func (m MeasuredMedium) String() string {
	if name, ok := mediumNames[m]; ok {
		return name
	}
	return fmt.Sprintf("reserved (0x%02X)", byte(m))
}
