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

package vif

import (
	"math"
)

const (
	// ExtensionBit gates the presence of a following VIFE byte
	ExtensionBit = 0x80
	// CodeMask selects the 7-bit code value of a VIF/VIFE byte
	CodeMask = 0x7F
	// EscapeFB is the 7-bit code of the 0xFB extension table escape
	EscapeFB = 0x7B
	// EscapeFD is the 7-bit code of the 0xFD extension table escape
	EscapeFD = 0x7D
)

// codeRange describes a run of primary codes sharing kind and unit where
// the low bits select the decimal exponent, the compact EN 13757 table
// notation (E000 0nnn and friends).
type codeRange struct {
	base   byte
	count  int
	kind   Kind
	unit   string
	expOff int
}

var primaryRanges = []codeRange{
	{0x00, 8, KindEnergy, UnitWattHour, -3},
	{0x08, 8, KindEnergy, UnitJoule, 0},
	{0x10, 8, KindVolume, UnitMeterCubic, -6},
	{0x18, 8, KindMass, UnitKilogram, -3},
	{0x28, 8, KindPower, UnitWatt, -3},
	{0x30, 8, KindPower, UnitJoulePerHour, 0},
	{0x38, 8, KindVolumeFlow, UnitMeterCubicPerHour, -6},
	{0x40, 8, KindVolumeFlow, UnitMeterCubicPerMinute, -7},
	{0x48, 8, KindVolumeFlow, UnitMeterCubicPerSecond, -9},
	{0x50, 8, KindMassFlow, UnitKilogramPerHour, -3},
	{0x58, 4, KindFlowTemperature, UnitCelsius, -3},
	{0x5C, 4, KindReturnTemperature, UnitCelsius, -3},
	{0x60, 4, KindTemperatureDifference, UnitKelvin, -3},
	{0x64, 4, KindExternalTemperature, UnitCelsius, -3},
	{0x68, 4, KindPressure, UnitBar, -3},
}

// durationRanges use second/minute/hour/day steps instead of powers of ten.
var durationRanges = []struct {
	base byte
	kind Kind
}{
	{0x20, KindOnTime},
	{0x24, KindOperatingTime},
	{0x70, KindAveragingDuration},
	{0x74, KindActualityDuration},
}

var durationCoefs = [4]float64{1, 60, 3600, 86400}

// primaryTable maps 7-bit primary VIF codes to their descriptors. Built
// once at init, read-only afterwards.
var primaryTable = map[byte]*Code{
	0x6C: {Coef: 1, Kind: KindTimePoint, Unit: UnitDate},
	0x6D: {Coef: 1, Kind: KindTimePoint, Unit: UnitDateTime},
	0x6E: {Coef: 1, Kind: KindHCA, Unit: UnitHCA},
	0x6F: Reserved,
	0x78: {Coef: 1, Kind: KindFabricationNo},
	0x79: {Coef: 1, Kind: KindEnhanced},
	0x7A: {Coef: 1, Kind: KindBusAddress},
	0x7C: {Coef: 1, Kind: KindUser},
	0x7E: {Coef: 1, Kind: KindAny},
	0x7F: {Coef: 1, Kind: KindManufacturer},
}

// fbTable is the 0xFB extension table.
var fbTable = map[byte]*Code{
	0x00: {Coef: 1e-1, Kind: KindEnergy, Unit: UnitMegaWattHour},
	0x01: {Coef: 1, Kind: KindEnergy, Unit: UnitMegaWattHour},
	0x08: {Coef: 1e-1, Kind: KindEnergy, Unit: UnitGigaJoule},
	0x09: {Coef: 1, Kind: KindEnergy, Unit: UnitGigaJoule},
}

// fdTable is the 0xFD extension table, the main extension codes.
var fdTable = map[byte]*Code{
	0x08: {Coef: 1, Kind: KindAccessNumber},
	0x09: {Coef: 1, Kind: KindMedium},
	0x0A: {Coef: 1, Kind: KindManufacturer},
	0x0B: {Coef: 1, Kind: KindParameterSet},
	0x0C: {Coef: 1, Kind: KindModelVersion},
	0x0D: {Coef: 1, Kind: KindHardwareVersion},
	0x0E: {Coef: 1, Kind: KindFirmwareVersion},
	0x0F: {Coef: 1, Kind: KindSoftwareVersion},
	0x17: {Coef: 1, Kind: KindErrorFlags},
	0x1A: {Coef: 1, Kind: KindDigitalOutput},
	0x1B: {Coef: 1, Kind: KindDigitalInput},
}

func init() {
	for _, r := range primaryRanges {
		for n := 0; n < r.count; n++ {
			primaryTable[r.base+byte(n)] = &Code{
				Coef: math.Pow10(r.expOff + n),
				Kind: r.kind,
				Unit: r.unit,
			}
		}
	}
	for _, r := range durationRanges {
		for n := 0; n < len(durationCoefs); n++ {
			primaryTable[r.base+byte(n)] = &Code{
				Coef: durationCoefs[n],
				Kind: r.kind,
				Unit: UnitSecond,
			}
		}
	}
	// E100_0nnn of the FD table: volts, 10^(nnnn-9)
	for n := 0; n < 16; n++ {
		fdTable[0x40+byte(n)] = &Code{Coef: math.Pow10(n - 9), Kind: KindVoltage, Unit: UnitVolt}
	}
	// E101_0nnn of the FD table: amperes, 10^(nnnn-12)
	for n := 0; n < 16; n++ {
		fdTable[0x50+byte(n)] = &Code{Coef: math.Pow10(n - 12), Kind: KindCurrent, Unit: UnitAmpere}
	}
}

// Resolve looks up the descriptor for a VIF byte chain. The first byte is
// the primary VIF, following bytes are VIFE extensions. Resolution is keyed
// on the 7-bit code value, so it does not matter whether the caller passes
// the extension bit set or cleared.
//
// The returned count is the number of chain bytes that determined the code
// identity (1 for primary codes, 2 when an escape selected an extension
// table). Remaining VIFE bytes are modifiers and stay with the caller.
//
// An escape code with the extension bit set but no following byte reports
// ErrExhaustedChain so the record decoder can apply its non-greedy policy.
func Resolve(chain []byte) (*Code, int, error) {
	if len(chain) == 0 {
		return nil, 0, ErrExhaustedChain{}
	}
	b := chain[0]
	key := b & CodeMask
	if key == EscapeFB || key == EscapeFD {
		if b&ExtensionBit == 0 {
			// the primary slots under the escapes are reserved
			return Reserved, 1, nil
		}
		if len(chain) < 2 {
			return nil, 1, ErrExhaustedChain{}
		}
		table := fbTable
		if key == EscapeFD {
			table = fdTable
		}
		if code, ok := table[chain[1]&CodeMask]; ok {
			return code, 2, nil
		}
		return Reserved, 2, nil
	}
	if code, ok := primaryTable[key]; ok {
		return code, 1, nil
	}
	// the primary table covers the whole 7-bit domain, so this state is
	// only reachable if the table loses entries
	return nil, 1, ErrUnresolved{Byte: b}
}
