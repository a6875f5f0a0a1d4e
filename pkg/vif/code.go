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

// Kind is the physical quantity class a VIF code describes.
type Kind string

const (
	KindUnknown               Kind = ""
	KindEnergy                Kind = "energy"
	KindVolume                Kind = "volume"
	KindMass                  Kind = "mass"
	KindOnTime                Kind = "on time"
	KindOperatingTime         Kind = "operating time"
	KindPower                 Kind = "power"
	KindVolumeFlow            Kind = "volume flow"
	KindMassFlow              Kind = "mass flow"
	KindFlowTemperature       Kind = "flow temperature"
	KindReturnTemperature     Kind = "return temperature"
	KindTemperatureDifference Kind = "temperature difference"
	KindExternalTemperature   Kind = "external temperature"
	KindPressure              Kind = "pressure"
	KindTimePoint             Kind = "time point"
	KindHCA                   Kind = "heat cost allocator"
	KindReserved              Kind = "reserved"
	KindAveragingDuration     Kind = "averaging duration"
	KindActualityDuration     Kind = "actuality duration"
	KindFabricationNo         Kind = "fabrication no"
	KindEnhanced              Kind = "enhanced"
	KindBusAddress            Kind = "bus address"
	KindUser                  Kind = "user definable"
	KindAny                   Kind = "any"
	KindManufacturer          Kind = "manufacturer specific"
	KindAccessNumber          Kind = "access number"
	KindMedium                Kind = "medium"
	KindParameterSet          Kind = "parameter set"
	KindModelVersion          Kind = "model version"
	KindHardwareVersion       Kind = "hardware version"
	KindFirmwareVersion       Kind = "firmware version"
	KindSoftwareVersion       Kind = "software version"
	KindErrorFlags            Kind = "error flags"
	KindDigitalOutput         Kind = "digital output"
	KindDigitalInput          Kind = "digital input"
	KindVoltage               Kind = "voltage"
	KindCurrent               Kind = "current"
)

// Units used by the primary and extension tables.
const (
	UnitWattHour            = "Wh"
	UnitJoule               = "J"
	UnitMeterCubic          = "m^3"
	UnitKilogram            = "kg"
	UnitSecond              = "s"
	UnitWatt                = "W"
	UnitJoulePerHour        = "J/h"
	UnitMeterCubicPerHour   = "m^3/h"
	UnitMeterCubicPerMinute = "m^3/min"
	UnitMeterCubicPerSecond = "m^3/s"
	UnitKilogramPerHour     = "kg/h"
	UnitCelsius             = "C"
	UnitKelvin              = "K"
	UnitBar                 = "bar"
	UnitHCA                 = "H.C.A. Units"
	UnitDate                = "date"
	UnitDateTime            = "datetime"
	UnitMegaWattHour        = "MWh"
	UnitGigaJoule           = "GJ"
	UnitVolt                = "V"
	UnitAmpere              = "A"
)

// Code is the semantic descriptor a VIF byte chain resolves to: the
// quantity kind, the unit and the coefficient applied to the raw value.
// Codes are process-wide immutable constants owned by the table, looked
// up and shared, never constructed per decode.
type Code struct {
	Coef float64 `json:"coef"`
	Kind Kind    `json:"kind"`
	Unit string  `json:"unit,omitempty"`
}

// Reserved is the single shared instance returned for every reserved
// lookup. Callers may rely on pointer identity to detect it.
var Reserved = &Code{Coef: 1, Kind: KindReserved}

// IsReserved reports whether the code is the shared reserved instance.
func (c *Code) IsReserved() bool {
	return c == Reserved
}
