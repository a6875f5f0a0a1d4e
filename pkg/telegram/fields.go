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
	"jinr.ru/greenlab/go-mbus/pkg/field"
)

// DataFieldCode is the data length/type subfield of a DIF.
// BCD = Type A, binary integer = Type B, real = Type H.
type DataFieldCode byte

const (
	DataNone        DataFieldCode = 0b0000
	DataInt8        DataFieldCode = 0b0001
	DataInt16       DataFieldCode = 0b0010
	DataInt24       DataFieldCode = 0b0011
	DataInt32       DataFieldCode = 0b0100
	DataReal32      DataFieldCode = 0b0101
	DataInt48       DataFieldCode = 0b0110
	DataInt64       DataFieldCode = 0b0111
	DataReadout     DataFieldCode = 0b1000
	DataBCD2        DataFieldCode = 0b1001
	DataBCD4        DataFieldCode = 0b1010
	DataBCD6        DataFieldCode = 0b1011
	DataBCD8        DataFieldCode = 0b1100
	DataVariable    DataFieldCode = 0b1101
	DataBCD12       DataFieldCode = 0b1110
	DataSpecialFunc DataFieldCode = 0b1111
)

// FunctionFieldCode is the function subfield of a DIF.
type FunctionFieldCode byte

const (
	FunctionInstantaneous FunctionFieldCode = 0b00
	FunctionMaximum       FunctionFieldCode = 0b01
	FunctionMinimum       FunctionFieldCode = 0b10
	FunctionError         FunctionFieldCode = 0b11
)

const (
	difDataFieldMask      = 0x0F
	difFunctionFieldMask  = 0x30
	difStorageNumberMask  = 0x40
	extensionBitMask      = 0x80
	difeStorageNumberMask = 0x0F
	difeTariffMask        = 0x30
	difeDeviceUnitMask    = 0x40
	vifUnitMask           = 0x7F
)

// DIF is the Data Information Field.
//
//	--------------------------------------------------------------
//	|  bit |     7     |          6         |   5  4   | 3 2 1 0 |
//	+------+-----------+--------------------+----------+---------+
//	| desc | extension | storage number LSB | function |   data  |
//	--------------------------------------------------------------
type DIF struct {
	field.Field
}

func NewDIF(b byte) DIF {
	return DIF{field.FromByte(b)}
}

func (d DIF) DataFieldCode() DataFieldCode {
	return DataFieldCode(d.Byte() & difDataFieldMask)
}

func (d DIF) Function() FunctionFieldCode {
	return FunctionFieldCode((d.Byte() & difFunctionFieldMask) >> 4)
}

func (d DIF) StorageNumberLSB() int {
	if d.Byte()&difStorageNumberMask != 0 {
		return 1
	}
	return 0
}

func (d DIF) Extension() bool {
	return d.Byte()&extensionBitMask != 0
}

// DIFE is a Data Information Field Extension.
//
//	----------------------------------------------------------------
//	|  bit |     7     |       6       |   5  4   |   3  2  1  0   |
//	+------+-----------+---------------+----------+----------------+
//	| desc | extension | device (unit) |  tariff  | storage number |
//	----------------------------------------------------------------
type DIFE struct {
	field.Field
}

func NewDIFE(b byte) DIFE {
	return DIFE{field.FromByte(b)}
}

func (d DIFE) StorageNumber() int {
	return int(d.Byte() & difeStorageNumberMask)
}

func (d DIFE) Tariff() int {
	return int((d.Byte() & difeTariffMask) >> 4)
}

func (d DIFE) DeviceUnit() int {
	if d.Byte()&difeDeviceUnitMask != 0 {
		return 1
	}
	return 0
}

func (d DIFE) Extension() bool {
	return d.Byte()&extensionBitMask != 0
}

// VIF is the Value Information Field.
//
//	--------------------------------------------------
//	|  bit |     7     |     6  5  4  3  2  1  0     |
//	+------+-----------+-----------------------------+
//	| desc | extension | unit and multiplier (value) |
//	--------------------------------------------------
type VIF struct {
	field.Field
}

func NewVIF(b byte) VIF {
	return VIF{field.FromByte(b)}
}

// UnitValue returns the 7-bit unit and multiplier value.
func (v VIF) UnitValue() byte {
	return v.Byte() & vifUnitMask
}

func (v VIF) Extension() bool {
	return v.Byte()&extensionBitMask != 0
}

// VIFE is a Value Information Field Extension, same layout as the VIF.
type VIFE struct {
	field.Field
}

func NewVIFE(b byte) VIFE {
	return VIFE{field.FromByte(b)}
}

func (v VIFE) UnitValue() byte {
	return v.Byte() & vifUnitMask
}

func (v VIFE) Extension() bool {
	return v.Byte()&extensionBitMask != 0
}
