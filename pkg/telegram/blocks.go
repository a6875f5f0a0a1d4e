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

const (
	// MaxDIFEs bounds the DIFE chain of one data information block
	MaxDIFEs = 10
	// MaxVIFEs bounds the VIFE chain of one value information block
	MaxVIFEs = 10
)

// DataInformationBlock is a DIF followed by up to MaxDIFEs extensions,
// chained by the extension bit.
//
//	-------------------------------
//	|   DIF  |        DIFE        |
//	+--------+--------------------+
//	| 1 byte | 0-10 (1 byte each) |
//	-------------------------------
type DataInformationBlock struct {
	DIF   DIF    `json:"dif"`
	DIFEs []DIFE `json:"difes,omitempty"`
}

// DecodeDIB reads a data information block from the start of data and
// returns the consumed byte count. An exhausted input reports
// ErrInsufficientData, a chain longer than MaxDIFEs is malformed.
func DecodeDIB(data []byte) (DataInformationBlock, int, error) {
	if len(data) == 0 {
		return DataInformationBlock{}, 0, ErrInsufficientData
	}
	dib := DataInformationBlock{DIF: NewDIF(data[0])}
	if !dib.DIF.Extension() {
		return dib, 1, nil
	}
	i := 1
	for {
		if i >= len(data) {
			return DataInformationBlock{}, i, ErrInsufficientData
		}
		dife := NewDIFE(data[i])
		dib.DIFEs = append(dib.DIFEs, dife)
		i++
		if !dife.Extension() {
			return dib, i, nil
		}
		if len(dib.DIFEs) == MaxDIFEs {
			return DataInformationBlock{}, i, ErrMalformed{
				Offset: i - 1,
				Byte:   dife.Byte(),
				What:   "last DIFE of a full chain has the extension bit set",
			}
		}
	}
}

// Container returns the block bytes as an ordered field container.
func (b DataInformationBlock) Container() field.Container {
	fields := make([]field.Field, 0, 1+len(b.DIFEs))
	fields = append(fields, b.DIF.Field)
	for _, dife := range b.DIFEs {
		fields = append(fields, dife.Field)
	}
	return field.NewContainer(fields...)
}

// StorageNumber folds the DIF LSB and the DIFE chain into the full
// storage number.
func (b DataInformationBlock) StorageNumber() int {
	storage := b.DIF.StorageNumberLSB()
	for i, dife := range b.DIFEs {
		storage |= dife.StorageNumber() << (1 + i*4)
	}
	return storage
}

// Tariff folds the DIFE chain into the tariff number.
func (b DataInformationBlock) Tariff() int {
	tariff := 0
	for i, dife := range b.DIFEs {
		tariff |= dife.Tariff() << (i * 2)
	}
	return tariff
}

// DeviceUnit folds the DIFE chain into the device unit (subunit) number.
func (b DataInformationBlock) DeviceUnit() int {
	unit := 0
	for i, dife := range b.DIFEs {
		unit |= dife.DeviceUnit() << i
	}
	return unit
}

// ValueInformationBlock is a VIF followed by up to MaxVIFEs extensions,
// chained by the extension bit.
//
//	-------------------------------
//	|   VIF  |        VIFE        |
//	+--------+--------------------+
//	| 1 byte | 0-10 (1 byte each) |
//	-------------------------------
type ValueInformationBlock struct {
	VIF   VIF    `json:"vif"`
	VIFEs []VIFE `json:"vifes,omitempty"`
}

// DecodeVIB reads a value information block from the start of data and
// returns the consumed byte count.
func DecodeVIB(data []byte) (ValueInformationBlock, int, error) {
	if len(data) == 0 {
		return ValueInformationBlock{}, 0, ErrInsufficientData
	}
	vib := ValueInformationBlock{VIF: NewVIF(data[0])}
	if !vib.VIF.Extension() {
		return vib, 1, nil
	}
	i := 1
	for {
		if i >= len(data) {
			return ValueInformationBlock{}, i, ErrInsufficientData
		}
		vife := NewVIFE(data[i])
		vib.VIFEs = append(vib.VIFEs, vife)
		i++
		if !vife.Extension() {
			return vib, i, nil
		}
		if len(vib.VIFEs) == MaxVIFEs {
			return ValueInformationBlock{}, i, ErrMalformed{
				Offset: i - 1,
				Byte:   vife.Byte(),
				What:   "last VIFE of a full chain has the extension bit set",
			}
		}
	}
}

// Container returns the block bytes as an ordered field container.
func (b ValueInformationBlock) Container() field.Container {
	fields := make([]field.Field, 0, 1+len(b.VIFEs))
	fields = append(fields, b.VIF.Field)
	for _, vife := range b.VIFEs {
		fields = append(fields, vife.Field)
	}
	return field.NewContainer(fields...)
}

// Bytes returns the raw VIF chain for code table resolution.
func (b ValueInformationBlock) Bytes() []byte {
	return b.Container().Bytes()
}
