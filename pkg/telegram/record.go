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

	"jinr.ru/greenlab/go-mbus/pkg/vif"
)

// maxLVAR is the largest variable-length code decoded as text; larger
// codes select BCD/binary variants not used by the supported meters.
const maxLVAR = 0xBF

// DataRecord is one decoded record of the variable data structure: the
// record header (DIB + VIB), the resolved value information code and the
// decoded value. Records are immutable once decoded.
type DataRecord struct {
	DIB      DataInformationBlock  `json:"dib"`
	VIB      ValueInformationBlock `json:"vib"`
	Code     *vif.Code             `json:"code,omitempty"`
	RawValue []byte                `json:"-"`
	Value    interface{}           `json:"value,omitempty"`
}

// Scaled returns the record value multiplied by the code coefficient when
// the value is numeric, and the value untouched otherwise.
func (r DataRecord) Scaled() interface{} {
	if r.Code == nil {
		return r.Value
	}
	switch v := r.Value.(type) {
	case int64:
		return float64(v) * r.Code.Coef
	case float64:
		return v * r.Code.Coef
	default:
		return r.Value
	}
}

// valueLength returns the number of value bytes a data field code
// declares. Variable-length records report ok=false and are handled
// separately by the decoder.
func valueLength(code DataFieldCode) (int, bool) {
	switch code {
	case DataNone, DataReadout, DataSpecialFunc:
		return 0, true
	case DataInt8, DataBCD2:
		return 1, true
	case DataInt16, DataBCD4:
		return 2, true
	case DataInt24, DataBCD6:
		return 3, true
	case DataInt32, DataBCD8, DataReal32:
		return 4, true
	case DataInt48, DataBCD12:
		return 6, true
	case DataInt64:
		return 8, true
	default:
		return 0, false
	}
}

// DecodeRecord reads one data record from the start of data and returns
// the consumed byte count. Insufficient input at any stage reports
// ErrInsufficientData and no partial record; structurally impossible
// values report ErrMalformed with the offending offset.
func DecodeRecord(data []byte) (DataRecord, int, error) {
	dib, n, err := DecodeDIB(data)
	if err != nil {
		return DataRecord{}, 0, err
	}
	offset := n

	vib, n, err := DecodeVIB(data[offset:])
	if err != nil {
		var malformed ErrMalformed
		if errors.As(err, &malformed) {
			return DataRecord{}, 0, malformed.Shift(offset)
		}
		return DataRecord{}, 0, err
	}
	offset += n

	record := DataRecord{DIB: dib, VIB: vib}

	code, _, err := vif.Resolve(vib.Bytes())
	switch err.(type) {
	case nil:
		record.Code = code
	case vif.ErrExhaustedChain:
		return DataRecord{}, 0, ErrInsufficientData
	default:
		return DataRecord{}, 0, err
	}

	length, fixed := valueLength(dib.DIF.DataFieldCode())
	if !fixed {
		// variable length: the LVAR byte carries the value length
		if offset >= len(data) {
			return DataRecord{}, 0, ErrInsufficientData
		}
		lvar := data[offset]
		if lvar > maxLVAR {
			return DataRecord{}, 0, ErrMalformed{
				Offset: offset,
				Byte:   lvar,
				What:   "unsupported LVAR code",
			}
		}
		offset++
		length = int(lvar)
	}
	if offset+length > len(data) {
		return DataRecord{}, 0, ErrInsufficientData
	}
	record.RawValue = append([]byte(nil), data[offset:offset+length]...)

	value, err := decodeValue(dib.DIF.DataFieldCode(), record.Code, record.RawValue)
	if err != nil {
		var malformed ErrMalformed
		if errors.As(err, &malformed) {
			return DataRecord{}, 0, malformed.Shift(offset)
		}
		return DataRecord{}, 0, err
	}
	record.Value = value
	offset += length
	return record, offset, nil
}

// decodeValue interprets the raw value bytes according to the DIF data
// field code and, for time points, the resolved VIF code.
func decodeValue(dfc DataFieldCode, code *vif.Code, raw []byte) (interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if code != nil && code.Kind == vif.KindTimePoint {
		switch code.Unit {
		case vif.UnitDate:
			t, err := DecodeDate(raw)
			if err != nil {
				return nil, err
			}
			return t, nil
		case vif.UnitDateTime:
			t, err := DecodeDateTime(raw)
			if err != nil {
				return nil, err
			}
			return t, nil
		}
	}
	switch dfc {
	case DataInt8, DataInt16, DataInt24, DataInt32, DataInt48, DataInt64:
		return DecodeInt(raw)
	case DataBCD2, DataBCD4, DataBCD6, DataBCD8, DataBCD12:
		return DecodeBCD(raw)
	case DataReal32:
		return DecodeReal32(raw)
	case DataVariable:
		return string(raw), nil
	default:
		return nil, nil
	}
}
