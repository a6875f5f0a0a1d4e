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

// Package frame decodes M-Bus link layer frames into blocks and data
// records. The decoder is non-greedy: it consumes only the bytes the
// declared structure requires and stops cleanly on short input, returning
// the hierarchy built so far with a Truncated state instead of failing.
package frame

import (
	"errors"

	"jinr.ru/greenlab/go-mbus/pkg/field"
	"jinr.ru/greenlab/go-mbus/pkg/telegram"
)

const (
	// AckByte is the single character acknowledgement frame
	AckByte = 0xE5
	// ShortFrameStartByte starts the fixed five byte short frame
	ShortFrameStartByte = 0x10
	// LongFrameStartByte starts control and long frames
	LongFrameStartByte = 0x68
	// FrameStopByte terminates short, control and long frames
	FrameStopByte = 0x16

	// ShortFrameLength is the fixed size of a short frame
	ShortFrameLength = 5
	// envelopeOverhead is start + L + L + start ... checksum + stop
	envelopeOverhead = 6
	// minLongLength is the minimum L field value (C, A and CI fields)
	minLongLength = 3

	// DIF values with block level meaning inside the user data
	difIdleFiller       = 0x2F
	difManufacturer     = 0x0F
	difManufacturerMore = 0x1F
)

// Kind is the frame format recognized from the start byte.
type Kind string

const (
	KindAck     Kind = "ack"
	KindShort   Kind = "short"
	KindControl Kind = "control"
	KindLong    Kind = "long"
)

// State is the terminal state of one decode call.
type State string

const (
	// Complete means the frame structure is fully decoded
	Complete State = "complete"
	// Truncated means a valid prefix was decoded but the input ended
	// mid-structure; not an error, a reportable partial result
	Truncated State = "truncated"
	// Malformed means a structurally impossible value was met; the
	// accompanying error cites the offending offset and byte
	Malformed State = "malformed"
)

// Block groups a header field container with the data records decoded
// from it. The link header block carries no records; the user data block
// carries records and an empty header; a manufacturer specific block
// carries its introducing DIF as header and the raw remainder as Data.
type Block struct {
	Header  field.Container       `json:"header"`
	Records []telegram.DataRecord `json:"records,omitempty"`
	Data    []byte                `json:"data,omitempty"`
}

// Frame is one decoded M-Bus telegram.
type Frame struct {
	Kind     Kind                        `json:"kind"`
	Length   byte                        `json:"length,omitempty"`
	Control  telegram.Control            `json:"control"`
	Address  telegram.Address            `json:"address"`
	CI       telegram.ControlInformation `json:"ci"`
	Checksum byte                        `json:"checksum"`
	Blocks   []Block                     `json:"blocks,omitempty"`
}

// Records returns all data records of the frame in decode order.
func (f *Frame) Records() []telegram.DataRecord {
	var records []telegram.DataRecord
	for _, b := range f.Blocks {
		records = append(records, b.Records...)
	}
	return records
}

// Decode reads one frame from the start of data. It returns the decoded
// frame, the number of bytes consumed and the terminal state. Truncated
// input yields the hierarchy decoded so far with consumed 0, so a caller
// buffering a stream can retry from the same offset once more bytes
// arrive. Structurally impossible input yields the Malformed state and an
// error citing the offending offset and byte; a fully present envelope
// whose records cannot finish within the declared length is malformed,
// never truncated, since more input cannot help.
func Decode(data []byte) (*Frame, int, State, error) {
	if len(data) == 0 {
		return nil, 0, Truncated, nil
	}
	switch data[0] {
	case AckByte:
		return &Frame{Kind: KindAck}, 1, Complete, nil
	case ShortFrameStartByte:
		return decodeShort(data)
	case LongFrameStartByte:
		return decodeLong(data)
	default:
		return nil, 0, Malformed, telegram.ErrMalformed{
			Offset: 0,
			Byte:   data[0],
			What:   "not a frame start byte",
		}
	}
}

func decodeShort(data []byte) (*Frame, int, State, error) {
	f := &Frame{Kind: KindShort}
	if len(data) < ShortFrameLength {
		return f, 0, Truncated, nil
	}
	if data[4] != FrameStopByte {
		return nil, 0, Malformed, telegram.ErrMalformed{
			Offset: 4,
			Byte:   data[4],
			What:   "invalid short frame stop byte",
		}
	}
	f.Control = telegram.NewControl(data[1])
	f.Address = telegram.NewAddress(data[2])
	f.Checksum = data[3]
	f.Blocks = []Block{{Header: field.FromBytes(data[1:3])}}
	return f, ShortFrameLength, Complete, nil
}

func decodeLong(data []byte) (*Frame, int, State, error) {
	f := &Frame{Kind: KindLong}
	if len(data) < 4 {
		return f, 0, Truncated, nil
	}
	length := data[1]
	if data[2] != length {
		return nil, 0, Malformed, telegram.ErrMalformed{
			Offset: 2,
			Byte:   data[2],
			What:   "length fields disagree",
		}
	}
	if data[3] != LongFrameStartByte {
		return nil, 0, Malformed, telegram.ErrMalformed{
			Offset: 3,
			Byte:   data[3],
			What:   "second start byte missing",
		}
	}
	if length < minLongLength {
		return nil, 0, Malformed, telegram.ErrMalformed{
			Offset: 1,
			Byte:   length,
			What:   "declared length below the C, A, CI minimum",
		}
	}
	f.Length = length
	if length == minLongLength {
		f.Kind = KindControl
	}

	total := envelopeOverhead + int(length)
	if len(data) < 7 {
		// header block not fully present
		return f, 0, Truncated, nil
	}
	f.Control = telegram.NewControl(data[4])
	f.Address = telegram.NewAddress(data[5])
	f.CI = telegram.NewControlInformation(data[6])
	f.Blocks = []Block{{Header: field.FromBytes(data[4:7])}}

	userEnd := 4 + int(length)
	available := userEnd
	complete := len(data) >= total
	if !complete && len(data) < userEnd {
		available = len(data)
	}

	blocks, consumed, state, err := decodeUserData(data[7:available], 7)
	if err != nil {
		return nil, 0, Malformed, err
	}
	f.Blocks = append(f.Blocks, blocks...)
	if !complete {
		return f, 0, Truncated, nil
	}
	if state != Complete {
		// the envelope is all here, so more input can never finish the
		// record: the record header contradicts the declared length
		return nil, 0, Malformed, telegram.ErrMalformed{
			Offset: 7 + consumed,
			Byte:   data[7+consumed],
			What:   "record overruns the declared user data length",
		}
	}
	if data[total-1] != FrameStopByte {
		return nil, 0, Malformed, telegram.ErrMalformed{
			Offset: total - 1,
			Byte:   data[total-1],
			What:   "invalid frame stop byte",
		}
	}
	f.Checksum = data[total-2]
	return f, total, Complete, nil
}

// DecodeRecords walks a bare record sequence, without any frame
// envelope, the layout of wireless M-Bus application payloads. It
// returns the records that decoded completely, the bytes consumed by
// them and the terminal state. Decoding never consumes bytes beyond
// what a record's own header declares; the first record that cannot
// finish ends the walk with Truncated and prior records kept.
func DecodeRecords(data []byte) ([]telegram.DataRecord, int, State, error) {
	blocks, consumed, state, err := decodeUserData(data, 0)
	if err != nil {
		return nil, 0, Malformed, err
	}
	var records []telegram.DataRecord
	for _, b := range blocks {
		records = append(records, b.Records...)
	}
	return records, consumed, state, nil
}

func decodeUserData(user []byte, base int) ([]Block, int, State, error) {
	var blocks []Block
	dataBlock := Block{}
	flush := func() {
		if len(dataBlock.Records) > 0 {
			blocks = append(blocks, dataBlock)
			dataBlock = Block{}
		}
	}
	i := 0
	for i < len(user) {
		switch user[i] {
		case difIdleFiller:
			i++
			continue
		case difManufacturer, difManufacturerMore:
			// the rest of the user data is manufacturer specific
			flush()
			blocks = append(blocks, Block{
				Header: field.FromBytes(user[i : i+1]),
				Data:   append([]byte(nil), user[i+1:]...),
			})
			return blocks, len(user), Complete, nil
		}
		record, n, err := telegram.DecodeRecord(user[i:])
		if err != nil {
			if errors.Is(err, telegram.ErrInsufficientData) {
				flush()
				return blocks, i, Truncated, nil
			}
			var malformed telegram.ErrMalformed
			if errors.As(err, &malformed) {
				return nil, 0, Malformed, malformed.Shift(base + i)
			}
			return nil, 0, Malformed, err
		}
		dataBlock.Records = append(dataBlock.Records, record)
		i += n
	}
	flush()
	return blocks, i, Complete, nil
}
