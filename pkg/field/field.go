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

package field

import (
	"fmt"
)

const (
	// ByteWidth is the default field width in bits
	ByteWidth = 8
	// MaxByte is the largest value an 8-bit field can hold
	MaxByte = 0xFF
)

// Field is a single validated telegram byte. The value is immutable after
// construction and always fits the declared bit width. All telegram
// structures (containers, blocks, records) are built from Fields.
type Field struct {
	value byte
	width uint8
}

// New returns an 8-bit Field. Values outside [0, 255] fail with ErrRange.
func New(value int) (Field, error) {
	return NewWidth(value, ByteWidth)
}

// NewWidth returns a Field of the given width in bits (1 to 8).
// Values outside [0, 2^width-1] fail with ErrRange.
func NewWidth(value, width int) (Field, error) {
	if width < 1 || width > ByteWidth {
		return Field{}, fmt.Errorf("invalid field width %d, must be within [1, %d]", width, ByteWidth)
	}
	if value < 0 || value > (1<<width)-1 {
		return Field{}, ErrRange{Value: value, Width: width}
	}
	return Field{value: byte(value), width: uint8(width)}, nil
}

// FromByte wraps a raw byte as an 8-bit Field. It cannot fail since every
// byte value is within the 8-bit range.
func FromByte(b byte) Field {
	return Field{value: b, width: ByteWidth}
}

// Byte returns the field value as a byte.
func (f Field) Byte() byte {
	return f.value
}

// Int returns the field value as an int.
func (f Field) Int() int {
	return int(f.value)
}

// Width returns the declared width of the field in bits.
func (f Field) Width() int {
	if f.width == 0 {
		return ByteWidth
	}
	return int(f.width)
}

func (f Field) mask() byte {
	return byte((1 << f.Width()) - 1)
}

// And returns the bitwise AND of two fields. The result keeps the
// receiver's width.
func (f Field) And(other Field) Field {
	return Field{value: (f.value & other.value) & f.mask(), width: f.width}
}

// Or returns the bitwise OR of two fields.
func (f Field) Or(other Field) Field {
	return Field{value: (f.value | other.value) & f.mask(), width: f.width}
}

// Xor returns the bitwise XOR of two fields.
func (f Field) Xor(other Field) Field {
	return Field{value: (f.value ^ other.value) & f.mask(), width: f.width}
}

// Invert returns the bitwise complement of the field. The complement wraps
// within the declared width, not within the native byte width, so the
// result never violates the field's own range invariant.
func (f Field) Invert() Field {
	return Field{value: ^f.value & f.mask(), width: f.width}
}

// Compare orders fields by numeric value. It returns a negative number if
// f < other, zero if equal and a positive number otherwise.
func (f Field) Compare(other Field) int {
	return int(f.value) - int(other.value)
}

// Less reports whether f is numerically smaller than other.
func (f Field) Less(other Field) bool {
	return f.value < other.value
}

// Equal reports whether two fields hold the same numeric value.
func (f Field) Equal(other Field) bool {
	return f.value == other.value
}

func (f Field) String() string {
	return fmt.Sprintf("0x%02X", f.value)
}

// MarshalJSON renders the field as its numeric value.
func (f Field) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", f.value)), nil
}

// UnmarshalJSON restores a field from its numeric value as an 8-bit field.
func (f *Field) UnmarshalJSON(data []byte) error {
	var value int
	if _, err := fmt.Sscanf(string(data), "%d", &value); err != nil {
		return err
	}
	restored, err := New(value)
	if err != nil {
		return err
	}
	*f = restored
	return nil
}
