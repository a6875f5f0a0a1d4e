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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Container is an ordered fixed-length sequence of Fields representing a
// contiguous run of telegram bytes with a semantic role, for example an
// identification number or a VIFE chain. The length is fixed at
// construction; zero-length containers are allowed.
type Container struct {
	fields []Field
}

// NewContainer builds a Container from the given fields. The fields are
// copied, the container owns its sequence exclusively.
func NewContainer(fields ...Field) Container {
	owned := make([]Field, len(fields))
	copy(owned, fields)
	return Container{fields: owned}
}

// FromBytes builds a Container from raw bytes.
func FromBytes(data []byte) Container {
	fields := make([]Field, len(data))
	for i, b := range data {
		fields[i] = FromByte(b)
	}
	return Container{fields: fields}
}

// FromHex builds a Container from a hexadecimal string.
func FromHex(s string) (Container, error) {
	clean := strings.ReplaceAll(s, " ", "")
	data, err := hex.DecodeString(clean)
	if err != nil {
		return Container{}, fmt.Errorf("decode hex: %w", err)
	}
	return FromBytes(data), nil
}

// Len returns the number of fields in the container.
func (c Container) Len() int {
	return len(c.fields)
}

// At returns the field at position i or ErrIndex outside bounds.
func (c Container) At(i int) (Field, error) {
	if i < 0 || i >= len(c.fields) {
		return Field{}, ErrIndex{Index: i, Length: len(c.fields)}
	}
	return c.fields[i], nil
}

// Fields returns a copy of the contained fields in original order. The
// copy makes iteration restartable without exposing the owned sequence.
func (c Container) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Bytes returns the container contents as raw bytes.
func (c Container) Bytes() []byte {
	out := make([]byte, len(c.fields))
	for i, f := range c.fields {
		out[i] = f.Byte()
	}
	return out
}

// Equal reports whether both containers have the same length and fields.
func (c Container) Equal(other Container) bool {
	if len(c.fields) != len(other.fields) {
		return false
	}
	for i, f := range c.fields {
		if !f.Equal(other.fields[i]) {
			return false
		}
	}
	return true
}

// Compare orders containers lexicographically by field values, first
// mismatch wins. A container that is a strict prefix of another orders
// before it.
func (c Container) Compare(other Container) int {
	n := len(c.fields)
	if len(other.fields) < n {
		n = len(other.fields)
	}
	for i := 0; i < n; i++ {
		if d := c.fields[i].Compare(other.fields[i]); d != 0 {
			return d
		}
	}
	return len(c.fields) - len(other.fields)
}

func (c Container) String() string {
	return fmt.Sprintf("%X", c.Bytes())
}

// MarshalJSON renders the container as a hexadecimal string.
func (c Container) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(c.Bytes())))
}

// UnmarshalJSON restores a container from a hexadecimal string.
func (c *Container) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	restored, err := FromHex(s)
	if err != nil {
		return err
	}
	*c = restored
	return nil
}
