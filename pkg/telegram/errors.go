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
	"fmt"
)

// ErrInsufficientData reported when decoding needs more bytes than remain.
// It is not a hard failure: partially captured telegrams are expected, the
// frame parser recovers it into the Truncated terminal state.
var ErrInsufficientData = errors.New("insufficient data")

// ErrMalformed returned when a structurally impossible value is met, for
// example an invalid BCD digit or an over-long extension chain. Offset is
// relative to the byte slice handed to the decoder that produced it;
// callers add their own base offset when propagating.
type ErrMalformed struct {
	Offset int
	Byte   byte
	What   string
}

func (e ErrMalformed) Error() string {
	return fmt.Sprintf("malformed structure at offset %d (byte 0x%02X): %s", e.Offset, e.Byte, e.What)
}

// Shift returns a copy of the error with the offset rebased by delta.
func (e ErrMalformed) Shift(delta int) ErrMalformed {
	e.Offset += delta
	return e
}
