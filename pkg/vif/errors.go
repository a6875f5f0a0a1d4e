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
	"fmt"
)

// ErrExhaustedChain returned when an extension was signaled but the chain
// holds no further byte
type ErrExhaustedChain struct{}

func (e ErrExhaustedChain) Error() string {
	return "VIF chain exhausted before resolution completed"
}

// ErrUnresolved returned when a lookup reaches a state the table does not
// define, distinct from reserved codes which have a defined meaning
type ErrUnresolved struct {
	Byte byte
}

func (e ErrUnresolved) Error() string {
	return fmt.Sprintf("no VIF code defined for byte 0x%02X", e.Byte)
}
