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

// ErrRange returned when a value does not fit the declared field width
type ErrRange struct {
	Value int
	Width int
}

func (e ErrRange) Error() string {
	return fmt.Sprintf("%d is not a valid %d-bit field value", e.Value, e.Width)
}

// ErrIndex returned when a container is accessed outside its bounds
type ErrIndex struct {
	Index  int
	Length int
}

func (e ErrIndex) Error() string {
	return fmt.Sprintf("index %d out of range for container of length %d", e.Index, e.Length)
}
