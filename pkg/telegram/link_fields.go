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
	cfFunctionCodeMask = 0x0F
	cfFCVOrDFCMask     = 0x10
	cfFCBOrACDMask     = 0x20
	cfDirectionMask    = 0x40
)

// Control is the C field of a frame.
//
//	------------------------------------------------------------
//	|        bit        | 7 | 6 |  5  |  4  |  3 |  2 |  1 |  0 |
//	--------------------+---+---+-----+-----+----+----+----+----+
//	| calling direction | 0 | 1 | FCB | FCV | F3 | F2 | F1 | F0 |
//	--------------------+---+---+-----+-----+----+----+----+----+
//	|  reply direction  | 0 | 0 | ACD | DFC | F3 | F2 | F1 | F0 |
//	------------------------------------------------------------
type Control struct {
	field.Field
}

func NewControl(b byte) Control {
	return Control{field.FromByte(b)}
}

// Code returns the function/action code in the low nibble.
func (c Control) Code() int {
	return int(c.Byte() & cfFunctionCodeMask)
}

func (c Control) IsCallingDirection() bool {
	return c.Byte()&cfDirectionMask != 0
}

func (c Control) IsReplyDirection() bool {
	return !c.IsCallingDirection()
}

// FCB returns the Frame Count Bit, meaningful in the calling direction.
func (c Control) FCB() bool {
	return c.Byte()&cfFCBOrACDMask != 0
}

// FCV returns the Frame Count Valid bit, meaningful in the calling direction.
func (c Control) FCV() bool {
	return c.Byte()&cfFCVOrDFCMask != 0
}

// ACD returns the Access Demand bit, meaningful in the reply direction.
func (c Control) ACD() bool {
	return c.Byte()&cfFCBOrACDMask != 0
}

// DFC returns the Data Flow Control bit, meaningful in the reply direction.
func (c Control) DFC() bool {
	return c.Byte()&cfFCVOrDFCMask != 0
}

// Address byte classification per EN 13757: 1-250 configured slaves, 0
// unconfigured, 253 network layer, 254/255 broadcast.
const (
	AddrUnconfiguredSlave  = 0x00
	AddrSlaveMin           = 0x01
	AddrSlaveMax           = 0xFA
	AddrNetworkLayer       = 0xFD
	AddrBroadcastAllReply  = 0xFE
	AddrBroadcastNoReplies = 0xFF
)

// Address is the A field of a frame.
type Address struct {
	field.Field
}

func NewAddress(b byte) Address {
	return Address{field.FromByte(b)}
}

func (a Address) IsConfiguredSlave() bool {
	b := a.Byte()
	return b >= AddrSlaveMin && b <= AddrSlaveMax
}

func (a Address) IsUnconfiguredSlave() bool {
	return a.Byte() == AddrUnconfiguredSlave
}

func (a Address) IsSlave() bool {
	return a.IsConfiguredSlave() || a.IsUnconfiguredSlave()
}

func (a Address) IsBroadcastAllReply() bool {
	return a.Byte() == AddrBroadcastAllReply
}

func (a Address) IsBroadcastNoReplies() bool {
	return a.Byte() == AddrBroadcastNoReplies
}

func (a Address) IsBroadcast() bool {
	return a.IsBroadcastAllReply() || a.IsBroadcastNoReplies()
}

func (a Address) IsNetworkLayer() bool {
	return a.Byte() == AddrNetworkLayer
}

const ciModeBitMask = 0x04

// ControlInformation is the CI field, coding the type and sequence of the
// application data in the frame.
type ControlInformation struct {
	field.Field
}

func NewControlInformation(b byte) ControlInformation {
	return ControlInformation{field.FromByte(b)}
}

// Mode2 reports whether the mode bit is set: most significant byte first
// in multibyte records. Mode 1 (LSB first) is the recommended one.
func (ci ControlInformation) Mode2() bool {
	return ci.Byte()&ciModeBitMask != 0
}
