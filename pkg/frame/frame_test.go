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

package frame

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-mbus/pkg/telegram"
	"jinr.ru/greenlab/go-mbus/pkg/vif"
)

// longTelegram is an RSP_UD long frame with two data records: volume as
// 8-digit BCD and a CP32 time point.
const longTelegram = "680F0F680805780C136638000004" + "6D27287E2AAA16"

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	data, err := hex.DecodeString(s)
	require.NoError(t, err)
	return data
}

func TestDecodeAck(t *testing.T) {
	f, consumed, state, err := Decode([]byte{AckByte})
	require.NoError(t, err)
	require.Equal(t, Complete, state)
	require.Equal(t, 1, consumed)
	require.Equal(t, KindAck, f.Kind)
}

func TestDecodeShort(t *testing.T) {
	f, consumed, state, err := Decode(decodeHex(t, "107BFE7916"))
	require.NoError(t, err)
	require.Equal(t, Complete, state)
	require.Equal(t, ShortFrameLength, consumed)
	require.Equal(t, KindShort, f.Kind)
	require.Equal(t, byte(0x7B), f.Control.Byte())
	require.True(t, f.Address.IsBroadcastAllReply())
	require.Equal(t, byte(0x79), f.Checksum)
	require.Len(t, f.Blocks, 1)
	require.Equal(t, "7BFE", f.Blocks[0].Header.String())
}

func TestDecodeShortTruncated(t *testing.T) {
	f, consumed, state, err := Decode(decodeHex(t, "107BFE"))
	require.NoError(t, err)
	require.Equal(t, Truncated, state)
	require.Equal(t, 0, consumed)
	require.Equal(t, KindShort, f.Kind)
}

func TestDecodeLongComplete(t *testing.T) {
	data := decodeHex(t, longTelegram)
	f, consumed, state, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, Complete, state)
	require.Equal(t, len(data), consumed)
	require.Equal(t, KindLong, f.Kind)
	require.Equal(t, byte(0x0F), f.Length)
	require.Equal(t, byte(0x08), f.Control.Byte())
	require.Equal(t, byte(0x05), f.Address.Byte())
	require.Equal(t, byte(0x78), f.CI.Byte())
	require.Equal(t, byte(0xAA), f.Checksum)

	records := f.Records()
	require.Len(t, records, 2)
	require.Equal(t, vif.KindVolume, records[0].Code.Kind)
	require.Equal(t, int64(3866), records[0].Value)
	require.Equal(t, vif.KindTimePoint, records[1].Code.Kind)
	want := time.Date(2019, time.October, 30, 8, 39, 0, 0, time.UTC)
	require.Equal(t, want, records[1].Value)
}

func TestDecodeControlFrame(t *testing.T) {
	// SND_NKE: L = 3, no user data
	f, consumed, state, err := Decode(decodeHex(t, "680303684001FD3E16"))
	require.NoError(t, err)
	require.Equal(t, Complete, state)
	require.Equal(t, 9, consumed)
	require.Equal(t, KindControl, f.Kind)
	require.Empty(t, f.Records())
}

func TestDecodeLongMissingStopByte(t *testing.T) {
	data := decodeHex(t, longTelegram)
	// completed records survive, nothing is consumed
	f, consumed, state, err := Decode(data[:len(data)-1])
	require.NoError(t, err)
	require.Equal(t, Truncated, state)
	require.Equal(t, 0, consumed)
	require.Len(t, f.Records(), 2)
}

func TestDecodeLongTruncatedMidRecord(t *testing.T) {
	data := decodeHex(t, longTelegram)
	// cut inside the second record: the first record is kept, the
	// partial one is never reported
	f, consumed, state, err := Decode(data[:15])
	require.NoError(t, err)
	require.Equal(t, Truncated, state)
	require.Equal(t, 0, consumed)
	require.Len(t, f.Records(), 1)
	require.Equal(t, int64(3866), f.Records()[0].Value)
}

func TestDecodeLongTruncatedHeader(t *testing.T) {
	data := decodeHex(t, longTelegram)
	f, consumed, state, err := Decode(data[:6])
	require.NoError(t, err)
	require.Equal(t, Truncated, state)
	require.Equal(t, 0, consumed)
	require.Empty(t, f.Blocks)
}

func TestDecodeEmpty(t *testing.T) {
	f, consumed, state, err := Decode(nil)
	require.NoError(t, err)
	require.Equal(t, Truncated, state)
	require.Equal(t, 0, consumed)
	require.Nil(t, f)
}

func TestDecodeUnknownStartByte(t *testing.T) {
	_, consumed, state, err := Decode([]byte{0x99})
	require.Equal(t, Malformed, state)
	require.Equal(t, 0, consumed)
	var malformed telegram.ErrMalformed
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 0, malformed.Offset)
	require.Equal(t, byte(0x99), malformed.Byte)
}

func TestDecodeLongLengthMismatch(t *testing.T) {
	_, _, state, err := Decode(decodeHex(t, "680F0E680805"))
	require.Equal(t, Malformed, state)
	var malformed telegram.ErrMalformed
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 2, malformed.Offset)
}

func TestDecodeLongBadSecondStart(t *testing.T) {
	_, _, state, err := Decode(decodeHex(t, "680F0F690805"))
	require.Equal(t, Malformed, state)
	var malformed telegram.ErrMalformed
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 3, malformed.Offset)
}

func TestDecodeLongMalformedRecordOffset(t *testing.T) {
	// LVAR 0xC0 inside the first record, at frame offset 9
	data := decodeHex(t, "680606680805780D13C06516")
	_, consumed, state, err := Decode(data)
	require.Equal(t, Malformed, state)
	require.Equal(t, 0, consumed)
	var malformed telegram.ErrMalformed
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 9, malformed.Offset)
	require.Equal(t, byte(0xC0), malformed.Byte)
}

func TestDecodeLongRecordOverrunsLength(t *testing.T) {
	// the envelope is fully present but the record at offset 7 declares
	// four value bytes where L leaves two: no further input can finish
	// it, so the frame is malformed rather than truncated
	data := decodeHex(t, "680707680805780C136638AA16")
	_, consumed, state, err := Decode(data)
	require.Equal(t, Malformed, state)
	require.Equal(t, 0, consumed)
	var malformed telegram.ErrMalformed
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 7, malformed.Offset)
	require.Equal(t, byte(0x0C), malformed.Byte)
}

func TestDecodeLongIdleFillers(t *testing.T) {
	// record followed by idle filler bytes
	data := decodeHex(t, "680C0C680805780C1366380000" + "2F2F2F" + "CF16")
	f, consumed, state, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, Complete, state)
	require.Equal(t, len(data), consumed)
	require.Len(t, f.Records(), 1)
}

func TestDecodeLongManufacturerBlock(t *testing.T) {
	data := decodeHex(t, "680C0C680805780C13663800000FDEADDC16")
	f, consumed, state, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, Complete, state)
	require.Equal(t, len(data), consumed)
	require.Len(t, f.Blocks, 3)
	require.Len(t, f.Records(), 1)
	last := f.Blocks[len(f.Blocks)-1]
	require.Equal(t, "0F", last.Header.String())
	require.Equal(t, []byte{0xDE, 0xAD}, last.Data)
}

func TestDecodeDeterministic(t *testing.T) {
	data := decodeHex(t, longTelegram)
	f1, n1, s1, err1 := Decode(data)
	f2, n2, s2, err2 := Decode(data)
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, n1, n2)
	require.Equal(t, s1, s2)
	require.Equal(t, f1, f2)
}

func TestDecodeRecordsBare(t *testing.T) {
	records, consumed, state, err := DecodeRecords(decodeHex(t, "0C13663800002F2F2F"))
	require.NoError(t, err)
	require.Equal(t, Complete, state)
	require.Equal(t, 9, consumed)
	require.Len(t, records, 1)
	require.Equal(t, int64(3866), records[0].Value)
}

func TestDecodeRecordsBareTruncated(t *testing.T) {
	records, consumed, state, err := DecodeRecords(decodeHex(t, "0C1366380000046D2728"))
	require.NoError(t, err)
	require.Equal(t, Truncated, state)
	require.Equal(t, 6, consumed)
	require.Len(t, records, 1)
}

func TestDecodeRecordsExactFit(t *testing.T) {
	data := decodeHex(t, "0C1366380000")
	records, consumed, state, err := DecodeRecords(data)
	require.NoError(t, err)
	require.Equal(t, Complete, state)
	require.Equal(t, len(data), consumed)
	require.Len(t, records, 1)
}
