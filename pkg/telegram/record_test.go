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
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-mbus/pkg/vif"
)

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	data, err := hex.DecodeString(s)
	require.NoError(t, err)
	return data
}

func TestDecodeRecordVolumeBCD(t *testing.T) {
	// instantaneous volume, 8-digit BCD, liters
	record, n, err := DecodeRecord(decodeHex(t, "0C1366380000"))
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, DataBCD8, record.DIB.DIF.DataFieldCode())
	require.Equal(t, vif.KindVolume, record.Code.Kind)
	require.Equal(t, vif.UnitMeterCubic, record.Code.Unit)
	require.Equal(t, int64(3866), record.Value)
	require.InDelta(t, 3.866, record.Scaled(), 1e-9)
}

func TestDecodeRecordDateTime(t *testing.T) {
	record, n, err := DecodeRecord(decodeHex(t, "046D27287E2A"))
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, vif.KindTimePoint, record.Code.Kind)
	want := time.Date(2019, time.October, 30, 8, 39, 0, 0, time.UTC)
	require.Equal(t, want, record.Value)
}

func TestDecodeRecordInt(t *testing.T) {
	// 16-bit signed power value
	record, n, err := DecodeRecord(decodeHex(t, "022BFEFF"))
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, vif.KindPower, record.Code.Kind)
	require.Equal(t, int64(-2), record.Value)
}

func TestDecodeRecordReal32(t *testing.T) {
	record, n, err := DecodeRecord(decodeHex(t, "05130000803F"))
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, float64(1), record.Value)
	require.InDelta(t, 1e-3, record.Scaled(), 1e-12)
}

func TestDecodeRecordVariableLength(t *testing.T) {
	data := append(decodeHex(t, "0DFD0C03"), []byte("abc")...)
	record, n, err := DecodeRecord(data)
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, vif.KindModelVersion, record.Code.Kind)
	require.Equal(t, "abc", record.Value)
	// text values stay untouched by scaling
	require.Equal(t, "abc", record.Scaled())
}

func TestDecodeRecordVariableLengthUnsupportedLVAR(t *testing.T) {
	_, _, err := DecodeRecord(decodeHex(t, "0D13C0"))
	var malformed ErrMalformed
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 2, malformed.Offset)
	require.Equal(t, byte(0xC0), malformed.Byte)
}

func TestDecodeRecordNoData(t *testing.T) {
	// DIF 0x00 declares no value bytes
	record, n, err := DecodeRecord(decodeHex(t, "0013"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Nil(t, record.Value)
	require.Empty(t, record.RawValue)
}

func TestDecodeRecordInsufficient(t *testing.T) {
	for _, s := range []string{"", "0C", "8C", "0C13", "0C1366", "0DFD0C", "0DFD0C03AB", "04FD"} {
		_, _, err := DecodeRecord(decodeHex(t, s))
		require.ErrorIs(t, err, ErrInsufficientData, "input %q", s)
	}
}

func TestDecodeRecordStorageNumber(t *testing.T) {
	// previous period value: storage number 1 via the DIF LSB
	record, _, err := DecodeRecord(decodeHex(t, "4C1366380000"))
	require.NoError(t, err)
	require.Equal(t, 1, record.DIB.StorageNumber())
}

func TestDecodeRecordReservedVIF(t *testing.T) {
	record, _, err := DecodeRecord(decodeHex(t, "016F05"))
	require.NoError(t, err)
	require.True(t, record.Code.IsReserved())
	require.Same(t, vif.Reserved, record.Code)
}
