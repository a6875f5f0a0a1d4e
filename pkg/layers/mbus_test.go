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

package layers

import (
	"encoding/hex"
	"testing"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-mbus/pkg/frame"
)

func TestDecodeMBusLayerBackToBack(t *testing.T) {
	// ack followed by a short frame in one captured payload
	data, err := hex.DecodeString("E5" + "107BFE7916")
	require.NoError(t, err)

	packet := gopacket.NewPacket(data, MBusLayerType, gopacket.Default)
	layer := packet.Layer(MBusLayerType)
	require.NotNil(t, layer)

	mb, ok := layer.(*MBusLayer)
	require.True(t, ok)
	require.Len(t, mb.Frames, 2)
	require.Equal(t, frame.KindAck, mb.Frames[0].Kind)
	require.Equal(t, frame.KindShort, mb.Frames[1].Kind)
	require.Empty(t, mb.Remainder)
}

func TestDecodeMBusLayerTrailingPartial(t *testing.T) {
	// a complete ack with the beginning of a long frame behind it
	data, err := hex.DecodeString("E5" + "680F0F68")
	require.NoError(t, err)

	mb := &MBusLayer{}
	err = mb.DecodeFromBytes(data, gopacket.NilDecodeFeedback)
	require.NoError(t, err)
	require.Len(t, mb.Frames, 1)
	require.Equal(t, frame.KindAck, mb.Frames[0].Kind)
	require.Equal(t, data[1:], mb.Remainder)
}

func TestDecodeMBusLayerMalformed(t *testing.T) {
	mb := &MBusLayer{}
	err := mb.DecodeFromBytes([]byte{0x99}, gopacket.NilDecodeFeedback)
	require.Error(t, err)
}
