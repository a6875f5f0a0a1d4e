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

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-mbus/pkg/frame"
	"jinr.ru/greenlab/go-mbus/pkg/log"
)

const (
	// MBusLayerNum identifies the layer
	MBusLayerNum = 2013
)

// MBusLayer carries the M-Bus frames decoded from one captured payload.
// A serial capture may pack several telegrams back to back; each decoded
// frame lands in Frames, and a trailing partial telegram is kept raw in
// Remainder so the caller can prepend it to the next capture.
type MBusLayer struct {
	layers.BaseLayer
	Frames    []*frame.Frame
	Remainder []byte
}

var MBusLayerType = gopacket.RegisterLayerType(MBusLayerNum,
	gopacket.LayerTypeMetadata{Name: "MBusLayerType", Decoder: gopacket.DecodeFunc(DecodeMBusLayer)})

// LayerType returns the type of the MBus layer in the layer catalog
func (mb *MBusLayer) LayerType() gopacket.LayerType {
	return MBusLayerType
}

func (mb *MBusLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	log.Debug("DecodeFromBytes: decoding MBus layer")
	log.Debug("DecodeFromBytes: data length: %d", len(data))
	log.Debug("DecodeFromBytes: data: \n%s", hex.Dump(data))

	mb.BaseLayer = layers.BaseLayer{
		Contents: []byte{},
		Payload:  data,
	}

	offset := 0
	for offset < len(data) {
		f, consumed, state, err := frame.Decode(data[offset:])
		if err != nil {
			return err
		}
		if state == frame.Truncated {
			df.SetTruncated()
			mb.Remainder = data[offset:]
			return nil
		}
		log.Debug("DecodeFromBytes: frame kind: %s, consumed: %d", f.Kind, consumed)
		mb.Frames = append(mb.Frames, f)
		offset += consumed
	}

	return nil
}

func DecodeMBusLayer(data []byte, p gopacket.PacketBuilder) error {
	mb := &MBusLayer{}
	err := mb.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(mb)
	return nil
}
