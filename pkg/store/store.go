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

package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"

	"jinr.ru/greenlab/go-mbus/pkg/config"
	"jinr.ru/greenlab/go-mbus/pkg/frame"
	"jinr.ru/greenlab/go-mbus/pkg/log"
)

const (
	BucketName = "telegrams"
)

// Telegram is one archived decode result.
type Telegram struct {
	Time     time.Time    `json:"time"`
	Hex      string       `json:"hex"`
	State    frame.State  `json:"state"`
	Consumed int          `json:"consumed"`
	Frame    *frame.Frame `json:"frame,omitempty"`
}

// TelegramState is the bbolt backed telegram archive. Keys are big
// endian nanosecond timestamps so a bucket cursor walks in decode order.
type TelegramState struct {
	context.Context
	DB *bbolt.DB
}

func NewTelegramState(ctx context.Context, cfg *config.Config) (*TelegramState, error) {
	db, err := bbolt.Open(cfg.DBPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(BucketName))
		return err
	}); err != nil {
		return nil, err
	}
	return &TelegramState{
		Context: ctx,
		DB: db,
	}, nil
}

func timeToByte(t time.Time) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(t.UnixNano()))
	return b
}

// Close ...
func (s *TelegramState) Close() {
	s.DB.Close()
}

// SetTelegram ...
func (s *TelegramState) SetTelegram(telegram *Telegram) error {
	log.Debug("Archiving telegram: State: %s Consumed: %d", telegram.State, telegram.Consumed)
	value, err := json.Marshal(telegram)
	if err != nil {
		return err
	}
	if err := s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		return b.Put(timeToByte(telegram.Time), value)
	}); err != nil {
		return err
	}
	return nil
}

// GetTelegramAll ...
func (s *TelegramState) GetTelegramAll() ([]*Telegram, error) {
	log.Debug("Getting all archived telegrams")
	var telegrams []*Telegram
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		return b.ForEach(func(_, value []byte) error {
			telegram := &Telegram{}
			if err := json.Unmarshal(value, telegram); err != nil {
				return err
			}
			telegrams = append(telegrams, telegram)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return telegrams, nil
}
