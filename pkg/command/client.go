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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-mbus/pkg/config"
	"jinr.ru/greenlab/go-mbus/pkg/srv"
	"jinr.ru/greenlab/go-mbus/pkg/store"
	"jinr.ru/greenlab/go-mbus/pkg/vif"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.IP, cfg.Port),
	}
}

// Decode sends a telegram to the decode endpoint, optionally archiving it
func (c *ApiClient) Decode(hexTelegram string, archive bool) (*srv.DecodeResponse, error) {
	request := &srv.DecodeRequest{
		Hex:     hexTelegram,
		Archive: archive,
	}
	r, err := req.Post(fmt.Sprintf("%s/decode", c.ApiPrefix), req.BodyJSON(request))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	response := &srv.DecodeResponse{}
	err = r.ToJSON(response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Vif resolves a VIF byte chain to its code table entry
func (c *ApiClient) Vif(hexChain string) (*vif.Code, error) {
	r, err := req.Get(fmt.Sprintf("%s/vif/%s", c.ApiPrefix, hexChain))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	code := &vif.Code{}
	err = r.ToJSON(code)
	if err != nil {
		return nil, err
	}
	return code, nil
}

// Telegrams fetches all archived telegrams
func (c *ApiClient) Telegrams() ([]*store.Telegram, error) {
	r, err := req.Get(fmt.Sprintf("%s/telegrams", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var telegrams []*store.Telegram
	err = r.ToJSON(&telegrams)
	if err != nil {
		return nil, err
	}
	return telegrams, nil
}
