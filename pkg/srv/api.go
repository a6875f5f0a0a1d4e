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

// go-mbus API
//
// # RESTful APIs to interact with go-mbus server
//
// Schemes: http
// Host: localhost:8003
// Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
package srv

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-mbus/pkg/config"
	"jinr.ru/greenlab/go-mbus/pkg/frame"
	"jinr.ru/greenlab/go-mbus/pkg/log"
	"jinr.ru/greenlab/go-mbus/pkg/store"
	"jinr.ru/greenlab/go-mbus/pkg/vif"
)

// DecodeRequest ...
type DecodeRequest struct {
	Hex     string `json:"hex"`
	Archive bool   `json:"archive,omitempty"`
}

// DecodeResponse ...
type DecodeResponse struct {
	State    frame.State  `json:"state"`
	Consumed int          `json:"consumed"`
	Frame    *frame.Frame `json:"frame,omitempty"`
	Error    string       `json:"error,omitempty"`
}

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	state *store.TelegramState
}

func NewApiServer(ctx context.Context, cfg *config.Config, state *store.TelegramState) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.IP, cfg.Port)

	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		state:   state,
	}
	return s, nil
}

// Run starts the API server
func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s port: %d", s.Config.IP, s.Config.Port)
	s.configureRouter()
	httpServer := &http.Server{
		Handler: s.Router,
		Addr:    fmt.Sprintf("%s:%d", s.Config.IP, s.Config.Port),
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/decode", s.handleDecode()).Methods("POST")
	subRouter.HandleFunc("/vif/{chain:(?:[0-9a-fA-F]{2})+}", s.handleVif()).Methods("GET")
	subRouter.HandleFunc("/telegrams", s.handleTelegrams()).Methods("GET")
}

func (s *ApiServer) handleDecode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		request := &DecodeRequest{}
		err := json.NewDecoder(r.Body).Decode(request)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling decode request: hex: %s", request.Hex)

		data, err := hex.DecodeString(strings.ReplaceAll(request.Hex, " ", ""))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f, consumed, state, err := frame.Decode(data)
		response := &DecodeResponse{
			State:    state,
			Consumed: consumed,
			Frame:    f,
		}
		if err != nil {
			response.Error = err.Error()
		}

		if request.Archive && s.state != nil {
			archiveErr := s.state.SetTelegram(&store.Telegram{
				Time:     time.Now(),
				Hex:      request.Hex,
				State:    state,
				Consumed: consumed,
				Frame:    f,
			})
			if archiveErr != nil {
				http.Error(w, archiveErr.Error(), http.StatusInternalServerError)
				return
			}
		}

		json.NewEncoder(w).Encode(response)
	}
}

func (s *ApiServer) handleVif() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling vif request: chain: %s", vars["chain"])

		chain, err := hex.DecodeString(vars["chain"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		code, _, err := vif.Resolve(chain)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		json.NewEncoder(w).Encode(code)
	}
}

func (s *ApiServer) handleTelegrams() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling telegrams request")

		if s.state == nil {
			http.Error(w, "telegram archive is not configured", http.StatusNotFound)
			return
		}
		telegrams, err := s.state.GetTelegramAll()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(telegrams)
	}
}
