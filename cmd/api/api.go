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

package api

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mbus/pkg/config"
	"jinr.ru/greenlab/go-mbus/pkg/srv"
	"jinr.ru/greenlab/go-mbus/pkg/store"
)

const (
	IPOptionName     = "ip"
	PortOptionName   = "port"
	DBPathOptionName = "db-path"
)

func NewCommand() *cobra.Command {
	var ip, dbPath string
	var port int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Start API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ip != "" {
				cfg.IP = ip
			}
			if port != 0 {
				cfg.Port = port
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			ctx := context.Background()
			state, err := store.NewTelegramState(ctx, cfg)
			if err != nil {
				return err
			}
			defer state.Close()
			server, err := srv.NewApiServer(ctx, cfg, state)
			if err != nil {
				return err
			}
			return server.Run()
		},
	}
	cmd.Flags().StringVar(&ip, IPOptionName, "", fmt.Sprintf("IP to bind. E.g. %s", config.DefaultApiIP))
	cmd.Flags().IntVar(&port, PortOptionName, 0, fmt.Sprintf("Port number to bind. E.g. %d", config.DefaultApiPort))
	cmd.Flags().StringVar(&dbPath, DBPathOptionName, "", "Path to the telegram archive database")

	return cmd
}
