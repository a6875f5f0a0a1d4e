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

package remote

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mbus/pkg/command"
	"jinr.ru/greenlab/go-mbus/pkg/config"
)

func NewTelegramsCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "telegrams",
		Short: "List telegrams archived on the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			telegrams, err := apiClient.Telegrams()
			if err != nil {
				return err
			}
			for _, telegram := range telegrams {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s state=%s consumed=%d\n",
					telegram.Time.Format("2006-01-02 15:04:05"), telegram.Hex, telegram.State, telegram.Consumed)
			}
			return nil
		},
	}
	return cmd
}
