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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mbus/pkg/command"
	"jinr.ru/greenlab/go-mbus/pkg/config"
)

const (
	ArchiveOptionName = "archive"
)

func NewDecodeCommand() *cobra.Command {
	var archive bool
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "decode [hex telegram]",
		Short: "Decode a telegram on the API server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			response, err := apiClient.Decode(args[0], archive)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(response, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&archive, ArchiveOptionName, false, "Archive the decode result on the server")

	return cmd
}
