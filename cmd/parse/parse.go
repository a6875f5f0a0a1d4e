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

package parse

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-mbus/pkg/config"
	"jinr.ru/greenlab/go-mbus/pkg/frame"
	"jinr.ru/greenlab/go-mbus/pkg/store"
	"jinr.ru/greenlab/go-mbus/pkg/telegram"
)

const (
	OutputOptionName  = "output"
	RecordsOptionName = "records"
	StoreOptionName   = "store"
)

// Result carries the decode outcome rendered by the parse command
type Result struct {
	State    frame.State           `json:"state"`
	Consumed int                   `json:"consumed"`
	Frame    *frame.Frame          `json:"frame,omitempty"`
	Records  []telegram.DataRecord `json:"records,omitempty"`
}

func render(out interface{}, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("---\n%s", string(data)), nil
	default:
		return "", fmt.Errorf("unknown output format: %s, must be one of: json, yaml", format)
	}
}

func NewCommand() *cobra.Command {
	var output string
	var records, archive bool
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "parse [hex telegram]",
		Short: "Decode an M-Bus telegram given as a hexadecimal string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hex.DecodeString(strings.ReplaceAll(args[0], " ", ""))
			if err != nil {
				return err
			}

			result := &Result{}
			if records {
				recs, consumed, state, err := frame.DecodeRecords(data)
				if err != nil {
					return err
				}
				result.State = state
				result.Consumed = consumed
				result.Records = recs
			} else {
				f, consumed, state, err := frame.Decode(data)
				if err != nil {
					return err
				}
				result.State = state
				result.Consumed = consumed
				result.Frame = f
			}

			if archive {
				state, err := store.NewTelegramState(context.Background(), cfg)
				if err != nil {
					return err
				}
				defer state.Close()
				err = state.SetTelegram(&store.Telegram{
					Time:     time.Now(),
					Hex:      args[0],
					State:    result.State,
					Consumed: result.Consumed,
					Frame:    result.Frame,
				})
				if err != nil {
					return err
				}
			}

			rendered, err := render(result, output)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, OutputOptionName, "o", "json", "Output format. Must be one of: json, yaml")
	cmd.Flags().BoolVar(&records, RecordsOptionName, false, "Decode a bare record sequence without the frame envelope")
	cmd.Flags().BoolVar(&archive, StoreOptionName, false, "Archive the decode result in the local telegram database")

	return cmd
}
