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

package vif

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mbus/pkg/vif"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vif [hex chain]",
		Short: "Resolve a VIF byte chain to its code table entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := hex.DecodeString(strings.ReplaceAll(args[0], " ", ""))
			if err != nil {
				return err
			}
			code, consumed, err := vif.Resolve(chain)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(code, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			fmt.Fprintf(cmd.OutOrStdout(), "consumed: %d\n", consumed)
			return nil
		},
	}
	return cmd
}
