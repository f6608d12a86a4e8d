// Copyright 2019 Bull S.A.S. Atos Technologies - Bull, Rue Jean Jaures, B.P.68, 78340, Les Clayes-sous-Bois, France.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ystia/hpcavail/availability"
	"github.com/ystia/hpcavail/helper/tabutil"
	"github.com/ystia/hpcavail/slurm"
)

func init() {
	RootCmd.AddCommand(accountsCmd)
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the accounts allowed by the cluster partitions",
	Long:  `List every account allowed to submit on at least one partition of the cluster.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listAccounts(context.Background(), newSource(getConfig()), os.Stdout)
	},
}

func listAccounts(ctx context.Context, source slurm.Source, out io.Writer) error {
	partitions, err := fetchPartitions(ctx, source)
	if err != nil {
		return err
	}
	table := tabutil.NewCompactTable()
	table.AddHeaders("Account", "Partitions")
	for _, a := range availability.KnownAccounts(partitions) {
		var allowed []string
		for _, p := range partitions {
			if p.AllowsAccount(a) {
				allowed = append(allowed, p.Name)
			}
		}
		table.AddRow(a, allowed)
	}
	if table.Len() == 0 {
		fmt.Fprintln(out, "No accounts defined on the cluster partitions")
		return nil
	}
	fmt.Fprintln(out, table.Render())
	return nil
}
