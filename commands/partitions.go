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

	"github.com/ystia/hpcavail/helper/tabutil"
	"github.com/ystia/hpcavail/slurm"
)

func init() {
	RootCmd.AddCommand(partitionsCmd)
}

var partitionsCmd = &cobra.Command{
	Use:   "partitions",
	Short: "List the cluster partitions",
	Long: `List the partitions of the cluster along with the accounts and QoS they allow
and the number of nodes they contain.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listPartitions(context.Background(), newSource(getConfig()), os.Stdout)
	},
}

func listPartitions(ctx context.Context, source slurm.Source, out io.Writer) error {
	partitions, err := fetchPartitions(ctx, source)
	if err != nil {
		return err
	}
	if len(partitions) == 0 {
		fmt.Fprintln(out, "No partitions found")
		return nil
	}
	table := tabutil.NewTable()
	table.AddHeaders("Name", "Accounts", "QoS", "#Nodes")
	for _, p := range partitions {
		table.AddRow(p.Name, p.Accounts, p.QoS, len(p.Nodes))
	}
	fmt.Fprintln(out, table.Render())
	return nil
}
