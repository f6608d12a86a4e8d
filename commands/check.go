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
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ystia/hpcavail/availability"
	"github.com/ystia/hpcavail/helper/sizeutil"
	"github.com/ystia/hpcavail/log"
	"github.com/ystia/hpcavail/slurm"
)

const noNodesMessage = "No nodes available. Please try again with different restrictions."

type checkOptions struct {
	restrictions availability.Restrictions
	strict       bool
	colorize     bool
}

// runCheck fetches partitions and nodes from the source, matches them against the
// restrictions and writes the report on out
func runCheck(ctx context.Context, source slurm.Source, opts checkOptions, out io.Writer) error {
	partitions, err := fetchPartitions(ctx, source)
	if err != nil {
		return err
	}
	res, err := availability.ResolveAccounts(opts.restrictions.Accounts, partitions, opts.strict)
	if err != nil {
		return err
	}
	if len(res.Unrecognized) > 0 {
		fmt.Fprintln(out, availability.UnrecognizedAccountsMessage(res.Unrecognized, res.Known))
	}

	nodes, err := fetchNodes(ctx, source)
	if err != nil {
		return err
	}

	rows := availability.Match(partitions, nodes, opts.restrictions.WithAccounts(res.Accounts))
	log.Debugf("%d row(s) matched for %d partition(s) and %d node(s)", len(rows), len(partitions), len(nodes))
	if len(rows) == 0 {
		fmt.Fprintln(out, noNodesMessage)
		return nil
	}

	if reminder := defMemPerCPUReminder(ctx, source); reminder != "" {
		fmt.Fprintln(out, reminder)
	}
	fmt.Fprintln(out, renderReport(rows, opts.colorize))
	return nil
}

func fetchPartitions(ctx context.Context, source slurm.Source) ([]slurm.Partition, error) {
	b, err := source.Show(ctx, slurm.EntityPartition)
	if err != nil {
		return nil, err
	}
	return slurm.ParsePartitions(bytes.NewReader(b))
}

func fetchNodes(ctx context.Context, source slurm.Source) ([]slurm.Node, error) {
	b, err := source.Show(ctx, slurm.EntityNode)
	if err != nil {
		return nil, err
	}
	return slurm.ParseNodes(bytes.NewReader(b))
}

// defMemPerCPUReminder returns the DefMemPerCPU reminder line, or an empty string
// when the setting can't be retrieved
func defMemPerCPUReminder(ctx context.Context, source slurm.Source) string {
	b, err := source.Show(ctx, slurm.EntityConfig)
	if err != nil {
		log.Printf("Can't retrieve the Slurm configuration: %v", err)
		return ""
	}
	value, found, err := slurm.ParseDefMemPerCPU(bytes.NewReader(b))
	if err != nil {
		log.Printf("Can't read DefMemPerCPU from the Slurm configuration: %v", err)
		return ""
	}
	if !found {
		log.Debugln("DefMemPerCPU not found in the Slurm configuration")
		return ""
	}
	size := value
	if h, err := sizeutil.HumanizeMB(value); err == nil {
		size = fmt.Sprintf("%s MB (%s)", value, h)
	}
	return fmt.Sprintf("Reminder: Default Memory per CPU core within the SLURM config is %s [DefMemPerCPU].", size)
}
