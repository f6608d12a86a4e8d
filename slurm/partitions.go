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

package slurm

import (
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/ystia/hpcavail/helper/collections"
)

// DebugPartition is the name of the partition reserved to administrators, it is never reported
const DebugPartition = "debug"

// AdminValue is the account and QoS name granting administrative access, it is never reported
const AdminValue = "admin"

// A Partition is a Slurm partition as reported by "scontrol show partition"
type Partition struct {
	Name     string
	Accounts []string
	QoS      []string
	Nodes    []string
}

// HasNode returns true if the given node is a member of the partition
func (p Partition) HasNode(node string) bool {
	return collections.ContainsString(p.Nodes, node)
}

// AllowsAccount returns true if the given account may submit to the partition
func (p Partition) AllowsAccount(account string) bool {
	return collections.ContainsString(p.Accounts, account)
}

// ParsePartitions parses the output of "scontrol show partition".
//
// Blocks are decoded by position: the partition name is expected on the first line,
// AllowAccounts and AllowQos as second and third fields of the second line and
// Nodes on the sixth line. The debug partition is skipped.
func ParsePartitions(r io.Reader) ([]Partition, error) {
	blocks, err := readBlocks(r)
	if err != nil {
		return nil, err
	}
	var errs *multierror.Error
	partitions := make([]Partition, 0, len(blocks))
	seen := make(map[string]struct{}, len(blocks))
	for i, block := range blocks {
		p, skip, err := parsePartitionBlock(block)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "partition block %d", i+1))
			continue
		}
		if skip {
			continue
		}
		if _, ok := seen[p.Name]; ok {
			errs = multierror.Append(errs, errors.Wrapf(malformedf("duplicate partition %q", p.Name), "partition block %d", i+1))
			continue
		}
		seen[p.Name] = struct{}{}
		partitions = append(partitions, p)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return partitions, nil
}

func parsePartitionBlock(lines []string) (Partition, bool, error) {
	var p Partition
	var err error
	p.Name, err = fieldValue(lines, 0, 0, "PartitionName")
	if err != nil {
		return p, false, err
	}
	if p.Name == DebugPartition {
		return p, true, nil
	}
	if len(lines) < 6 {
		return p, false, malformedf("partition %q: expecting at least 6 lines, got %d", p.Name, len(lines))
	}
	accounts, err := fieldValue(lines, 1, 1, "AllowAccounts")
	if err != nil {
		return p, false, errors.Wrapf(err, "partition %q", p.Name)
	}
	qos, err := fieldValue(lines, 1, 2, "AllowQos")
	if err != nil {
		return p, false, errors.Wrapf(err, "partition %q", p.Name)
	}
	nodes, err := fieldValue(lines, 5, 0, "Nodes")
	if err != nil {
		return p, false, errors.Wrapf(err, "partition %q", p.Name)
	}
	p.Accounts = collections.UniqueStrings(strings.Split(accounts, ","), AdminValue)
	p.QoS = collections.UniqueStrings(strings.Split(qos, ","), AdminValue)
	expanded, err := ExpandNodeList(nodes)
	if err != nil {
		return p, false, errors.Wrapf(err, "partition %q", p.Name)
	}
	p.Nodes = collections.UniqueStrings(expanded)
	return p, false, nil
}
