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

// Package availability matches Slurm partitions and nodes against user restrictions.
package availability

import (
	"github.com/ystia/hpcavail/slurm"
)

// A Row reports a node reachable through a partition by some of the user accounts
type Row struct {
	Node      string
	Partition string
	Accounts  []string
	QoS       []string
	CPUCores  int
	GPUs      int
	GPUModel  string
	MemoryGB  int
}

// Match returns a row for each node satisfying the CPU and GPU restrictions and each partition
// of this node allowing at least one of the restricted accounts.
//
// Nodes are reported in the given order, and for a node its partitions are reported in the given order.
// Restrictions accounts are expected to be resolved already (see ResolveAccounts).
func Match(partitions []slurm.Partition, nodes []slurm.Node, r Restrictions) []Row {
	byNode := make(map[string][]int)
	for i, p := range partitions {
		for _, n := range p.Nodes {
			byNode[n] = append(byNode[n], i)
		}
	}

	rows := make([]Row, 0)
	for _, n := range nodes {
		if n.CPUCores < r.CPUCores || n.GPUs < r.GPUs {
			continue
		}
		for _, idx := range byNode[n.Name] {
			p := partitions[idx]
			accounts := matchingAccounts(p, r.Accounts)
			if len(accounts) == 0 {
				continue
			}
			rows = append(rows, Row{
				Node:      n.Name,
				Partition: p.Name,
				Accounts:  accounts,
				QoS:       p.QoS,
				CPUCores:  n.CPUCores,
				GPUs:      n.GPUs,
				GPUModel:  n.GPUModel,
				MemoryGB:  n.MemoryGB,
			})
		}
	}
	return rows
}

func matchingAccounts(p slurm.Partition, accounts []string) []string {
	var res []string
	for _, a := range accounts {
		if p.AllowsAccount(a) {
			res = append(res, a)
		}
	}
	return res
}
