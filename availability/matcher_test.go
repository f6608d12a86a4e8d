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

package availability

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ystia/hpcavail/slurm"
)

var testNodes = []slurm.Node{
	{Name: "cn01", CPUCores: 0, GPUs: 0, GPUModel: slurm.NoGPU, MemoryGB: 10},
	{Name: "cn03", CPUCores: 2, GPUs: 0, GPUModel: slurm.NoGPU, MemoryGB: 8192},
	{Name: "cn09", CPUCores: 56, GPUs: 3, GPUModel: "a100", MemoryGB: 400},
	{Name: "cn10", CPUCores: 32, GPUs: 0, GPUModel: "v100", MemoryGB: 200},
	{Name: "cn11", CPUCores: 48, GPUs: 0, GPUModel: slurm.NoGPU, MemoryGB: 1024},
	{Name: "cn99", CPUCores: 64, GPUs: 8, GPUModel: "h100", MemoryGB: 2048},
}

func restrictions(t *testing.T, accounts []string, cpus, gpus int) Restrictions {
	r, err := NewRestrictions(accounts, cpus, gpus)
	require.NoError(t, err)
	return r
}

func TestMatch(t *testing.T) {
	t.Parallel()
	rows := Match(testPartitions, testNodes, restrictions(t, []string{"teamB", "teamC"}, 1, 0))
	require.Equal(t, []Row{
		{Node: "cn03", Partition: "general", Accounts: []string{"teamB"}, QoS: []string{"normal", "long"}, CPUCores: 2, GPUModel: "none", MemoryGB: 8192},
		{Node: "cn03", Partition: "bigmem", Accounts: []string{"teamC"}, QoS: []string{"normal"}, CPUCores: 2, GPUModel: "none", MemoryGB: 8192},
		{Node: "cn09", Partition: "gpu", Accounts: []string{"teamB", "teamC"}, QoS: []string{"gpu"}, CPUCores: 56, GPUs: 3, GPUModel: "a100", MemoryGB: 400},
		{Node: "cn10", Partition: "gpu", Accounts: []string{"teamB", "teamC"}, QoS: []string{"gpu"}, CPUCores: 32, GPUModel: "v100", MemoryGB: 200},
		{Node: "cn11", Partition: "bigmem", Accounts: []string{"teamC"}, QoS: []string{"normal"}, CPUCores: 48, GPUModel: "none", MemoryGB: 1024},
	}, rows)
}

func TestMatchAccountOrder(t *testing.T) {
	t.Parallel()
	rows := Match(testPartitions, testNodes, restrictions(t, []string{"teamC", "teamB"}, 0, 1))
	require.Len(t, rows, 1)
	require.Equal(t, "cn09", rows[0].Node)
	require.Equal(t, []string{"teamC", "teamB"}, rows[0].Accounts)
}

func TestMatchExcludesNodesFailingMinimums(t *testing.T) {
	t.Parallel()
	accounts := []string{"teamA", "teamB", "teamC"}
	for _, tc := range []struct{ cpus, gpus int }{{0, 0}, {2, 0}, {3, 0}, {40, 0}, {0, 1}, {0, 3}, {0, 4}, {50, 2}, {100, 0}} {
		rows := Match(testPartitions, testNodes, restrictions(t, accounts, tc.cpus, tc.gpus))
		for _, row := range rows {
			require.True(t, row.CPUCores >= tc.cpus, "row %+v does not satisfy %d cores", row, tc.cpus)
			require.True(t, row.GPUs >= tc.gpus, "row %+v does not satisfy %d GPUs", row, tc.gpus)
		}
	}
	require.Len(t, Match(testPartitions, testNodes, restrictions(t, accounts, 100, 0)), 0)
}

func TestMatchDropsNodesWithoutGrantingPartition(t *testing.T) {
	t.Parallel()
	rows := Match(testPartitions, testNodes, restrictions(t, []string{"teamA"}, 0, 0))
	for _, row := range rows {
		require.NotEqual(t, "cn99", row.Node, "cn99 belongs to no partition")
		require.Equal(t, "general", row.Partition)
	}
	require.Len(t, rows, 2)
	require.Equal(t, "cn01", rows[0].Node)
	require.Equal(t, "cn03", rows[1].Node)
}

func TestMatchIsIdempotent(t *testing.T) {
	t.Parallel()
	r := restrictions(t, []string{"teamA", "teamB", "teamC"}, 0, 0)
	first := Match(testPartitions, testNodes, r)
	second := Match(testPartitions, testNodes, r)
	require.Equal(t, first, second)
	require.NotEmpty(t, first)
}

func loadScenario(t *testing.T) ([]slurm.Partition, []slurm.Node) {
	pf, err := os.Open("testdata/partitions.txt")
	require.NoError(t, err)
	defer pf.Close()
	partitions, err := slurm.ParsePartitions(pf)
	require.NoError(t, err)

	nf, err := os.Open("testdata/nodes.txt")
	require.NoError(t, err)
	defer nf.Close()
	nodes, err := slurm.ParseNodes(nf)
	require.NoError(t, err)
	return partitions, nodes
}

func runScenario(t *testing.T, accounts []string, cpus, gpus int) ([]Row, error) {
	partitions, nodes := loadScenario(t)
	r := restrictions(t, accounts, cpus, gpus)
	res, err := ResolveAccounts(r.Accounts, partitions, false)
	if err != nil {
		return nil, err
	}
	return Match(partitions, nodes, r.WithAccounts(res.Accounts)), nil
}

func TestScenarioSingleMatchingNode(t *testing.T) {
	t.Parallel()
	rows, err := runScenario(t, []string{"teamA"}, 1, 0)
	require.NoError(t, err)
	require.Equal(t, []Row{{
		Node:      "cn03",
		Partition: "general",
		Accounts:  []string{"teamA"},
		QoS:       []string{"normal"},
		CPUCores:  2,
		GPUs:      0,
		GPUModel:  "none",
		MemoryGB:  8192,
	}}, rows)
}

func TestScenarioTooManyCores(t *testing.T) {
	t.Parallel()
	rows, err := runScenario(t, []string{"teamA"}, 4, 0)
	require.NoError(t, err)
	require.Len(t, rows, 0)
}

func TestScenarioUnknownAccount(t *testing.T) {
	t.Parallel()
	rows, err := runScenario(t, []string{"ghost"}, 0, 0)
	require.Error(t, err)
	require.True(t, IsAccountNotRecognizedError(err))
	require.Contains(t, err.Error(), "Possible Accounts\n teamA")
	require.Len(t, rows, 0)
}

func TestScenarioAllAccounts(t *testing.T) {
	t.Parallel()
	partitions, _ := loadScenario(t)
	require.Equal(t, []string{"teamA"}, KnownAccounts(partitions))

	rows, err := runScenario(t, []string{"all"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "general", rows[0].Partition)
	require.Equal(t, []string{"teamA"}, rows[0].Accounts)
}
