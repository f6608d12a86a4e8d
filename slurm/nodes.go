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
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/ystia/hpcavail/helper/stringutil"
)

// NoGPU is the GPU model reported for nodes without GPU
const NoGPU = "none"

// genericGPU is the GPU model reported when the GPU resource is not typed (gres/gpu=4)
const genericGPU = "gpu"

// A Node is a compute node as reported by "scontrol show node", reduced to its available resources
type Node struct {
	Name string
	// CPUCores is the number of idle physical cores, two hardware threads per core are assumed
	CPUCores int
	GPUs     int
	GPUModel string
	// MemoryGB is the free memory divided by 1024
	MemoryGB int
}

// ParseNodes parses the output of "scontrol show node".
//
// Blocks are decoded by position: NodeName on the first line, CPUAlloc and CPUTot on the second,
// FreeMem as third field of the eighth line, configured and allocated trackable resources
// on the sixth and fifth lines before the end of the block.
func ParseNodes(r io.Reader) ([]Node, error) {
	blocks, err := readBlocks(r)
	if err != nil {
		return nil, err
	}
	var errs *multierror.Error
	nodes := make([]Node, 0, len(blocks))
	seen := make(map[string]struct{}, len(blocks))
	for i, block := range blocks {
		n, err := parseNodeBlock(block)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "node block %d", i+1))
			continue
		}
		if _, ok := seen[n.Name]; ok {
			errs = multierror.Append(errs, errors.Wrapf(malformedf("duplicate node %q", n.Name), "node block %d", i+1))
			continue
		}
		seen[n.Name] = struct{}{}
		nodes = append(nodes, n)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return nodes, nil
}

func parseNodeBlock(lines []string) (Node, error) {
	n := Node{GPUModel: NoGPU}
	var err error
	n.Name, err = fieldValue(lines, 0, 0, "NodeName")
	if err != nil {
		return n, err
	}
	if len(lines) < 8 {
		return n, malformedf("node %q: expecting at least 8 lines, got %d", n.Name, len(lines))
	}

	cpuAlloc, err := intFieldValue(lines, 1, 0, "CPUAlloc")
	if err != nil {
		return n, errors.Wrapf(err, "node %q", n.Name)
	}
	cpuTot, err := intFieldValue(lines, 1, 1, "CPUTot")
	if err != nil {
		return n, errors.Wrapf(err, "node %q", n.Name)
	}
	if cpuAlloc > cpuTot {
		return n, malformedf("node %q: CPUAlloc=%d is greater than CPUTot=%d", n.Name, cpuAlloc, cpuTot)
	}
	n.CPUCores = (cpuTot - cpuAlloc) / 2

	freeMem, err := intFieldValue(lines, 7, 2, "FreeMem")
	if err != nil {
		return n, errors.Wrapf(err, "node %q", n.Name)
	}
	n.MemoryGB = freeMem / 1024

	model, total, found, err := parseGPUResource(lines[len(lines)-6])
	if err != nil {
		return n, errors.Wrapf(err, "node %q: configured resources", n.Name)
	}
	if found {
		n.GPUModel = model
		n.GPUs = total
	}
	_, allocated, found, err := parseGPUResource(lines[len(lines)-5])
	if err != nil {
		return n, errors.Wrapf(err, "node %q: allocated resources", n.Name)
	}
	if found {
		n.GPUs -= allocated
	}
	if n.GPUs < 0 {
		return n, malformedf("node %q: %d GPUs allocated out of %d configured", n.Name, allocated, total)
	}
	return n, nil
}

// parseGPUResource decodes a trackable resources line such as "CfgTRES=cpu=64,mem=500G,gres/gpu:a100=4".
//
// The last comma separated segment mentioning gpu is used: the count follows its last '=' and
// the model sits between ':' and '='.
func parseGPUResource(line string) (string, int, bool, error) {
	segment, found := stringutil.LastSegmentContaining(strings.TrimSpace(line), ",", "gpu")
	if !found {
		return "", 0, false, nil
	}
	head, value, found := stringutil.CutLast(segment, "=")
	if !found {
		return "", 0, false, malformedf("no GPU count in %q", segment)
	}
	count, err := strconv.Atoi(value)
	if err != nil || count < 0 {
		return "", 0, false, malformedf("GPU count of %q is not a non-negative integer", segment)
	}
	model := genericGPU
	if _, m, typed := stringutil.CutLast(head, ":"); typed && m != "" {
		model = m
	}
	return model, count, true, nil
}
