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
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// readBlocks groups the lines of a "scontrol show" output into blocks separated by blank lines
func readBlocks(r io.Reader) ([][]string, error) {
	var blocks [][]string
	var current []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read scontrol output")
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks, nil
}

// fieldValue returns the value of the key=value token found at the given whitespace separated
// field index of a line (both 0-based). The token key must match.
func fieldValue(lines []string, lineIdx, fieldIdx int, key string) (string, error) {
	if lineIdx >= len(lines) {
		return "", malformedf("missing line %d, expecting %s=<value>", lineIdx+1, key)
	}
	fields := strings.Fields(lines[lineIdx])
	if fieldIdx >= len(fields) {
		return "", malformedf("line %d: missing field %d, expecting %s=<value> in %q", lineIdx+1, fieldIdx+1, key, lines[lineIdx])
	}
	kv := strings.SplitN(fields[fieldIdx], "=", 2)
	if len(kv) != 2 || kv[0] != key {
		return "", malformedf("line %d: expecting %s=<value> as field %d, got %q", lineIdx+1, key, fieldIdx+1, fields[fieldIdx])
	}
	return kv[1], nil
}

func intFieldValue(lines []string, lineIdx, fieldIdx int, key string) (int, error) {
	value, err := fieldValue(lines, lineIdx, fieldIdx, key)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(value)
	if err != nil || i < 0 {
		return 0, malformedf("line %d: %s=%q is not a non-negative integer", lineIdx+1, key, value)
	}
	return i, nil
}
