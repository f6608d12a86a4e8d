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
	"strings"

	"github.com/pkg/errors"
)

// ParseDefMemPerCPU returns the DefMemPerCPU value of a "scontrol show config" output.
//
// The second returned value is false when the setting is absent (for instance when
// DefMemPerNode is used instead).
func ParseDefMemPerCPU(r io.Reader) (string, bool, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), "=", 2)
		if len(kv) != 2 || strings.TrimSpace(kv[0]) != "DefMemPerCPU" {
			continue
		}
		value := strings.TrimSpace(kv[1])
		if value == "" {
			return "", false, malformedf("empty DefMemPerCPU value")
		}
		return value, true, nil
	}
	if err := scanner.Err(); err != nil {
		return "", false, errors.Wrap(err, "failed to read scontrol config output")
	}
	return "", false, nil
}
