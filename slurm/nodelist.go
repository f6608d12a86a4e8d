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
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NodePrefix is the prefix of compute node names
const NodePrefix = "cn"

// emptyNodeList is what scontrol prints for a partition without nodes
const emptyNodeList = "(null)"

// maxRangeNodes bounds the number of nodes a single start-end range may expand to
const maxRangeNodes = 1 << 16

var nodeRangeRegexp = regexp.MustCompile(`^(\d+)-(\d+)$`)

// NodeName returns the name of the compute node with the given numeric id.
//
// Ids lower than 10 are zero-padded to 2 digits: 3 gives "cn03" and 12 gives "cn12".
func NodeName(id int) string {
	return fmt.Sprintf("%s%02d", NodePrefix, id)
}

// ExpandNodeList expands a Slurm node list such as "cn[01-03,10]" into explicit node names.
//
// Tokens are bare numbers, start-end ranges or literal names that are kept as is.
func ExpandNodeList(list string) ([]string, error) {
	list = strings.TrimSpace(list)
	if list == emptyNodeList {
		return []string{}, nil
	}
	list = strings.NewReplacer("[", "", "]", "").Replace(list)

	nodes := make([]string, 0)
	for _, token := range strings.Split(list, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		expanded, err := expandNodeToken(token)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, expanded...)
	}
	return nodes, nil
}

func expandNodeToken(token string) ([]string, error) {
	id := strings.TrimPrefix(token, NodePrefix)
	if isDigits(id) {
		n, err := strconv.Atoi(id)
		if err != nil {
			return nil, malformedf("invalid node id %q: %v", token, err)
		}
		return []string{NodeName(n)}, nil
	}
	m := nodeRangeRegexp.FindStringSubmatch(id)
	if m == nil {
		return []string{token}, nil
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, malformedf("invalid node range %q: %v", token, err)
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, malformedf("invalid node range %q: %v", token, err)
	}
	if start > end {
		return nil, malformedf("invalid node range %q: start is greater than end", token)
	}
	if end-start >= maxRangeNodes {
		return nil, malformedf("invalid node range %q: too many nodes", token)
	}
	nodes := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		nodes = append(nodes, NodeName(i))
	}
	return nodes, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
