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
	"sort"

	"github.com/ystia/hpcavail/helper/collections"
	"github.com/ystia/hpcavail/slurm"
)

// AccountResolution is the outcome of checking requested accounts against the cluster partitions
type AccountResolution struct {
	// Accounts are the requested accounts known by at least one partition, in request order
	Accounts []string
	// Unrecognized are the requested accounts no partition knows about
	Unrecognized []string
	// Known is the sorted list of every account allowed by a partition
	Known []string
}

// KnownAccounts returns the sorted union of the accounts allowed by the given partitions
func KnownAccounts(partitions []slurm.Partition) []string {
	set := make(map[string]struct{})
	for _, p := range partitions {
		for _, a := range p.Accounts {
			set[a] = struct{}{}
		}
	}
	known := make([]string, 0, len(set))
	for a := range set {
		known = append(known, a)
	}
	sort.Strings(known)
	return known
}

// ResolveAccounts checks the requested accounts against the accounts allowed by the partitions.
//
// The "all" wildcard resolves to every known account. An error is returned when no requested
// account is known, or in strict mode when some of them are unknown.
func ResolveAccounts(requested []string, partitions []slurm.Partition, strict bool) (AccountResolution, error) {
	res := AccountResolution{Known: KnownAccounts(partitions)}
	if IsWildcard(requested) {
		res.Accounts = append([]string(nil), res.Known...)
	} else {
		for _, a := range requested {
			if collections.ContainsString(res.Known, a) {
				res.Accounts = append(res.Accounts, a)
			} else {
				res.Unrecognized = append(res.Unrecognized, a)
			}
		}
	}
	if len(res.Accounts) == 0 {
		return res, accountNotRecognizedError{requested: requested, known: res.Known}
	}
	if strict && len(res.Unrecognized) > 0 {
		return res, partialAccountMismatchError{unrecognized: res.Unrecognized, known: res.Known}
	}
	return res, nil
}
