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
	"strings"

	"github.com/pkg/errors"

	"github.com/ystia/hpcavail/helper/collections"
)

// AllAccounts is the wildcard selecting every account known by the cluster partitions
const AllAccounts = "all"

// Restrictions are the constraints a node must satisfy to be reported
type Restrictions struct {
	// Accounts the user may submit with, in preference order
	Accounts []string
	// CPUCores is the minimum number of available cores, 0 means no filter
	CPUCores int
	// GPUs is the minimum number of available GPUs, 0 means no filter
	GPUs int
}

// NewRestrictions validates and normalizes user inputs into Restrictions.
//
// Accounts are trimmed and de-duplicated, at least one is required.
func NewRestrictions(accounts []string, cpuCores, gpus int) (Restrictions, error) {
	trimmed := make([]string, 0, len(accounts))
	for _, a := range accounts {
		trimmed = append(trimmed, strings.TrimSpace(a))
	}
	r := Restrictions{
		Accounts: collections.UniqueStrings(trimmed),
		CPUCores: cpuCores,
		GPUs:     gpus,
	}
	if len(r.Accounts) == 0 {
		return r, errors.New("at least one account is required")
	}
	if cpuCores < 0 {
		return r, errors.Errorf("the number of CPU cores should be positive or 0, got %d", cpuCores)
	}
	if gpus < 0 {
		return r, errors.Errorf("the number of GPUs should be positive or 0, got %d", gpus)
	}
	return r, nil
}

// ParseAccounts splits a comma separated list of accounts as typed by a user
func ParseAccounts(s string) []string {
	return strings.Split(s, ",")
}

// WithAccounts returns a copy of the restrictions using the given accounts
func (r Restrictions) WithAccounts(accounts []string) Restrictions {
	r.Accounts = append([]string(nil), accounts...)
	return r
}

// IsWildcard returns true if the given accounts select every known account
func IsWildcard(accounts []string) bool {
	return collections.ContainsString(accounts, AllAccounts)
}
