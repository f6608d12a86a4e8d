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

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type malformedInputError struct {
	msg string
}

func (e malformedInputError) Error() string {
	return e.msg
}

func malformedf(format string, args ...interface{}) error {
	return malformedInputError{msg: fmt.Sprintf(format, args...)}
}

// IsMalformedInputError checks if an error is due to a scontrol output not matching the expected layout.
//
// Errors aggregated into a *multierror.Error are checked individually.
func IsMalformedInputError(err error) bool {
	cause := errors.Cause(err)
	if merr, ok := cause.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			if IsMalformedInputError(e) {
				return true
			}
		}
		return false
	}
	_, ok := cause.(malformedInputError)
	return ok
}
