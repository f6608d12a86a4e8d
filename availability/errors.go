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
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type accountNotRecognizedError struct {
	requested []string
	known     []string
}

func (e accountNotRecognizedError) Error() string {
	return fmt.Sprintf("None of your account(s) (%s) are allowed to use any of the partitions. Please contact the HPC admin, or check if you typed correctly.\nPossible Accounts\n %s",
		strings.Join(e.requested, ", "), strings.Join(e.known, " "))
}

// IsAccountNotRecognizedError checks if an error is due to none of the requested accounts being known
func IsAccountNotRecognizedError(err error) bool {
	_, ok := errors.Cause(err).(accountNotRecognizedError)
	return ok
}

type partialAccountMismatchError struct {
	unrecognized []string
	known        []string
}

func (e partialAccountMismatchError) Error() string {
	return UnrecognizedAccountsMessage(e.unrecognized, e.known)
}

// IsPartialAccountMismatchError checks if an error is due to some of the requested accounts being unknown
func IsPartialAccountMismatchError(err error) bool {
	_, ok := errors.Cause(err).(partialAccountMismatchError)
	return ok
}

// UnrecognizedAccountsMessage returns the message listing unknown accounts along with the possible ones
func UnrecognizedAccountsMessage(unrecognized, known []string) string {
	return fmt.Sprintf("Account(s) %s is/are not present in this HPC. Please check if you typed correctly.\nPossible Accounts\n %s",
		strings.Join(unrecognized, ", "), strings.Join(known, " "))
}
