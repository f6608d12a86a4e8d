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

package sizeutil

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// HumanizeMB converts a size expressed in mebibytes as "4096" into a human readable size as "4.0 GiB"
func HumanizeMB(size string) (string, error) {
	mSize, err := strconv.ParseUint(strings.TrimSpace(size), 10, 64)
	if err != nil {
		return "", errors.Errorf("Can't convert size %q to a number of MB: %v", size, err)
	}
	return humanize.IBytes(mSize * humanize.MiByte), nil
}
