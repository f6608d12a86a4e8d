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

package stringutil

import (
	"strings"
)

// CutLast slices str around the last instance of separator and returns the text before and after it.
// If separator does not appear in str, CutLast returns str, "", false.
func CutLast(str, separator string) (before, after string, found bool) {
	idx := strings.LastIndex(str, separator)
	if idx < 0 {
		return str, "", false
	}
	return str[:idx], str[idx+len(separator):], true
}

// LastSegmentContaining returns the last "separator-separated" segment of str containing substr
func LastSegmentContaining(str, separator, substr string) (string, bool) {
	segments := strings.Split(str, separator)
	for i := len(segments) - 1; i >= 0; i-- {
		if strings.Contains(segments[i], substr) {
			return segments[i], true
		}
	}
	return "", false
}
