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

package executil

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

func captureOutput(cmd *exec.Cmd, run func() error) ([]byte, error) {
	if cmd.Stdout != nil {
		return nil, errors.New("executil: Stdout already set")
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if cmd.Stderr == nil {
		cmd.Stderr = &stderr
	}
	if err := run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.Bytes(), errors.Wrapf(err, "command %q failed: %s", strings.Join(cmd.Args, " "), msg)
		}
		return stdout.Bytes(), errors.Wrapf(err, "command %q failed", strings.Join(cmd.Args, " "))
	}
	return stdout.Bytes(), nil
}
