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

package commands

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/hinshun/vt10x"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	survey "gopkg.in/AlecAivazis/survey.v1"
	terminal "gopkg.in/AlecAivazis/survey.v1/terminal"

	"github.com/ystia/hpcavail/availability"
)

func TestParseCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"Zero", "0", 0, false},
		{"Positive", "12", 12, false},
		{"Spaces", " 4 ", 4, false},
		{"Negative", "-1", 0, true},
		{"NotANumber", "four", 0, true},
		{"Empty", "", 0, true},
		{"Float", "1.5", 0, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseCount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateCount(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateCount("3"))
	assert.Error(t, validateCount("-3"))
	assert.Error(t, validateCount(3))
}

func TestPrintRestrictions(t *testing.T) {
	t.Parallel()
	r, err := availability.NewRestrictions([]string{"teamA", "teamB"}, 4, 1)
	require.NoError(t, err)
	out := new(bytes.Buffer)
	printRestrictions(out, r)
	assert.Equal(t, "You have entered the following:\n\tAccounts: teamA, teamB\n\t#CPU core: 4\n\t#GPU: 1\n", out.String())
}

// TestAskInputs checks functions getting interactive inputs
func TestAskInputs(t *testing.T) {
	t.Run("Accounts", func(t *testing.T) {
		var accounts []string
		runTest(t, "Enter your user account(s)", "teamA,teamB", func(stdio terminal.Stdio) error {
			var err error
			accounts, err = askAccounts(survey.WithStdio(stdio.In, stdio.Out, stdio.Err))
			return err
		})
		assert.Equal(t, []string{"teamA", "teamB"}, accounts)
	})
	t.Run("CPUs", func(t *testing.T) {
		var cpus int
		runTest(t, "Enter the number of CPU cores", "16", func(stdio terminal.Stdio) error {
			var err error
			cpus, err = askCount(cpusQuestion, survey.WithStdio(stdio.In, stdio.Out, stdio.Err))
			return err
		})
		assert.Equal(t, 16, cpus)
	})
	t.Run("GPUsDefault", func(t *testing.T) {
		gpus := -1
		runTest(t, "Enter the number of GPUs", "", func(stdio terminal.Stdio) error {
			var err error
			gpus, err = askCount(gpusQuestion, survey.WithStdio(stdio.In, stdio.Out, stdio.Err))
			return err
		})
		assert.Equal(t, 0, gpus)
	})
}

func newRestrictionsCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "hpcavail"}
	addRestrictionFlags(cmd)
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	return cmd
}

func TestGetRestrictionsFromFlags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		flags   map[string]string
		want    availability.Restrictions
		wantErr bool
	}{
		{"AccountsOnly", map[string]string{"accounts": "teamA,teamB"},
			availability.Restrictions{Accounts: []string{"teamA", "teamB"}}, false},
		{"AllFlags", map[string]string{"accounts": "all", "cpus": "8", "gpus": "2"},
			availability.Restrictions{Accounts: []string{"all"}, CPUCores: 8, GPUs: 2}, false},
		{"NegativeCPUs", map[string]string{"accounts": "teamA", "cpus": "-1"}, availability.Restrictions{}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := getRestrictions(newRestrictionsCmd(t, tt.flags))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetRestrictionsPromptsOnlyMissingValues(t *testing.T) {
	cmd := newRestrictionsCmd(t, map[string]string{"cpus": "16", "gpus": "2"})
	var r availability.Restrictions
	runTest(t, "Enter your user account(s)", "teamC", func(stdio terminal.Stdio) error {
		var err error
		r, err = getRestrictions(cmd, survey.WithStdio(stdio.In, stdio.Out, stdio.Err))
		return err
	})
	assert.Equal(t, availability.Restrictions{Accounts: []string{"teamC"}, CPUCores: 16, GPUs: 2}, r)
}

func expectOutputsSendInputs(c *expect.Console, output, input string) {
	res, err := c.ExpectString(output)
	if err != nil {
		fmt.Printf("Failed to get expected output, got %s\n", res)
	}
	c.SendLine(input)
	c.ExpectEOF()
}

func runTest(t *testing.T, question, answer string, test func(terminal.Stdio) error) {
	buf := new(bytes.Buffer)
	c, _, err := vt10x.NewVT10XConsole(expect.WithStdout(buf), expect.WithDefaultTimeout(10*time.Second))
	require.NoError(t, err, "Failed to create a console")
	defer c.Close()

	donec := make(chan struct{})
	go func() {
		defer close(donec)
		expectOutputsSendInputs(c, question, answer)
	}()

	err = test(terminal.Stdio{In: c.Tty(), Out: c.Tty(), Err: c.Tty()})
	require.NoError(t, err)

	// Close the slave end of the pty, and read the remaining bytes from the master end.
	c.Tty().Close()
	<-donec

	t.Logf("Raw output: %q", buf.String())
}
