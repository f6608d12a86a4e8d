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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	survey "gopkg.in/AlecAivazis/survey.v1"

	"github.com/ystia/hpcavail/availability"
)

const (
	accountsQuestion = "Enter your user account(s) \nSeparate with commas (,) if multiple or 'all' for all accounts:"
	cpusQuestion     = "Enter the number of CPU cores (0 for no filter):"
	gpusQuestion     = "Enter the number of GPUs (0 for no filter):"
)

func addRestrictionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("accounts", "a", nil, "Comma separated list of accounts to submit with, or 'all' for every account")
	cmd.Flags().Int("cpus", 0, "Minimum number of available CPU cores (0 for no filter)")
	cmd.Flags().Int("gpus", 0, "Minimum number of available GPUs (0 for no filter)")
}

// getRestrictions reads the restrictions from the command flags.
//
// Without --accounts, the user is prompted for the accounts and for the counts
// not given on the command line.
func getRestrictions(cmd *cobra.Command, opts ...survey.AskOpt) (availability.Restrictions, error) {
	flags := cmd.Flags()
	interactive := !flags.Changed("accounts")
	var accounts []string
	var err error
	if interactive {
		accounts, err = askAccounts(opts...)
	} else {
		accounts, err = flags.GetStringSlice("accounts")
	}
	if err != nil {
		return availability.Restrictions{}, err
	}
	cpus, err := getCount(cmd, "cpus", cpusQuestion, interactive, opts...)
	if err != nil {
		return availability.Restrictions{}, err
	}
	gpus, err := getCount(cmd, "gpus", gpusQuestion, interactive, opts...)
	if err != nil {
		return availability.Restrictions{}, err
	}
	return availability.NewRestrictions(accounts, cpus, gpus)
}

func getCount(cmd *cobra.Command, flag, question string, interactive bool, opts ...survey.AskOpt) (int, error) {
	if interactive && !cmd.Flags().Changed(flag) {
		return askCount(question, opts...)
	}
	return cmd.Flags().GetInt(flag)
}

func askAccounts(opts ...survey.AskOpt) ([]string, error) {
	answer := struct {
		Value string
	}{}
	question := &survey.Question{
		Name:     "value",
		Prompt:   &survey.Input{Message: accountsQuestion},
		Validate: survey.Required,
	}
	if err := survey.Ask([]*survey.Question{question}, &answer, opts...); err != nil {
		return nil, err
	}
	return availability.ParseAccounts(answer.Value), nil
}

func askCount(message string, opts ...survey.AskOpt) (int, error) {
	answer := struct {
		Value string
	}{}
	question := &survey.Question{
		Name:     "value",
		Prompt:   &survey.Input{Message: message, Default: "0"},
		Validate: validateCount,
	}
	if err := survey.Ask([]*survey.Question{question}, &answer, opts...); err != nil {
		return 0, err
	}
	return parseCount(answer.Value)
}

func validateCount(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return errors.Errorf("unexpected answer type %T", val)
	}
	_, err := parseCount(str)
	return err
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Errorf("%q is not a number", s)
	}
	if n < 0 {
		return 0, errors.Errorf("You entered %d, but should provide a number greater or equal to 0", n)
	}
	return n, nil
}

func printRestrictions(w io.Writer, r availability.Restrictions) {
	fmt.Fprintln(w, "You have entered the following:")
	fmt.Fprintf(w, "\tAccounts: %s\n", strings.Join(r.Accounts, ", "))
	fmt.Fprintf(w, "\t#CPU core: %d\n", r.CPUCores)
	fmt.Fprintf(w, "\t#GPU: %d\n", r.GPUs)
}
