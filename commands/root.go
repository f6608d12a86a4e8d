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
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ystia/hpcavail/config"
	"github.com/ystia/hpcavail/helper/pathutil"
	"github.com/ystia/hpcavail/log"
	"github.com/ystia/hpcavail/slurm"
)

func init() {
	setConfig()
	cobra.OnInitialize(initConfig)
}

var cfgFile string

// RootCmd is the root of hpcavail commands tree
var RootCmd = &cobra.Command{
	Use:   "hpcavail",
	Short: "Find the Slurm nodes available for your jobs",
	Long: `hpcavail lists the nodes of a Slurm cluster that currently have enough free
CPU cores and GPUs for your job, along with the partitions and QoS your
account(s) may use to reach them.

Restrictions are taken from the --accounts, --cpus and --gpus flags. When
--accounts is not set, the restrictions missing from the command line are
prompted interactively.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		r, err := getRestrictions(cmd)
		if err != nil {
			return err
		}
		printRestrictions(os.Stdout, r)

		if !cfg.NoColor {
			defer color.Unset()
		}
		opts := checkOptions{
			restrictions: r,
			strict:       cfg.StrictAccounts,
			colorize:     !cfg.NoColor,
		}
		return runCheck(context.Background(), newSource(cfg), opts, os.Stdout)
	},
}

// ErrExit prints the given error and exits with status 1
func ErrExit(msg interface{}) {
	fmt.Fprintln(os.Stderr, "Error:", msg)
	os.Exit(1)
}

func setConfig() {
	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is /etc/hpcavail/hpcavail.[json|yaml|toml])")
	RootCmd.PersistentFlags().Bool("debug", false, "Enable debug logs on stderr")
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable coloring output")
	RootCmd.PersistentFlags().String("scontrol", config.DefaultScontrolPath, "Path of the scontrol command")
	RootCmd.PersistentFlags().Duration("timeout", config.DefaultCommandTimeout, "Timeout of each scontrol invocation")
	RootCmd.PersistentFlags().String("partitions-file", "", "Read partitions from a captured 'scontrol show partition' output instead of running scontrol")
	RootCmd.PersistentFlags().String("nodes-file", "", "Read nodes from a captured 'scontrol show node' output instead of running scontrol")
	RootCmd.PersistentFlags().String("slurm-config-file", "", "Read the Slurm configuration from a captured 'scontrol show config' output instead of running scontrol")

	addRestrictionFlags(RootCmd)
	RootCmd.Flags().Bool("strict-accounts", false, "Fail when some of the given accounts are unknown instead of ignoring them")

	viper.BindPFlag("debug", RootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("no_color", RootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("scontrol.path", RootCmd.PersistentFlags().Lookup("scontrol"))
	viper.BindPFlag("scontrol.timeout", RootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("snapshots.partition", RootCmd.PersistentFlags().Lookup("partitions-file"))
	viper.BindPFlag("snapshots.node", RootCmd.PersistentFlags().Lookup("nodes-file"))
	viper.BindPFlag("snapshots.config", RootCmd.PersistentFlags().Lookup("slurm-config-file"))
	viper.BindPFlag("strict_accounts", RootCmd.Flags().Lookup("strict-accounts"))

	viper.SetEnvPrefix("hpcavail")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("scontrol.path", config.DefaultScontrolPath)
	viper.SetDefault("scontrol.timeout", config.DefaultCommandTimeout)

	viper.SetConfigName("hpcavail")
	viper.AddConfigPath("/etc/hpcavail/")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home + "/.hpcavail")
	}
	viper.AddConfigPath(".")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if viper.GetBool("debug") {
		log.SetDebug(true)
	}
	if cfgFile != "" {
		p, err := pathutil.ExpandPath(cfgFile)
		if err != nil {
			log.Printf("Can't expand config file path %q: %v", cfgFile, err)
			p = cfgFile
		}
		// enable ability to specify config file via flag
		viper.SetConfigFile(p)
	}
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugln("Using config file:", viper.ConfigFileUsed())
	} else {
		log.Debugln("Config not found... ")
	}
}

func getConfig() config.Configuration {
	cfg := config.Configuration{
		Scontrol: config.CommandConfig{
			"path":    viper.GetString("scontrol.path"),
			"timeout": viper.Get("scontrol.timeout"),
			"args":    viper.Get("scontrol.args"),
		},
		Snapshots:      make(map[string]string),
		NoColor:        viper.GetBool("no_color"),
		StrictAccounts: viper.GetBool("strict_accounts"),
	}
	for _, entity := range []string{slurm.EntityPartition, slurm.EntityNode, slurm.EntityConfig} {
		if f := viper.GetString("snapshots." + entity); f != "" {
			cfg.Snapshots[entity] = f
		}
	}
	log.Debugf("Configuration: %+v", cfg)
	return cfg
}

// newSource returns the Source described by the configuration: captured snapshots
// when defined, falling back to the scontrol command for the other entities
func newSource(cfg config.Configuration) slurm.Source {
	cmdSource := &slurm.CommandSource{
		Path:    cfg.Scontrol.GetStringOrDefault("path", config.DefaultScontrolPath),
		Args:    cfg.Scontrol.GetStringSlice("args"),
		Timeout: cfg.Scontrol.GetDurationOrDefault("timeout", config.DefaultCommandTimeout),
	}
	if len(cfg.Snapshots) == 0 {
		return cmdSource
	}
	return &slurm.FileSource{Files: cfg.Snapshots, Fallback: cmdSource}
}
