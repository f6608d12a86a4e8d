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

// Package config defines configuration structures
package config

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DefaultScontrolPath is the default command used to query the Slurm controller
const DefaultScontrolPath = "scontrol"

// DefaultCommandTimeout is the default timeout of a single scontrol invocation
const DefaultCommandTimeout = 30 * time.Second

// Configuration holds config information filled by Cobra and Viper (see commands package for more information)
type Configuration struct {
	// Scontrol holds the settings of the scontrol command (path, timeout, args)
	Scontrol CommandConfig
	// Snapshots maps a scontrol entity (partition, node, config) to a file containing
	// a captured output of "scontrol show <entity>"
	Snapshots      map[string]string
	NoColor        bool
	StrictAccounts bool
}

// CommandConfig parameters for an external command.
//
// It has methods to automatically cast data to the desired type.
type CommandConfig map[string]interface{}

// GetString returns the value of the given key casted into a string.
// An empty string is returned if not found.
func (cc CommandConfig) GetString(name string) string {
	return cast.ToString(cc[name])
}

// GetStringOrDefault returns the value of the given key casted into a string.
// The given default value is returned if not found.
func (cc CommandConfig) GetStringOrDefault(name, defaultValue string) string {
	if res := cc.GetString(name); res != "" {
		return res
	}
	return defaultValue
}

// GetDurationOrDefault returns the value of the given key casted into a duration.
// Strings as "30s" and numbers of nanoseconds are accepted. The given default value is
// returned if not found or not positive.
func (cc CommandConfig) GetDurationOrDefault(name string, defaultValue time.Duration) time.Duration {
	if d := cast.ToDuration(cc[name]); d > 0 {
		return d
	}
	return defaultValue
}

// GetStringSlice returns the value of the given key casted into a slice of string.
// If the corresponding raw value is a string, it is splited on spaces.
// A nil or empty slice is returned if not found.
func (cc CommandConfig) GetStringSlice(name string) []string {
	val := cc[name]
	switch v := val.(type) {
	case string:
		return strings.Fields(v)
	default:
		return cast.ToStringSlice(cc[name])
	}
}
