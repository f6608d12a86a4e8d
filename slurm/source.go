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
	"context"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"

	"github.com/ystia/hpcavail/helper/executil"
	"github.com/ystia/hpcavail/helper/pathutil"
	"github.com/ystia/hpcavail/log"
)

// Entities that can be given to Source.Show
const (
	EntityPartition = "partition"
	EntityNode      = "node"
	EntityConfig    = "config"
)

// A Source provides the raw output of "scontrol show <entity>"
type Source interface {
	Show(ctx context.Context, entity string) ([]byte, error)
}

// CommandSource runs scontrol on the local host
type CommandSource struct {
	// Path of the scontrol command
	Path string
	// Args are given to scontrol before "show <entity>"
	Args []string
	// Timeout bounds each invocation when positive
	Timeout time.Duration
}

// Show runs "scontrol show <entity>" and returns its standard output
func (s *CommandSource) Show(ctx context.Context, entity string) ([]byte, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	args := make([]string, 0, len(s.Args)+2)
	args = append(args, s.Args...)
	args = append(args, "show", entity)
	start := time.Now()
	out, err := executil.Command(ctx, s.Path, args...).Output()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to retrieve Slurm %s information", entity)
	}
	log.Debugf("%s show %s returned %d bytes in %v", s.Path, entity, len(out), time.Since(start))
	return out, nil
}

// FileSource reads captured outputs of scontrol from files
type FileSource struct {
	// Files maps an entity to the path of its captured output, ~ is expanded
	Files map[string]string
	// Fallback is used for entities without file, may be nil
	Fallback Source
}

// Show returns the content of the file registered for the given entity
func (s *FileSource) Show(ctx context.Context, entity string) ([]byte, error) {
	file, ok := s.Files[entity]
	if !ok || file == "" {
		if s.Fallback == nil {
			return nil, errors.Errorf("no snapshot file defined for Slurm %s information", entity)
		}
		return s.Fallback.Show(ctx, entity)
	}
	found, err := pathutil.IsValidPath(file)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Errorf("snapshot file %q not found for Slurm %s information", file, entity)
	}
	p, err := pathutil.ExpandPath(file)
	if err != nil {
		return nil, err
	}
	log.Debugf("Reading Slurm %s information from %q", entity, p)
	b, err := ioutil.ReadFile(p)
	return b, errors.Wrapf(err, "failed to read Slurm %s information", entity)
}
