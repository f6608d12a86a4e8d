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

//go:build !windows
// +build !windows

package executil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCommandOutput(t *testing.T) {
	t.Parallel()
	out, err := Command(context.Background(), "echo", "show", "partition").Output()
	require.NoError(t, err)
	require.Equal(t, "show partition", strings.TrimSpace(string(out)))
}

func TestCommandOutputWithStderr(t *testing.T) {
	t.Parallel()
	_, err := Command(context.Background(), "sh", "-c", "echo 'slurm_load_partitions error' >&2; exit 1").Output()
	require.Error(t, err)
	require.Contains(t, err.Error(), "slurm_load_partitions error")
}

func TestCommandOutputWithTimeout(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := Command(ctx, "sh", "-c", "sleep 10").Output()
	require.Error(t, err)
	require.True(t, time.Since(start) < 5*time.Second, "process group should have been killed")
}

func TestCommandWithCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Command(ctx, "echo", "hello").Run()
	require.Equal(t, context.Canceled, err)
}

func TestCommandStartFailureReleasesWatcher(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd := Command(ctx, "/nonexistent/bin/scontrol", "show", "partition")
	require.Error(t, cmd.Start())
	select {
	case <-cmd.waitDone:
	case <-time.After(time.Second):
		t.Fatal("the kill watcher should be released when the command fails to start")
	}
	require.NotPanics(t, func() { cmd.Wait() })

	_, err := Command(ctx, "/nonexistent/bin/scontrol").Output()
	require.Error(t, err)
}
