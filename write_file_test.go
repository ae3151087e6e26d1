// Copyright 2022 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "build.ninja")

	wrote, err := WriteFileIfChanged(path, []byte("content v1\n"))
	require.NoError(t, err)
	require.True(t, wrote)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "content v1\n", string(data))

	// Identical content skips the write entirely.
	wrote, err = WriteFileIfChanged(path, []byte("content v1\n"))
	require.NoError(t, err)
	require.False(t, wrote)

	// Different content writes again.
	wrote, err = WriteFileIfChanged(path, []byte("content v2\n"))
	require.NoError(t, err)
	require.True(t, wrote)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "content v2\n", string(data))
}
