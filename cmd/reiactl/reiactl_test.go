// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reia-project/reia-console/internal/catalog"
	"github.com/reia-project/reia-console/internal/infrastructure/mock"
	errs "github.com/reia-project/reia-console/pkg/errors"
)

func startBackend(t *testing.T, c *catalog.Catalog) (*mock.Backend, string) {
	t.Helper()
	backend := mock.NewBackend(c)
	server := httptest.NewServer(backend.NewHandler("/api/v1"))
	t.Cleanup(server.Close)
	return backend, server.URL + "/api/v1"
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestListCommand(t *testing.T) {
	backend, url := startBackend(t, catalog.Default())
	backend.Seed("exposure",
		map[string]any{"name": "Switzerland", "category": "buildings", "tagnames": []string{"canton", "municipality"}},
		map[string]any{"name": "Zurich", "category": "buildings"},
	)

	t.Run("table", func(t *testing.T) {
		out, err := run(t, "--url", url, "list", "exposure")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "_OID"))
		assert.Contains(t, lines[1], "Switzerland")
		assert.Contains(t, lines[1], "canton,municipality")
		assert.Contains(t, lines[2], "Zurich")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "--url", url, "list", "exposure", "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"_oid":1,"name":"Switzerland","category":"buildings","tagnames":["canton","municipality"]},
			{"_oid":2,"name":"Zurich","category":"buildings"}
		]`, out)
	})

	t.Run("typed json", func(t *testing.T) {
		out, err := run(t, "--url", url, "list", "exposure", "--typed", "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"_oid":1,"name":"Switzerland","category":"buildings","taxonomysource":"","costtypes":null,
			 "tagnames":["canton","municipality"],"assets_count":0,"sites_count":0},
			{"_oid":2,"name":"Zurich","category":"buildings","taxonomysource":"","costtypes":null,
			 "tagnames":null,"assets_count":0,"sites_count":0}
		]`, out)
	})

	t.Run("typed requires json", func(t *testing.T) {
		_, err := run(t, "--url", url, "list", "exposure", "--typed")
		assert.Error(t, err)
	})

	t.Run("empty collection as json", func(t *testing.T) {
		out, err := run(t, "--url", url, "list", "vulnerability", "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, out)
	})

	t.Run("unknown resource", func(t *testing.T) {
		_, err := run(t, "--url", url, "list", "hazard")
		var notFound errs.NotFound
		assert.True(t, errors.As(err, &notFound))
	})

	t.Run("unknown output format", func(t *testing.T) {
		_, err := run(t, "--url", url, "list", "exposure", "-o", "yaml")
		assert.Error(t, err)
	})

	t.Run("server error", func(t *testing.T) {
		backend.FailNext(http.StatusInternalServerError)
		_, err := run(t, "--url", url, "list", "exposure")

		var reqErr errs.RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	})
}

func TestSubmitCommand(t *testing.T) {
	backend, url := startBackend(t, catalog.Default())

	t.Run("loss config as json", func(t *testing.T) {
		out, err := run(t, "--url", url, "submit", "lossconfig",
			"--field", "lossCategory=structural",
			"--field", "aggregateBy=Canton",
			"--field", "lossModelId=1",
			"-o", "json",
		)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"_oid":1,"lossCategory":"structural","aggregateBy":"Canton","lossModelId":"1"}]`, out)
	})

	t.Run("exposure files", func(t *testing.T) {
		jsonPath := writeFile(t, "exposure.json", `{"assets":[]}`)
		csvPath := writeFile(t, "exposure.csv", "id,lon,lat\n")

		_, err := run(t, "--url", url, "submit", "exposure",
			"--file", "exposureJSON="+jsonPath,
			"--file", "exposureCSV="+csvPath,
		)
		require.NoError(t, err)

		stored := backend.Records("exposure")
		require.Len(t, stored, 1)
		assert.Equal(t, "exposure.json", stored[0]["exposureJSON"])
		assert.Equal(t, "exposure.csv", stored[0]["exposureCSV"])
	})

	t.Run("undeclared field", func(t *testing.T) {
		_, err := run(t, "--url", url, "submit", "lossconfig", "--field", "lossmodel=1")
		var validation errs.Validation
		assert.True(t, errors.As(err, &validation))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "--url", url, "submit", "vulnerability",
			"--file", "vulnerabilityModel="+filepath.Join(t.TempDir(), "missing.xml"))
		assert.Error(t, err)
	})

	t.Run("nothing to submit", func(t *testing.T) {
		_, err := run(t, "--url", url, "submit", "lossconfig")
		var validation errs.Validation
		assert.True(t, errors.As(err, &validation))
	})
}

func TestCalculateCommand(t *testing.T) {
	backend, url := startBackend(t, catalog.Default())
	backend.Seed("losscalculation", map[string]any{"losscategory": "structural"})

	out, err := run(t, "--url", url, "calculate", "--shakemap", "model/custom.zip", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "model/custom.zip")

	stored := backend.Records("losscalculation")
	require.Len(t, stored, 2)
	assert.Equal(t, "model/custom.zip", stored[1]["shakemap"])
}

func TestOverviewCommand(t *testing.T) {
	backend, url := startBackend(t, catalog.Default())
	backend.Seed("lossmodel", map[string]any{"description": "a"}, map[string]any{"description": "b"})

	out, err := run(t, "--url", url, "overview")
	require.NoError(t, err)
	assert.Contains(t, out, "RESOURCE")
	assert.Regexp(t, `lossmodel\s+2\s+ok`, out)
	assert.Regexp(t, `exposure\s+0\s+ok`, out)

	backend.FailNext(http.StatusServiceUnavailable)
	out, err = run(t, "--url", url, "overview")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 5")
	assert.Contains(t, out, "503")
}

func TestPingCommand(t *testing.T) {
	_, url := startBackend(t, catalog.Default())

	out, err := run(t, "--url", url, "ping")
	require.NoError(t, err)
	assert.Contains(t, out, "is reachable")

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	_, err = run(t, "--url", closedURL, "--timeout", "1s", "ping")
	var unavailable errs.ServiceUnavailable
	assert.True(t, errors.As(err, &unavailable))
}

func TestCatalogFlag(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
resources:
  - name: hazard
    title: Hazard Scenarios
    collection: /hazard
    columns: [_oid, name]
`)
	c, err := catalog.Load(path)
	require.NoError(t, err)

	backend, url := startBackend(t, c)
	backend.Seed("hazard", map[string]any{"name": "Basel 1356"})

	out, err := run(t, "--url", url, "--catalog", path, "list", "hazard")
	require.NoError(t, err)
	assert.Contains(t, out, "Basel 1356")

	_, err = run(t, "--url", url, "--catalog", path, "submit", "hazard", "--field", "name=x")
	var validation errs.Validation
	assert.True(t, errors.As(err, &validation), "read-only resources have no submit endpoint")
}

func TestInvalidGlobalFlags(t *testing.T) {
	_, err := run(t, "--url", "ftp://example.org", "ping")
	assert.Error(t, err)

	_, err = run(t, "--timeout", "soon", "ping")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	_, url := startBackend(t, catalog.Default())
	path := writeFile(t, "reiactl.yaml", "url: "+url+"\ntimeout: 2s\n")

	out, err := run(t, "--config", path, "ping")
	require.NoError(t, err)
	assert.Contains(t, out, url)
}

func TestParseFieldFlags(t *testing.T) {
	file := writeFile(t, "model.xml", "<nrml/>")

	tests := []struct {
		name      string
		fields    []string
		files     []string
		expectErr bool
		expected  []string
	}{
		{
			name:     "text and files",
			fields:   []string{"assetCollection=1", "vulnerabilityModels=2,3"},
			files:    []string{"lossModel=" + file},
			expected: []string{"assetCollection", "vulnerabilityModels", "lossModel"},
		},
		{
			name:     "value containing equals",
			fields:   []string{"aggregateBy=a=b"},
			expected: []string{"aggregateBy"},
		},
		{
			name:      "missing separator",
			fields:    []string{"lossCategory"},
			expectErr: true,
		},
		{
			name:      "empty path",
			files:     []string{"lossModel="},
			expectErr: true,
		},
		{
			name:      "directory",
			files:     []string{"lossModel=" + t.TempDir()},
			expectErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := parseFieldFlags(tc.fields, tc.files)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			names := make([]string, len(parsed))
			for i, f := range parsed {
				names[i] = f.name
			}
			assert.Equal(t, tc.expected, names)
		})
	}
}
