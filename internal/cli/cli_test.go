package cli_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/syncroexport/internal/app"
	"github.com/vk/syncroexport/internal/cli"
	"github.com/vk/syncroexport/internal/hcl"
	"github.com/vk/syncroexport/internal/testutil"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy Path with long flags",
			args: []string{
				"--api-key", "secret",
				"--subdomain=acme",
				"--outfile=/tmp/contacts.csv",
				"--customer-id=42",
				"--columns=id, name,email",
				"--timeout=15s",
				"--log-level=debug",
				"--log-format=json",
			},
			expectedConfig: &app.Config{
				APIKey:     "secret",
				Subdomain:  "acme",
				Outfile:    "/tmp/contacts.csv",
				CustomerID: "42",
				Columns:    []string{"id", "name", "email"},
				Timeout:    15 * time.Second,
				LogLevel:   "debug",
				LogFormat:  "json",
			},
		},
		{
			name: "Shorthand flags and defaults",
			args: []string{"-k", "secret", "-s", "acme", "-o", "out.csv"},
			expectedConfig: &app.Config{
				APIKey:    "secret",
				Subdomain: "acme",
				Outfile:   "out.csv",
				LogLevel:  "info",
				LogFormat: "text",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
				require.Contains(t, output, "-customer-id")
			},
		},
		{
			name:       "Long help flag triggers clean exit",
			args:       []string{"--help"},
			expectExit: true,
		},
		{
			name:       "Version flag triggers clean exit",
			args:       []string{"--version"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "GitVersion")
			},
		},
		{
			name: "Padded customer id is canonicalized",
			args: []string{"-k", "secret", "-s", "acme", "-o", "out.csv", "-c", " 0042"},
			expectedConfig: &app.Config{
				APIKey:     "secret",
				Subdomain:  "acme",
				Outfile:    "out.csv",
				CustomerID: "42",
				LogLevel:   "info",
				LogFormat:  "text",
			},
		},
		{
			name:      "Non-numeric customer id is an error",
			args:      []string{"-k", "secret", "-s", "acme", "-o", "out.csv", "-c", "acme"},
			expectErr: true,
		},
		{
			name:      "No arguments is an error",
			args:      []string{},
			expectErr: true,
		},
		{
			name:      "Missing outfile is an error",
			args:      []string{"-k", "secret", "-s", "acme"},
			expectErr: true,
		},
		{
			name:      "Unknown flag is an error",
			args:      []string{"--nope"},
			expectErr: true,
		},
		{
			name:      "Positional arguments are rejected",
			args:      []string{"-k", "secret", "-s", "acme", "-o", "out.csv", "extra"},
			expectErr: true,
		},
		{
			name:      "Invalid log level returns an error",
			args:      []string{"-k", "secret", "-s", "acme", "-o", "out.csv", "--log-level=foo"},
			expectErr: true,
		},
		{
			name:      "Invalid log format returns an error",
			args:      []string{"-k", "secret", "-s", "acme", "-o", "out.csv", "--log-format=yaml"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			appConfig, shouldExit, err := cli.Parse(tc.args, out, hcl.NewLoader())

			// --- Assert ---
			if tc.expectErr {
				require.Error(t, err)
				exitErr, isExitError := err.(*cli.ExitError)
				require.True(t, isExitError, "Expected error to be of type ExitError")
				require.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)

			require.Equal(t, tc.expectExit, shouldExit)
			if tc.expectExit {
				require.Nil(t, appConfig)
			}

			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, appConfig); diff != "" {
					t.Errorf("Config mismatch (-want +got):\n%s", diff)
				}
			}

			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}

func TestParse_ConfigFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"export.hcl": `
api_key     = env.SYNCRO_API_KEY
subdomain   = "acme"
outfile     = "from-file.csv"
customer_id = 7
columns     = ["id", "name"]
timeout     = "1m"
`,
	})
	loader := &hcl.Loader{Environ: func() []string { return []string{"SYNCRO_API_KEY=env-secret"} }}
	args := []string{"--config", filepath.Join(dir, "export.hcl"), "-o", "from-flag.csv"}

	// --- Act ---
	cfg, shouldExit, err := cli.Parse(args, &bytes.Buffer{}, loader)

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	want := &app.Config{
		APIKey:     "env-secret",
		Subdomain:  "acme",
		Outfile:    "from-flag.csv",
		CustomerID: "7",
		Columns:    []string{"id", "name"},
		Timeout:    time.Minute,
		LogLevel:   "info",
		LogFormat:  "text",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ConfigFileErrors(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"bad.hcl":     "subdomain = \n",
		"timeout.hcl": "timeout = \"soon\"\n",
	})

	testCases := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "parse error", path: filepath.Join(dir, "bad.hcl"), wantErr: "invalid config"},
		{name: "bad timeout", path: filepath.Join(dir, "timeout.hcl"), wantErr: "timeout"},
		{name: "missing file", path: filepath.Join(dir, "absent.hcl"), wantErr: "invalid config"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := cli.Parse([]string{"--config", tc.path, "-k", "k", "-s", "acme", "-o", "x.csv"}, &bytes.Buffer{}, hcl.NewLoader())

			var exitErr *cli.ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, 2, exitErr.Code)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
