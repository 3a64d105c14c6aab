package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/syncroexport/internal/testutil"
)

func TestRun_ExportsContacts(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	contacts := testutil.MakeContacts(4, 1, 5)
	contacts[0].Name = testutil.Ptr(`Smith, "Doc"`)
	api := testutil.NewFakeAPI(t, contacts...)
	api.PerPage = 2
	outfile := filepath.Join(t.TempDir(), "contacts.csv")
	args := []string{"-k", api.APIKey, "--base-url", api.URL(), "-o", outfile}
	out, logs := &bytes.Buffer{}, &testutil.SafeBuffer{}

	// --- Act ---
	err := run(context.Background(), out, logs, args)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 0, exitCode(err, logs))
	require.Contains(t, out.String(), "Contacts saved to "+outfile)
	rows := testutil.ReadCSV(t, outfile)
	require.Len(t, rows, 5)
	require.Contains(t, rows[1], `Smith, "Doc"`)
}

func TestRun_CustomerFilter(t *testing.T) {
	t.Parallel()

	contacts := append(testutil.MakeContacts(2, 1, 10), testutil.MakeContacts(3, 20, 11)...)
	api := testutil.NewFakeAPI(t, contacts...)
	outfile := filepath.Join(t.TempDir(), "contacts.csv")
	args := []string{"-k", api.APIKey, "--base-url", api.URL(), "-o", outfile, "-c", "11"}

	err := run(context.Background(), &bytes.Buffer{}, &testutil.SafeBuffer{}, args)

	require.NoError(t, err)
	rows := testutil.ReadCSV(t, outfile)
	require.Len(t, rows, 4)
	testutil.AssertColumnEquals(t, rows, "customer_id", "11")
}

func TestRun_HTTPErrorOnSecondPageExitsNonZero(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	api := testutil.NewFakeAPI(t, testutil.MakeContacts(6, 1, 1)...)
	api.PerPage = 2
	api.FailPage = 2
	outfile := filepath.Join(t.TempDir(), "contacts.csv")
	args := []string{"-k", api.APIKey, "--base-url", api.URL(), "-o", outfile}
	out, errW := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &testutil.SafeBuffer{}, args)
	code := exitCode(err, errW)

	// --- Assert ---
	require.Error(t, err)
	require.Equal(t, 1, code)
	require.Contains(t, errW.String(), "500")
	require.NotContains(t, out.String(), "Contacts saved")
	require.Equal(t, []int{1, 2}, api.Pages("/contacts"))
}

func TestRun_ArgumentErrorsHappenBeforeNetwork(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t)
	errW := &bytes.Buffer{}

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--base-url", api.URL(), "-o", "x.csv"})

	require.Equal(t, 2, exitCode(err, errW))
	require.Contains(t, errW.String(), "-k/--api-key")
	require.Empty(t, api.Requests())
}

func TestRun_InvalidColumnIsArgumentError(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t)
	args := []string{"-k", api.APIKey, "--base-url", api.URL(), "-o", "x.csv", "--columns", "id,shoe_size"}

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, args)

	require.Equal(t, 2, exitCode(err, &bytes.Buffer{}))
	require.Empty(t, api.Requests())
}

func TestRun_AuthFailureKeepsExistingFile(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t, testutil.MakeContacts(1, 1, 1)...)
	outfile := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, os.WriteFile(outfile, []byte("keep me\n"), 0o644))
	args := []string{"-k", "wrong", "--base-url", api.URL(), "-o", outfile}

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, args)

	require.Equal(t, 1, exitCode(err, &bytes.Buffer{}))
	data, readErr := os.ReadFile(outfile)
	require.NoError(t, readErr)
	require.Equal(t, "keep me\n", string(data))
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Equal(t, 0, exitCode(err, &bytes.Buffer{}))
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
	require.Equal(t, 2, exitCode(err, &bytes.Buffer{}))
}

func TestExitCode_UnknownError(t *testing.T) {
	t.Parallel()

	errW := &bytes.Buffer{}

	require.Equal(t, 1, exitCode(errors.New("disk full"), errW))
	require.Contains(t, errW.String(), "disk full")
}
