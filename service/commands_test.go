package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pressroom/app/config"
	"pressroom/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// run executes the command line against a database in dir.
func run(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	root := NewRootCommand("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	full := append([]string{"--env-file", filepath.Join(dir, "missing.env"), "--db", filepath.Join(dir, "db")}, args...)
	root.SetArgs(full)
	err := root.Execute()
	return out.String(), err
}

func TestInitAndClean(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Database initialized successfully")

	out, err = run(t, dir, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Database already exists")

	out, err = run(t, dir, "n\n", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled")
	assert.DirExists(t, filepath.Join(dir, "db"))

	out, err = run(t, dir, "y\n", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Database cleaned successfully")
	assert.NoDirExists(t, filepath.Join(dir, "db"))

	out, err = run(t, dir, "", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "already clean")
}

func TestSeedBackupRestore(t *testing.T) {
	dir := t.TempDir()
	backups := filepath.Join(dir, "backups")

	out, err := run(t, dir, "", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 4 sample posts")

	out, err = run(t, dir, "", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 0 sample posts")

	out, err = run(t, dir, "", "backup", "--dir", backups)
	require.NoError(t, err)
	assert.Contains(t, out, "Database backed up successfully")

	files, err := filepath.Glob(filepath.Join(backups, "backup_*.db"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	_, err = run(t, dir, "", "clean", "--yes")
	require.NoError(t, err)

	out, err = run(t, dir, "", "restore", files[0])
	require.NoError(t, err)
	assert.Contains(t, out, "Database restored successfully")

	store, err := repositories.Open(filepath.Join(dir, "db"), nil)
	require.NoError(t, err)
	defer store.Close()
	posts, err := store.Posts.List()
	require.NoError(t, err)
	assert.Len(t, posts, 4)
}

func TestRestoreErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "", "restore", filepath.Join(dir, "nope.db"))
	assert.ErrorContains(t, err, "does not exist")

	empty := filepath.Join(dir, "empty.db")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = run(t, dir, "", "restore", empty)
	assert.ErrorContains(t, err, "empty")

	_, err = run(t, dir, "", "restore")
	assert.Error(t, err)

	_, err = run(t, dir, "", "backup", "--dir", filepath.Join(dir, "b"))
	assert.ErrorContains(t, err, "no database")
}

func TestHashTokenAndVersion(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "", "hash-token", "s3cret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("s3cret")))

	out, err = run(t, dir, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "pressroom test\n", out)

	_, err = run(t, dir, "", "bogus")
	assert.Error(t, err)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Addr:            "127.0.0.1:0",
		BaseURL:         "http://blog.test",
		DBPath:          filepath.Join(t.TempDir(), "db"),
		MailFrom:        "noreply@blog.test",
		SearchCacheSize: 8,
		ShutdownTimeout: time.Second,
	}
}

func TestNewHandler(t *testing.T) {
	store, err := repositories.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()
	_, err = Seed(store)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(testConfig(t), store, logger)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/posts", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":3`)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/search?query=jazz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Django Reinhardt")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	store, err := repositories.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, ln, testConfig(t), store, logger)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/posts")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
