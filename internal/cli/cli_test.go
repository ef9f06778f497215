package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"project-tracker/backend/internal/app"
	"project-tracker/backend/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdID = regexp.MustCompile(`Created (?:project|task) ([0-9a-f-]{36})`)

type harness struct {
	t         *testing.T
	serverURL string
	tokenFile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", Environment: "test"},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			URL:          filepath.Join(dir, "cli.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Auth: config.AuthConfig{JWTSecret: "cli-secret", TokenTTL: time.Hour, BCryptCost: 4},
	}

	a, err := app.New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	srv := httptest.NewServer(a.Router)
	t.Cleanup(func() {
		srv.Close()
		a.Close()
	})

	return &harness{t: t, serverURL: srv.URL, tokenFile: filepath.Join(dir, "token")}
}

// run executes one client command and returns its output.
func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"client", "--server", h.serverURL, "--token-file", h.tokenFile}, args...))

	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) login() {
	h.mustRun("register", "--email", "cli@example.com", "--password", "Secret1")
	h.mustRun("login", "--email", "cli@example.com", "--password", "Secret1")
}

func TestClientRequiresLogin(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "projects", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	h.login()
	out := h.mustRun("projects", "list")
	assert.Contains(t, out, "No projects found")

	h.mustRun("logout")
	_, err = h.run("", "projects", "list")
	assert.Error(t, err)
}

func TestClientLoginFailure(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "login", "--email", "nobody@example.com", "--password", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestClientProjectCommands(t *testing.T) {
	h := newHarness(t)
	h.login()

	out := h.mustRun("projects", "create", "--title", "Garden", "--description", "plant beans")
	m := createdID.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id := m[1]
	assert.Contains(t, out, "Garden")
	assert.Contains(t, out, "Page 1, 1 of 1 projects")

	out = h.mustRun("projects", "update", id, "--status", "completed")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "plant beans")

	out, err := h.run("n\n", "projects", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, h.mustRun("projects", "list"), "Garden")

	out, err = h.run("y\n", "projects", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted project")
	assert.Contains(t, h.mustRun("projects", "list"), "No projects found")
}

func TestClientTaskCommands(t *testing.T) {
	h := newHarness(t)
	h.login()

	m := createdID.FindStringSubmatch(h.mustRun("projects", "create", "--title", "Garden"))
	require.Len(t, m, 2)
	projectID := m[1]

	out := h.mustRun("tasks", "create", "--project", projectID, "--title", "Dig", "--due", "2030-03-04")
	m = createdID.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	taskID := m[1]
	assert.Contains(t, out, "2030-03-04")

	out = h.mustRun("tasks", "update", taskID, "--status", "done", "--clear-due")
	assert.Contains(t, out, "done")
	assert.NotContains(t, out, "2030-03-04")

	out = h.mustRun("tasks", "list", "--project", projectID, "--status", "todo")
	assert.Contains(t, out, "No tasks found")

	_, err := h.run("", "tasks", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Project ID is required")

	out = h.mustRun("tasks", "delete", taskID, "--yes")
	assert.Contains(t, out, "Deleted task")
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirm(strings.NewReader("Yes\n"), &out, "Proceed?"))
	assert.False(t, confirm(strings.NewReader("\n"), &out, "Proceed?"))
	assert.False(t, confirm(strings.NewReader(""), &out, "Proceed?"))
	assert.Contains(t, out.String(), "Proceed? [y/N]: ")
}
