package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go.trai.ch/agraph/internal/adapters/config"
	"go.trai.ch/agraph/internal/core/domain"
)

func writeWorkspace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeWorkspace(t, `
version: 1
targets:
  "//lib:lib":
    ruleClass: go_library
    actions:
      - mnemonic: GoCompile
        configuration: linux-fastbuild
        args: [compile, -o, lib.a]
        inputs: [lib/a.go]
        outputs: [bin/lib.a]
        env:
          GOOS: linux
  "//app:app":
    ruleClass: go_binary
    deps: ["//lib:lib"]
`)

	graph, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, graph.TargetCount())

	lib, err := domain.ParseLabel("//lib:lib")
	require.NoError(t, err)
	target, ok := graph.Target(lib)
	require.True(t, ok)
	require.Equal(t, "go_library", target.RuleClass)
	require.Len(t, target.Actions, 1)
	require.Equal(t, "GoCompile", target.Actions[0].Mnemonic)
	require.Equal(t, []string{"compile", "-o", "lib.a"}, target.Actions[0].Arguments)
	require.Equal(t, "linux", target.Actions[0].Env["GOOS"])

	app, err := domain.ParseLabel("//app:app")
	require.NoError(t, err)
	target, ok = graph.Target(app)
	require.True(t, ok)
	require.Equal(t, []domain.Label{lib}, target.Deps)

	require.NoError(t, graph.Validate())
}

func TestLoader_Load_ShorthandDependency(t *testing.T) {
	// A dependency may use the "//pkg" shorthand even when the target was
	// declared in canonical form.
	path := writeWorkspace(t, `
targets:
  "//lib:lib":
    ruleClass: go_library
  "//app:app":
    ruleClass: go_binary
    deps: ["//lib"]
`)

	graph, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	require.NoError(t, graph.Validate())
}

func TestLoader_Load_MissingDependency(t *testing.T) {
	path := writeWorkspace(t, `
targets:
  "//app:app":
    ruleClass: go_binary
    deps: ["//lib:lib"]
`)

	_, err := config.NewLoader().Load(path)
	require.ErrorIs(t, err, domain.ErrMissingDependency)
}

func TestLoader_Load_NoTargets(t *testing.T) {
	path := writeWorkspace(t, "version: 1\n")

	_, err := config.NewLoader().Load(path)
	require.ErrorIs(t, err, domain.ErrNoTargetsDefined)
}

func TestLoader_Load_InvalidLabel(t *testing.T) {
	path := writeWorkspace(t, `
targets:
  "not-a-label":
    ruleClass: go_binary
`)

	_, err := config.NewLoader().Load(path)
	require.ErrorIs(t, err, domain.ErrLabelSyntax)
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	path := writeWorkspace(t, "targets: [\n")

	_, err := config.NewLoader().Load(path)
	require.Error(t, err)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := config.NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
