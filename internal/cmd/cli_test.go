package cmd_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/tmplgen/internal/cmd"
	"github.com/Alia5/tmplgen/internal/codegen/generator"
)

func parse(t *testing.T, args ...string) (*cmd.CLI, *kong.Context) {
	t.Helper()
	var cli cmd.CLI
	parser, err := kong.New(&cli, kong.Name("tmplgen"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	ctx.Bind(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return &cli, ctx
}

func TestNoArgumentsRunsGenerate(t *testing.T) {
	cli, ctx := parse(t)
	assert.Equal(t, "generate", ctx.Command())
	assert.Equal(t, "templates.xml", filepath.Base(cli.Generate.Input))
	assert.Equal(t, "Templates.bf", filepath.Base(cli.Generate.Output))
	assert.Equal(t, "auto", cli.Generate.TextStyle)
	assert.Equal(t, "info", cli.Log.Level)
}

func TestGenerateAndCheckCommands(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "templates.xml")
	output := filepath.Join(dir, "out", "Templates.bf")
	require.NoError(t, os.WriteFile(input, []byte(`<templates><template id="Foo">Hello {0}</template></templates>`), 0o644))

	_, ctx := parse(t, "check", "--input", input, "--output", output)
	assert.ErrorIs(t, ctx.Run(), generator.ErrStale)

	_, ctx = parse(t, "generate", "--input", input, "--output", output, "--mkdir")
	require.NoError(t, ctx.Run())
	assert.FileExists(t, output)

	_, ctx = parse(t, "check", "--input", input, "--output", output)
	assert.NoError(t, ctx.Run())
}

func TestTextStyleIsValidated(t *testing.T) {
	var cli cmd.CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"generate", "--text-style", "fancy"})
	assert.Error(t, err)
}
