package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Input":     "input",
		"TextStyle": "text_style",
		"TypeName":  "type_name",
		"XMLInput":  "xml_input",
	}
	for in, expected := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, expected, snakeCase(in))
		})
	}
}

func TestConfigTemplateGenerate(t *testing.T) {
	logDefaults := map[string]any{"level": "info", "file": "", "format": "text"}

	t.Run("json", func(t *testing.T) {
		root, err := configTemplate("generate", "json")
		require.NoError(t, err)
		assert.Equal(t, "./templates.xml", root["input"])
		assert.Equal(t, "../src/Templates.bf", root["output"])
		assert.Equal(t, "BindingGeneratorHpp", root["namespace"])
		assert.Equal(t, "Templates", root["class"])
		assert.Equal(t, "Template", root["type_name"])
		assert.Equal(t, "auto", root["text_style"])
		assert.Equal(t, false, root["mkdir"])
		assert.Equal(t, logDefaults, root["log"])
	})

	t.Run("yaml", func(t *testing.T) {
		root, err := configTemplate("generate", "yaml")
		require.NoError(t, err)
		require.IsType(t, map[string]any{}, root["generate"])
		flags := root["generate"].(map[string]any)
		assert.Equal(t, "Template", flags["type-name"])
		assert.Equal(t, "auto", flags["text-style"])
		assert.Equal(t, false, flags["mkdir"])
		assert.Equal(t, "info", root["log.level"])
		assert.Equal(t, "text", root["log.format"])
		assert.NotContains(t, root, "log")
	})

	t.Run("toml", func(t *testing.T) {
		root, err := configTemplate("generate", "toml")
		require.NoError(t, err)
		assert.Equal(t, "./templates.xml", root["input"])
		assert.Equal(t, "Template", root["type-name"])
		assert.Equal(t, "auto", root["text-style"])
		assert.Equal(t, "info", root["log.level"])
		assert.Equal(t, "", root["log.file"])
		assert.NotContains(t, root, "log")
	})
}

func TestConfigTemplateCheck(t *testing.T) {
	root, err := configTemplate("check", "toml")
	require.NoError(t, err)
	assert.NotContains(t, root, "mkdir")
	assert.Contains(t, root, "input")

	root, err = configTemplate("check", "yaml")
	require.NoError(t, err)
	assert.Contains(t, root, "check")

	_, err = configTemplate("serve", "yaml")
	assert.Error(t, err)
	_, err = configTemplate("generate", "ini")
	assert.Error(t, err)
}

func TestConfigInitWritesFormats(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		dest := filepath.Join(dir, "tmplgen.json")
		require.NoError(t, (&ConfigInit{Command: "generate", Format: "json", Output: dest}).Run())

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "./templates.xml", got["input"])
	})

	t.Run("yaml", func(t *testing.T) {
		dest := filepath.Join(dir, "nested", "tmplgen.yml")
		require.NoError(t, (&ConfigInit{Command: "generate", Format: "yml", Output: dest}).Run())

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, yaml.Unmarshal(data, &got))
		require.IsType(t, map[string]any{}, got["generate"])
		assert.Equal(t, "auto", got["generate"].(map[string]any)["text-style"])
		assert.Equal(t, "info", got["log.level"])
	})

	t.Run("toml", func(t *testing.T) {
		dest := filepath.Join(dir, "tmplgen.toml")
		require.NoError(t, (&ConfigInit{Command: "check", Format: "toml", Output: dest}).Run())

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), "BindingGeneratorHpp")
	})
}

// The scaffold must be readable by the loader main.go registers for its
// format. Non-default values are edited in before loading so a key the
// loader skips shows up as a default.
func TestConfigInitLoadsBack(t *testing.T) {
	loaders := map[string]kong.ConfigurationLoader{
		"json": kong.JSON,
		"yaml": kongyaml.Loader,
		"toml": kongtoml.Loader,
	}
	for format, loader := range loaders {
		t.Run(format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "tmplgen."+format)
			require.NoError(t, (&ConfigInit{Command: "generate", Format: format, Output: dest}).Run())

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			edited := strings.NewReplacer("auto", "escaped", "info", "debug", "BindingGeneratorHpp", "Custom.Ns").Replace(string(data))
			require.NoError(t, os.WriteFile(dest, []byte(edited), 0o644))

			var cli CLI
			parser, err := kong.New(&cli,
				kong.Name("tmplgen"),
				kong.Vars{"version": "test"},
				kong.Configuration(loader, dest),
			)
			require.NoError(t, err)
			_, err = parser.Parse([]string{"generate"})
			require.NoError(t, err)

			assert.Equal(t, "escaped", cli.Generate.TextStyle)
			assert.Equal(t, "Custom.Ns", cli.Generate.Namespace)
			assert.Equal(t, "Template", cli.Generate.TypeName)
			assert.Equal(t, "debug", cli.Log.Level)
			assert.Equal(t, "text", cli.Log.Format)
		})
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "tmplgen.yaml")
	require.NoError(t, os.WriteFile(dest, []byte("keep: true\n"), 0o644))

	err := (&ConfigInit{Command: "generate", Format: "yaml", Output: dest}).Run()
	assert.Error(t, err)

	require.NoError(t, (&ConfigInit{Command: "generate", Format: "yaml", Output: dest, Force: true}).Run())
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "keep")
}

func TestConfigInitUnsupportedFormat(t *testing.T) {
	err := (&ConfigInit{Command: "generate", Format: "ini", Output: filepath.Join(t.TempDir(), "x.ini")}).Run()
	assert.Error(t, err)
}
