package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/Alia5/tmplgen/internal/configpaths"
	"github.com/Alia5/tmplgen/internal/log"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file for a specific command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"generate,check" default:"generate"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output  string `help:"Destination file path (defaults to tmplgen.<format> in the current directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run generates a configuration template from the command struct's defaults.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	root, err := configTemplate(c.Command, format)
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = configpaths.BaseName + "." + format
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	data, err := marshalConfig(root, format)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

// configTemplate lays out the defaults of command the way the matching Kong
// resolver looks them up:
//   - json: snake_case keys, log flags nested under "log"
//   - yaml: command flags nested under the command name, dotted "log.*" keys
//   - toml: flat flag names, dotted "log.*" keys
func configTemplate(command, format string) (map[string]any, error) {
	var t reflect.Type
	switch command {
	case "generate":
		t = reflect.TypeOf(Generate{})
	case "check":
		t = reflect.TypeOf(Check{})
	default:
		return nil, errors.New("unknown command; expected 'generate' or 'check'")
	}
	logType := reflect.TypeOf(log.Config{})

	switch format {
	case "json":
		root := buildMapFromStruct(t, snakeKey)
		root["log"] = buildMapFromStruct(logType, snakeKey)
		return root, nil
	case "yaml":
		root := map[string]any{command: buildMapFromStruct(t, flagKey)}
		addPrefixed(root, "log.", buildMapFromStruct(logType, flagKey))
		return root, nil
	case "toml":
		root := buildMapFromStruct(t, flagKey)
		addPrefixed(root, "log.", buildMapFromStruct(logType, flagKey))
		return root, nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func addPrefixed(dst map[string]any, prefix string, src map[string]any) {
	for k, v := range src {
		dst[prefix+k] = v
	}
}

func marshalConfig(root map[string]any, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(root, "", "  ")
	case "yaml":
		return yaml.Marshal(root)
	case "toml":
		return toml.Marshal(root)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// snakeCase turns a Go field name into snake_case, e.g. TextStyle -> text_style.
func snakeCase(s string) string {
	var b strings.Builder
	r := []rune(s)
	for i, c := range r {
		if unicode.IsUpper(c) {
			if i > 0 && (unicode.IsLower(r[i-1]) || i+1 < len(r) && unicode.IsLower(r[i+1])) {
				b.WriteByte('_')
			}
			c = unicode.ToLower(c)
		}
		b.WriteRune(c)
	}
	return b.String()
}

// snakeKey is the key kong.JSON resolves for a field, e.g. text_style.
func snakeKey(f reflect.StructField) string {
	if name := f.Tag.Get("name"); name != "" {
		return strings.ReplaceAll(name, "-", "_")
	}
	return snakeCase(f.Name)
}

// flagKey is the Kong flag name of a field, e.g. text-style.
func flagKey(f reflect.StructField) string {
	if name := f.Tag.Get("name"); name != "" {
		return name
	}
	return strings.ReplaceAll(snakeCase(f.Name), "_", "-")
}

func buildMapFromStruct(t reflect.Type, key func(reflect.StructField) string) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Tag.Get("kong") == "-" {
			continue
		}

		if _, ok := f.Tag.Lookup("embed"); ok {
			prefix := f.Tag.Get("prefix")
			name := strings.TrimSuffix(prefix, ".")
			sub := buildMapFromStruct(f.Type, key)
			if name != "" {
				out[name] = sub
			} else {
				for k, v := range sub {
					out[k] = v
				}
			}
			continue
		}

		val := defaultValueForField(f.Type, f.Tag.Get("default"), key)
		if val != nil {
			out[key(f)] = val
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string, key func(reflect.StructField) string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return def
	case reflect.Bool:
		b, err := strconv.ParseBool(def)
		if err != nil {
			return false
		}
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(def, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case reflect.Struct:
		return buildMapFromStruct(t, key)
	default:
		return nil
	}
}
