package cmd

import (
	"log/slog"

	"github.com/Alia5/tmplgen/internal/codegen/generator"
	"github.com/Alia5/tmplgen/internal/codegen/generator/beef"
)

// Registry holds the flags shared by generate and check.
type Registry struct {
	Input     string `help:"Template definition file" default:"./templates.xml" type:"path"`
	Output    string `help:"Generated Beef registry file" default:"../src/Templates.bf" type:"path"`
	Namespace string `help:"Namespace of the generated registry" default:"BindingGeneratorHpp"`
	Class     string `help:"Name of the static registry class" default:"Templates"`
	TypeName  string `help:"Registry entry type; Argument and Function are nested in it" default:"Template"`
	TextStyle string `help:"Template text literal style: auto, raw or escaped" default:"auto" enum:"auto,raw,escaped"`
}

func (r Registry) generatorConfig(mkdir bool) generator.Config {
	return generator.Config{
		Input:    r.Input,
		Output:   r.Output,
		MkdirAll: mkdir,
		Options: beef.Options{
			Namespace: r.Namespace,
			Class:     r.Class,
			TypeName:  r.TypeName,
			TextStyle: beef.TextStyle(r.TextStyle),
		},
	}
}

type Generate struct {
	Registry `embed:""`
	Mkdir    bool `help:"Create the output directory if it does not exist"`
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger) error {
	logger.Info("Starting template registry generation", "input", c.Input, "output", c.Output)
	return generator.New(c.generatorConfig(c.Mkdir), logger).Generate()
}

type Check struct {
	Registry `embed:""`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(logger *slog.Logger) error {
	logger.Info("Checking template registry", "input", c.Input, "output", c.Output)
	return generator.New(c.generatorConfig(false), logger).Check()
}
