package definition

// Catalog is the parsed content of one definition file.
type Catalog struct {
	Templates []TemplateDef
}

// TemplateDef is one named template. ID doubles as the generated identifier.
type TemplateDef struct {
	ID        string
	Text      string
	Arguments []ArgumentDef
}

// ArgumentDef is one substitution point of a template.
type ArgumentDef struct {
	Name      string
	Functions []FunctionDef
}

// FunctionDef is a named transformation applicable to its owning argument.
// Name is the tag of the element that defined it.
type FunctionDef struct {
	Name string
	Body string
}

// Lookup returns the template with the given id.
func (c *Catalog) Lookup(id string) (*TemplateDef, bool) {
	for i := range c.Templates {
		if c.Templates[i].ID == id {
			return &c.Templates[i], true
		}
	}
	return nil, false
}

// FunctionCount returns the total number of function definitions in the catalog.
func (c *Catalog) FunctionCount() int {
	n := 0
	for _, t := range c.Templates {
		for _, a := range t.Arguments {
			n += len(a.Functions)
		}
	}
	return n
}
