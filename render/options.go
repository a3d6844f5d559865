package render

import "github.com/iancoleman/strcase"

type config struct {
	indentWidth   int
	interfaceName func(string) string
	typeName      func(string) string
}

func defaultConfig() config {
	identity := func(s string) string { return s }
	return config{
		indentWidth:   2,
		interfaceName: identity,
		typeName:      identity,
	}
}

type Option func(*config)

// WithIndentWidth sets the member indentation width in spaces.
func WithIndentWidth(n int) Option {
	return func(c *config) {
		c.indentWidth = n
	}
}

// WithInterfaceNames transforms interface declaration names at render time.
func WithInterfaceNames(f func(string) string) Option {
	return func(c *config) {
		c.interfaceName = f
	}
}

// WithTypeNames transforms type-alias declaration names at render time.
func WithTypeNames(f func(string) string) Option {
	return func(c *config) {
		c.typeName = f
	}
}

// Pascal converts a name to PascalCase.
func Pascal(s string) string { return strcase.ToCamel(s) }

// Camel converts a name to camelCase.
func Camel(s string) string { return strcase.ToLowerCamel(s) }

// Prefixed returns a transform prepending prefix, e.g. Prefixed("I") for
// the conventional interface prefix.
func Prefixed(prefix string) func(string) string {
	return func(s string) string { return prefix + s }
}
