package formats

import (
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of a level file, for editors that
// validate YAML against JSON Schema.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(new(YAMLLevel))
	schema.Title = "Chicago Loop level"
	schema.Description = "Board rows use '#' for walls and '.' or '~' for water. " +
		"Start and goal must be water tiles. The optional solution seed is a square " +
		"pattern of '#' and '.' rows with rules in B/S notation."
	return schema
}
