package stage

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of the catalog file format.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	schema := reflector.Reflect(&File{})
	schema.Title = "Santa Delivery Stage Catalog"
	schema.Description = "Ordered stage definitions. Each stage lists the ice blocks it spawns with their initial direction and speed."
	return schema
}

// SchemaJSON returns Schema encoded as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("stage: marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
