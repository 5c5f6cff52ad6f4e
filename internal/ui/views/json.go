package views

import (
	"encoding/json"
	"os"
)

// RenderJSON writes v to stdout as indented JSON for scripting.
func RenderJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
