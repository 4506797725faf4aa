package output

import (
	"encoding/json"
	"io"
)

// WriteJSON writes any view model as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
