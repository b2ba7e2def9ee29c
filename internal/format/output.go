package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Write renders CLI output as strict JSON, one value per line unless
// pretty-printing is requested.
func Write(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
