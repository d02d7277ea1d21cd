package imagery

import (
	"encoding/json"
	"fmt"
	"io"
)

// cubeJSON is the on-disk interchange shape used by the cmd tooling.
// Acquisition pipelines that produce imagery in other formats convert
// to this before handing off to the extractor.
type cubeJSON struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Steps  int       `json:"steps"`
	Bands  int       `json:"bands"`
	Values []float64 `json:"values"`
}

// ReadCube decodes a cube from its JSON interchange form.
func ReadCube(r io.Reader) (*DataCube, error) {
	var cj cubeJSON
	if err := json.NewDecoder(r).Decode(&cj); err != nil {
		return nil, fmt.Errorf("decode cube: %w", err)
	}
	c, err := FromValues(cj.Width, cj.Height, cj.Steps, cj.Bands, cj.Values)
	if err != nil {
		return nil, fmt.Errorf("decode cube: %w", err)
	}
	return c, nil
}

// WriteCube encodes a cube in its JSON interchange form.
func WriteCube(w io.Writer, c *DataCube) error {
	cj := cubeJSON{
		Width:  c.Width,
		Height: c.Height,
		Steps:  c.Steps,
		Bands:  c.Bands,
		Values: c.values,
	}
	if err := json.NewEncoder(w).Encode(&cj); err != nil {
		return fmt.Errorf("encode cube: %w", err)
	}
	return nil
}
