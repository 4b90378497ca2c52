package export

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/metaballs/internal/dynamo"
	"github.com/san-kum/metaballs/internal/field"
	"github.com/san-kum/metaballs/internal/sim"
)

type FrameData struct {
	Resolution int             `json:"resolution"`
	Ceiling    float64         `json:"ceiling"`
	Count      int             `json:"count"`
	Sources    []dynamo.Source `json:"sources"`
	Weights    []float32       `json:"weights"`
}

type RunSummary struct {
	Preset  string             `json:"preset,omitempty"`
	Frames  int                `json:"frames"`
	TimeMs  float64            `json:"time_ms"`
	Final   dynamo.Scene       `json:"final"`
	Metrics map[string]float64 `json:"metrics"`
}

func WriteFrameJSON(w io.Writer, sampler *field.Sampler, sources []dynamo.Source, weights []float32) error {
	data := FrameData{
		Resolution: sampler.Resolution,
		Ceiling:    sampler.Ceiling,
		Count:      len(weights),
		Sources:    sources,
		Weights:    weights,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteWeightsBinary writes weights as little-endian float32, ready for a
// vertex buffer upload.
func WriteWeightsBinary(w io.Writer, weights []float32) error {
	if err := binary.Write(w, binary.LittleEndian, weights); err != nil {
		return fmt.Errorf("writing weights: %w", err)
	}
	return nil
}

func WriteSummaryJSON(w io.Writer, preset string, result *sim.Result) error {
	data := RunSummary{
		Preset:  preset,
		Frames:  result.Frames,
		TimeMs:  result.Time,
		Final:   result.Final,
		Metrics: result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
