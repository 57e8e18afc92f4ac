package nn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
)

const (
	// ModelType identifies a model file
	ModelType = "rnngen/model"

	// ModelVersion is the only model format version this package reads and writes
	ModelVersion = 1
)

// ModelFile is the on-disk representation of a trained network
type ModelFile struct {
	Type    string         `json:"type"`
	Version int            `json:"version"`
	ID      string         `json:"id,omitempty"`
	Config  ModelConfig    `json:"cfg"`
	Weights EncodedWeights `json:"weights"`
}

// EncodedWeights stores every coefficient tensor as base64 little-endian
// bytes of DType, row-major
type EncodedWeights struct {
	DType    string `json:"dtype"`
	WeightIH string `json:"weight_ih"`
	WeightHH string `json:"weight_hh"`
	BiasH    string `json:"bias_h"`
	Tau      string `json:"tau,omitempty"`
	WeightOH string `json:"weight_oh"`
	BiasO    string `json:"bias_o"`

	InitialStates []string `json:"initial_states,omitempty"`
}

// LoadModel reads a model file from disk
func LoadModel(filename string) (*Parameters, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	defer file.Close()

	return ReadModel(file)
}

// ReadModel consumes r to its end and reconstructs the model it holds.
// Read errors are ErrIOFailure; everything wrong with the content is ErrMalformedModel.
func ReadModel(r io.Reader) (*Parameters, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return LoadModelFromBytes(data)
}

// LoadModelFromBytes reconstructs a model from its serialized form
func LoadModelFromBytes(data []byte) (*Parameters, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty model", ErrMalformedModel)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: truncated or invalid JSON", ErrMalformedModel)
	}

	// Check the header before committing to a full decode of this version's layout
	header := gjson.GetManyBytes(data, "type", "version")
	if header[0].String() != ModelType {
		return nil, fmt.Errorf("%w: invalid model type %q", ErrMalformedModel, header[0].String())
	}
	if !header[1].Exists() {
		return nil, fmt.Errorf("%w: missing version", ErrMalformedModel)
	}
	if v := header[1].Int(); v != ModelVersion {
		return nil, fmt.Errorf("%w: %w: %d", ErrMalformedModel, ErrUnsupportedVersion, v)
	}

	var file ModelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedModel, err)
	}

	coeffs, err := file.Weights.decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedModel, err)
	}

	return NewParameters(file.ID, file.Config, coeffs)
}

func (w EncodedWeights) decode() (Coefficients, error) {
	dtype := w.DType
	if dtype == "" {
		dtype = DTypeFloat64
	}

	var c Coefficients
	fields := []struct {
		name    string
		encoded string
		dst     *[]float64
	}{
		{"weight_ih", w.WeightIH, &c.WeightIH},
		{"weight_hh", w.WeightHH, &c.WeightHH},
		{"bias_h", w.BiasH, &c.BiasH},
		{"tau", w.Tau, &c.Tau},
		{"weight_oh", w.WeightOH, &c.WeightOH},
		{"bias_o", w.BiasO, &c.BiasO},
	}
	for _, f := range fields {
		values, err := decodeSliceWithDType(f.encoded, dtype)
		if err != nil {
			return Coefficients{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = values
	}

	c.InitialStates = make([][]float64, len(w.InitialStates))
	for i, encoded := range w.InitialStates {
		values, err := decodeSliceWithDType(encoded, dtype)
		if err != nil {
			return Coefficients{}, fmt.Errorf("initial state %d: %w", i, err)
		}
		c.InitialStates[i] = values
	}
	return c, nil
}

// SerializeModel converts p into its file representation, storing tensors as dtype
func (p *Parameters) SerializeModel(dtype string) (ModelFile, error) {
	c := p.Coefficients()

	var w EncodedWeights
	w.DType = dtype
	fields := []struct {
		name   string
		values []float64
		dst    *string
	}{
		{"weight_ih", c.WeightIH, &w.WeightIH},
		{"weight_hh", c.WeightHH, &w.WeightHH},
		{"bias_h", c.BiasH, &w.BiasH},
		{"tau", c.Tau, &w.Tau},
		{"weight_oh", c.WeightOH, &w.WeightOH},
		{"bias_o", c.BiasO, &w.BiasO},
	}
	for _, f := range fields {
		encoded, err := encodeSliceWithDType(f.values, dtype)
		if err != nil {
			return ModelFile{}, fmt.Errorf("failed to encode %s: %w", f.name, err)
		}
		*f.dst = encoded
	}

	for i, state := range c.InitialStates {
		encoded, err := encodeSliceWithDType(state, dtype)
		if err != nil {
			return ModelFile{}, fmt.Errorf("failed to encode initial state %d: %w", i, err)
		}
		w.InitialStates = append(w.InitialStates, encoded)
	}

	return ModelFile{
		Type:    ModelType,
		Version: ModelVersion,
		ID:      p.ID,
		Config:  p.Config(),
		Weights: w,
	}, nil
}

// WriteModel writes p to w in the model file format
func (p *Parameters) WriteModel(w io.Writer, dtype string) error {
	file, err := p.SerializeModel(dtype)
	if err != nil {
		return fmt.Errorf("failed to serialize model: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}

// SaveModel writes p to filename in the model file format
func (p *Parameters) SaveModel(filename string, dtype string) error {
	var buf bytes.Buffer
	if err := p.WriteModel(&buf, dtype); err != nil {
		return err
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
