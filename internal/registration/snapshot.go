package registration

import (
	"errors"
	"fmt"
	"io"

	"github.com/pot-code/regform/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrEmptySnapshot snapshot document has no content
var ErrEmptySnapshot = errors.New("empty snapshot document")

// DecodeSnapshot reads a snapshot from a YAML or JSON document. Unknown keys are rejected.
func DecodeSnapshot(r io.Reader) (*domain.Snapshot, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	snapshot := new(domain.Snapshot)
	if err := dec.Decode(snapshot); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySnapshot
		}
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snapshot, nil
}
