package dataset

import (
	_ "embed"

	"github.com/verte-zerg/wrapdeck/internal/model"
)

//go:embed sample.json
var sampleJSON []byte

// Sample returns the bundled demo dataset.
func Sample() (*model.WrappedDataset, error) {
	return DecodeJSON(sampleJSON)
}
