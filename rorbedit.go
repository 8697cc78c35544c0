// Package rorbedit provides lossless editing of RORB hydrological model
// text files. It reads catchment (.catg) and storm (.stm) files into
// structured documents, exposes the editable values, and writes the files
// back with every untouched byte preserved.
package rorbedit

import (
	"fmt"

	"github.com/maseology/mmio"
	"github.com/tsawler/rorbedit/catg"
	"github.com/tsawler/rorbedit/stm"
)

// OpenCatchment parses the catchment graph file at path.
func OpenCatchment(path string) (*catg.Document, error) {
	if _, ok := mmio.FileExists(path); !ok {
		return nil, fmt.Errorf("catchment file %s does not exist", path)
	}
	return catg.Parse(path)
}

// OpenStorm parses the storm file at path.
func OpenStorm(path string) (*stm.Document, error) {
	if _, ok := mmio.FileExists(path); !ok {
		return nil, fmt.Errorf("storm file %s does not exist", path)
	}
	return stm.Parse(path)
}

// Must panics on error; it exists so short example programs can chain calls.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
