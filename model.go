package main

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/wlattner/xcsf/xcsf"
)

// Model binds a fitted system to the variable names from the csv it was
// trained on; it is what the cli writes to and reads from the model file.
type Model struct {
	VarNames []string
	Sys      *xcsf.XCSF
}

func NewModel(numX, numY int, params xcsf.Params, varNames []string) (*Model, error) {
	sys, err := xcsf.New(numX, numY, params)
	if err != nil {
		return nil, err
	}
	return &Model{VarNames: varNames, Sys: sys}, nil
}

func (m *Model) Save(w io.Writer) error {
	return gob.NewEncoder(w).Encode(m)
}

func (m *Model) Load(r io.Reader) error {
	return gob.NewDecoder(r).Decode(m)
}

func loadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m Model
	if err := m.Load(f); err != nil {
		return nil, err
	}
	return &m, nil
}
