package app

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
	"gopkg.in/yaml.v3"
)

// Genesis is the initial state of the application.
type Genesis struct {
	ChainID string `json:"chain_id"`
	// AppState holds one section per extension.
	AppState trust.Options `json:"app_state"`
}

// LoadGenesis reads a genesis file. Files with a .yaml or .yml extension
// are read as YAML, all others as JSON.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if raw, err = yamlToJSON(raw); err != nil {
			return nil, err
		}
	}
	return ParseGenesis(raw)
}

// ParseGenesis decodes a JSON genesis document.
func ParseGenesis(raw []byte) (*Genesis, error) {
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse genesis: %s", err)
	}
	if !trust.IsValidChainID(gen.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	return &gen, nil
}

// yamlToJSON converts a YAML document into JSON, so that extensions parse
// a single format.
func yamlToJSON(raw []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse yaml genesis: %s", err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "convert yaml genesis: %s", err)
	}
	return js, nil
}
