// Package icp loads Ideal Customer Profile definitions.
package icp

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/shipcube/leads-cli/internal/model"
)

// Load reads ICP definitions from a YAML file. The file holds a list of
// profiles, each with an industry, geography, and free-text description.
func Load(path string) ([]model.ICP, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "icp: read file")
	}

	var profiles []model.ICP
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, eris.Wrap(err, "icp: parse yaml")
	}

	if len(profiles) == 0 {
		return nil, eris.Errorf("icp: no profiles defined in %s", path)
	}
	return profiles, nil
}
