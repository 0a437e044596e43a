package precedents

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var corpusYAML []byte

type corpusFile struct {
	Precedents []CreateCommand `yaml:"precedents"`
}

// Corpus returns the embedded starter corpus as create commands. The seeding
// tool embeds each entry and inserts it through the precedent system.
func Corpus() ([]CreateCommand, error) {
	var file corpusFile
	if err := yaml.Unmarshal(corpusYAML, &file); err != nil {
		return nil, fmt.Errorf("decode precedent corpus: %w", err)
	}

	for i, cmd := range file.Precedents {
		if err := cmd.validate(); err != nil {
			return nil, fmt.Errorf("corpus entry %d: %w", i, err)
		}
	}
	return file.Precedents, nil
}
