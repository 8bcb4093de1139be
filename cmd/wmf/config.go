package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/relfind/wmf/bounds"
)

// fileBounds is the on-disk YAML shape for a --bounds-file (spec §6
// "Bounds: map R → (lower, upper, arity) plus a universe of named
// atoms"), flattened to plain slices since YAML has no sparse-set type.
type fileBounds struct {
	UniverseSize int                     `yaml:"universeSize"`
	IntAtoms     []int                   `yaml:"intAtoms"`
	Relations    map[string]fileRelation `yaml:"relations"`
}

type fileRelation struct {
	Arity        int   `yaml:"arity"`
	Quantitative bool  `yaml:"quantitative"`
	Lower        []int `yaml:"lower"`
	Upper        []int `yaml:"upper"`
}

func loadBounds(path string) (bounds.Bounds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return bounds.Bounds{}, err
	}
	var fb fileBounds
	if err := yaml.Unmarshal(data, &fb); err != nil {
		return bounds.Bounds{}, err
	}

	b := bounds.Bounds{
		UniverseSize: fb.UniverseSize,
		IntAtoms:     bounds.NewIndexSet(fb.IntAtoms...),
		Relations:    make(map[bounds.RelationID]bounds.RelationBounds, len(fb.Relations)),
	}
	for name, fr := range fb.Relations {
		b.Relations[bounds.RelationID(name)] = bounds.RelationBounds{
			Arity:        fr.Arity,
			Quantitative: fr.Quantitative,
			Lower:        bounds.NewIndexSet(fr.Lower...),
			Upper:        bounds.NewIndexSet(fr.Upper...),
		}
	}
	return b, nil
}
