package utils

import (
	"math/rand"

	"github.com/Pallinder/go-randomdata"
)

// NameGenerator hands out unique names for mesh groups synthesized when the
// source model carries no grouping metadata. Seeded deterministically so
// repeated conversions of the same model produce the same names.
type NameGenerator map[string]struct{}

func (g *NameGenerator) Next() string {
	if *g == nil {
		*g = make(map[string]struct{})
		randomdata.CustomRand(rand.New(rand.NewSource(0)))
	}
	for {
		name := randomdata.SillyName()
		if _, exists := (*g)[name]; !exists {
			(*g)[name] = struct{}{}
			return name
		}
	}
}
