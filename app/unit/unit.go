package unit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompatibleUnits is returned by Convert when the two units belong to
// different dimensions, or to the count dimension with different tags.
var ErrIncompatibleUnits = errors.New("incompatible units")

type Dimension string

const (
	DimensionMass   Dimension = "mass"
	DimensionVolume Dimension = "volume"
	DimensionCount  Dimension = "count"
)

type Tag string

const (
	Gram     Tag = "g"
	Kilogram Tag = "kg"
	Ounce    Tag = "oz"
	Pound    Tag = "lb"

	Milliliter Tag = "ml"
	Liter      Tag = "l"
	Teaspoon   Tag = "tsp"
	Tablespoon Tag = "tbsp"
	Cup        Tag = "cup"

	Piece Tag = "piece"
	Clove Tag = "clove"
	Unit  Tag = "unit"
)

type entry struct {
	dimension Dimension
	factor    float64 // scalar relative to the dimension's base unit
}

// Base units: mass in grams, volume in milliliters, count in itself.
var table = map[Tag]entry{
	Gram:     {DimensionMass, 1},
	Kilogram: {DimensionMass, 1000},
	Ounce:    {DimensionMass, 28.3495},
	Pound:    {DimensionMass, 453.592},

	Milliliter: {DimensionVolume, 1},
	Liter:      {DimensionVolume, 1000},
	Teaspoon:   {DimensionVolume, 4.92892},
	Tablespoon: {DimensionVolume, 14.7868},
	Cup:        {DimensionVolume, 236.588},

	Piece: {DimensionCount, 1},
	Clove: {DimensionCount, 1},
	Unit:  {DimensionCount, 1},
}

var aliases = map[string]Tag{
	"g":           Gram,
	"gram":        Gram,
	"grams":       Gram,
	"kg":          Kilogram,
	"kilogram":    Kilogram,
	"kilograms":   Kilogram,
	"oz":          Ounce,
	"ounce":       Ounce,
	"ounces":      Ounce,
	"lb":          Pound,
	"lbs":         Pound,
	"pound":       Pound,
	"pounds":      Pound,
	"ml":          Milliliter,
	"milliliter":  Milliliter,
	"milliliters": Milliliter,
	"millilitre":  Milliliter,
	"millilitres": Milliliter,
	"l":           Liter,
	"liter":       Liter,
	"liters":      Liter,
	"litre":       Liter,
	"litres":      Liter,
	"tsp":         Teaspoon,
	"teaspoon":    Teaspoon,
	"teaspoons":   Teaspoon,
	"tbsp":        Tablespoon,
	"tablespoon":  Tablespoon,
	"tablespoons": Tablespoon,
	"cup":         Cup,
	"cups":        Cup,
	"piece":       Piece,
	"pieces":      Piece,
	"pc":          Piece,
	"pcs":         Piece,
	"clove":       Clove,
	"cloves":      Clove,
	"unit":        Unit,
	"units":       Unit,
}

// Parse maps a raw unit string to its canonical tag. Unrecognized strings
// report ok=false rather than an error; callers keep the verbatim string and
// merge it by exact match only.
func Parse(s string) (Tag, bool) {
	tag, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	return tag, ok
}

// DimensionOf returns the dimension of a known tag.
func DimensionOf(tag Tag) (Dimension, bool) {
	e, ok := table[tag]
	return e.dimension, ok
}

// AreCompatible reports whether two units share a dimension. Count units are
// compatible as a dimension, but Convert still refuses cross-tag count
// conversion (there is no generic piece-to-clove factor).
func AreCompatible(u1, u2 Tag) bool {
	e1, ok1 := table[u1]
	e2, ok2 := table[u2]
	if !ok1 || !ok2 {
		return false
	}
	return e1.dimension == e2.dimension
}

// Convert converts a quantity between two units of the same dimension.
func Convert(quantity float64, from, to Tag) (float64, error) {
	if from == to {
		return quantity, nil
	}

	e1, ok1 := table[from]
	e2, ok2 := table[to]
	if !ok1 || !ok2 || e1.dimension != e2.dimension {
		return 0, fmt.Errorf("%w: %s and %s", ErrIncompatibleUnits, from, to)
	}

	if e1.dimension == DimensionCount {
		return 0, fmt.Errorf("%w: count units %s and %s are not interchangeable", ErrIncompatibleUnits, from, to)
	}

	return quantity * e1.factor / e2.factor, nil
}
