package attach

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Genus selects how the u-coordinate of a request is interpreted.
type Genus int

const (
	// Parametric uses u verbatim.
	Parametric Genus = iota
	// Percentage treats u as a fraction of the measured arc length.
	Percentage
	// FixedLength treats u as a fraction of Config.StaticLength, which is
	// clamped to the measured arc length.
	FixedLength
)

var genusNames = [...]string{"Parametric", "Percentage", "FixedLength"}

func (g Genus) String() string {
	if g < 0 || int(g) >= len(genusNames) {
		return fmt.Sprintf("Genus(%d)", int(g))
	}
	return genusNames[g]
}

// IsValid is a predicate: is g one of the known genera?
func (g Genus) IsValid() bool {
	return g >= Parametric && g <= FixedLength
}

// IsLengthMode is a predicate: does g need arc length measurement?
func (g Genus) IsLengthMode() bool {
	return g != Parametric
}

// ParseGenus reads a genus from its name (case-insensitive) or its ordinal.
func ParseGenus(s string) (Genus, error) {
	s = strings.TrimSpace(s)
	for i, name := range genusNames {
		if strings.EqualFold(s, name) {
			return Genus(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Genus(n).IsValid() {
		return Genus(n), nil
	}
	return Parametric, fmt.Errorf("%w: unknown genus %q", ErrInvalidConfig, s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *Genus) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseGenus(value.Value)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
