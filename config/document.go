package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/chiyutuci/inibp/driver"
	"github.com/chiyutuci/inibp/family"
)

// rawTriple decodes a 3-element YAML sequence ([a, b, value]) into
// its scalar text representations, regardless of whether the YAML
// author quoted them — sp_rules values may be bare numbers.
type rawTriple struct{ A, B, C string }

func (t *rawTriple) UnmarshalYAML(value *yaml.Node) error {
	var raw []yaml.Node
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("expected a 3-element sequence, got %d", len(raw))
	}
	t.A, t.B, t.C = raw[0].Value, raw[1].Value, raw[2].Value
	return nil
}

// rawPair decodes a 2-element YAML sequence ([momentum, mass]).
type rawPair struct{ A, B string }

func (p *rawPair) UnmarshalYAML(value *yaml.Node) error {
	var raw []yaml.Node
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("expected a 2-element sequence, got %d", len(raw))
	}
	p.A, p.B = raw[0].Value, raw[1].Value
	return nil
}

// rawInvariant decodes a [name, mass_dimension] pair.
type rawInvariant struct {
	Name          string
	MassDimension int
}

func (i *rawInvariant) UnmarshalYAML(value *yaml.Node) error {
	var raw []yaml.Node
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("expected a 2-element sequence, got %d", len(raw))
	}
	dim, err := strconv.Atoi(raw[1].Value)
	if err != nil {
		return fmt.Errorf("mass dimension %q: %w", raw[1].Value, err)
	}
	i.Name, i.MassDimension = raw[0].Value, dim
	return nil
}

type rawFamily struct {
	Name        string         `yaml:"name"`
	Dimension   yaml.Node      `yaml:"dimension"`
	Internals   []string       `yaml:"internals"`
	Externals   []string       `yaml:"externals"`
	Invariants  []rawInvariant `yaml:"invariants"`
	InvarOne    string         `yaml:"invar_one"`
	SPRules     []rawTriple    `yaml:"sp_rules"`
	SPSRules    []rawTriple    `yaml:"sps_rules"`
	Propagators []rawPair      `yaml:"propagators"`
}

type rawReduce struct {
	Top  uint64 `yaml:"top"`
	Posi int    `yaml:"posi"`
	Rank int    `yaml:"rank"`
	Dot  int    `yaml:"dot"`

	// DimensionSample / InvariantSamples are an (expansion) escape
	// hatch overriding driver's default ModP sample for the dimension
	// symbol and declared invariants — see SPEC_FULL.md §4.8.
	DimensionSample  *int64           `yaml:"dimension_sample"`
	InvariantSamples map[string]int64 `yaml:"invariant_samples"`
}

type rawDoc struct {
	Family  rawFamily  `yaml:"family"`
	Reduce  *rawReduce `yaml:"reduce"`
	Targets [][]int32  `yaml:"targets"`
}

// Document is a parsed, not-yet-validated config file.
type Document struct {
	raw rawDoc
}

// Load reads path and YAML-decodes it into a Document. It performs no
// cross-field validation — that happens in Family/Reduce, so a
// structurally valid-but-semantically-wrong file is still loadable and
// its error is reported with §6's field names.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var raw rawDoc
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, newConfigError("parsing %s: %v", path, err)
	}
	return &Document{raw: raw}, nil
}

// Family lowers the document's family block to a family.Spec.
func (d *Document) Family() (family.Spec, error) {
	raw := d.raw.Family
	if raw.Name == "" {
		return family.Spec{}, newConfigError("family.name is required")
	}
	if len(raw.Internals) == 0 {
		return family.Spec{}, newConfigError("family.internals is required")
	}

	spRules := raw.SPRules
	if len(spRules) == 0 {
		spRules = raw.SPSRules
	}
	if len(spRules) == 0 {
		return family.Spec{}, newConfigError("family.sp_rules (or sps_rules) is required")
	}

	spec := family.Spec{
		Name:        raw.Name,
		Dimension:   raw.Dimension.Value,
		Internals:   append([]string(nil), raw.Internals...),
		Externals:   append([]string(nil), raw.Externals...),
		InvarOne:    raw.InvarOne,
		Propagators: make([]family.PropagatorDecl, len(raw.Propagators)),
	}
	for _, inv := range raw.Invariants {
		spec.Invariants = append(spec.Invariants, family.InvariantDecl{
			Name:          inv.Name,
			MassDimension: inv.MassDimension,
		})
	}
	for _, r := range spRules {
		spec.SPRules = append(spec.SPRules, family.SPRule{A: r.A, B: r.B, Value: r.C})
	}
	for i, p := range raw.Propagators {
		spec.Propagators[i] = family.PropagatorDecl{Momentum: p.A, Mass: p.B}
	}

	return spec, nil
}

// Reduce lowers the document's reduce/targets block to a
// driver.ReduceSpec for a topology with n propagators. Exactly one of
// `reduce` or `targets` must be present, per spec.md §6.
func (d *Document) Reduce(n int) (driver.ReduceSpec, error) {
	hasReduce := d.raw.Reduce != nil
	hasTargets := len(d.raw.Targets) > 0
	if hasReduce == hasTargets {
		return driver.ReduceSpec{}, newConfigError("exactly one of reduce or targets must be present")
	}

	if hasTargets {
		var top uint64
		for _, t := range d.raw.Targets {
			if len(t) != n {
				return driver.ReduceSpec{}, newConfigError("targets entry has %d components, want %d", len(t), n)
			}
			mask := uint64(0)
			for i, v := range t {
				if v > 0 {
					mask |= 1 << uint(i)
				}
			}
			top |= mask
		}
		return driver.ReduceSpec{Top: top, Targets: d.raw.Targets}, nil
	}

	r := d.raw.Reduce
	depthMax := r.Posi
	if r.Dot != 0 {
		depthMax = r.Dot
	}
	return driver.ReduceSpec{
		Top:              r.Top,
		DepthMax:         depthMax,
		RankMax:          r.Rank,
		DimensionSample:  r.DimensionSample,
		InvariantSamples: r.InvariantSamples,
	}, nil
}
