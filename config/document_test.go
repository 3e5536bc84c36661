package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, yamlText string) *Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topology.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlText), 0o644))
	doc, err := Load(path)
	require.NoError(t, err)
	return doc
}

const bubbleYAML = `
family:
  name: bubble
  dimension: D
  internals: [k]
  externals: [p]
  invariants:
    - [s, 2]
    - [m, 1]
  sp_rules:
    - [p, p, s]
  propagators:
    - [k, m]
    - [k+p, m]
reduce:
  top: 3
  posi: 2
  rank: 1
`

func TestFamilyLowersBubbleSpec(t *testing.T) {
	doc := writeDoc(t, bubbleYAML)
	spec, err := doc.Family()
	require.NoError(t, err)

	assert.Equal(t, "bubble", spec.Name)
	assert.Equal(t, "D", spec.Dimension)
	assert.Equal(t, []string{"k"}, spec.Internals)
	assert.Equal(t, []string{"p"}, spec.Externals)
	require.Len(t, spec.Invariants, 2)
	assert.Equal(t, "s", spec.Invariants[0].Name)
	assert.Equal(t, 2, spec.Invariants[0].MassDimension)
	require.Len(t, spec.SPRules, 1)
	assert.Equal(t, "p", spec.SPRules[0].A)
	assert.Equal(t, "s", spec.SPRules[0].Value)
	require.Len(t, spec.Propagators, 2)
	assert.Equal(t, "k+p", spec.Propagators[1].Momentum)
}

func TestReduceUsesPosiWhenDotAbsent(t *testing.T) {
	doc := writeDoc(t, bubbleYAML)
	rs, err := doc.Reduce(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), rs.Top)
	assert.Equal(t, 2, rs.DepthMax) // from posi
	assert.Equal(t, 1, rs.RankMax)
}

func TestReduceDotOverridesPosi(t *testing.T) {
	doc := writeDoc(t, `
family:
  name: bubble
  internals: [k]
  externals: [p]
  sp_rules:
    - [p, p, s]
  propagators:
    - [k, m]
    - [k+p, m]
reduce:
  top: 3
  posi: 2
  dot: 5
`)
	rs, err := doc.Reduce(2)
	require.NoError(t, err)
	assert.Equal(t, 5, rs.DepthMax)
}

func TestFamilyAcceptsSPSRulesFallback(t *testing.T) {
	doc := writeDoc(t, `
family:
  name: bubble
  internals: [k]
  externals: [p]
  sps_rules:
    - [p, p, s]
  propagators:
    - [k, m]
    - [k+p, m]
`)
	spec, err := doc.Family()
	require.NoError(t, err)
	require.Len(t, spec.SPRules, 1)
	assert.Equal(t, "s", spec.SPRules[0].Value)
}

func TestFamilyMissingSPRulesErrors(t *testing.T) {
	doc := writeDoc(t, `
family:
  name: bubble
  internals: [k]
  propagators:
    - [k, m]
`)
	_, err := doc.Family()
	assert.ErrorIs(t, err, ErrConfig)
}

func TestFamilyMissingNameErrors(t *testing.T) {
	doc := writeDoc(t, `
family:
  internals: [k]
  sp_rules:
    - [p, p, s]
  propagators:
    - [k, m]
`)
	_, err := doc.Family()
	assert.ErrorIs(t, err, ErrConfig)
}

func TestReduceRejectsBothReduceAndTargets(t *testing.T) {
	doc := writeDoc(t, `
family:
  name: bubble
  internals: [k]
  sp_rules:
    - [p, p, s]
  propagators:
    - [k, m]
reduce:
  top: 1
targets:
  - [1, 1]
`)
	_, err := doc.Reduce(2)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestReduceRejectsNeitherReduceNorTargets(t *testing.T) {
	doc := writeDoc(t, `
family:
  name: bubble
  internals: [k]
  sp_rules:
    - [p, p, s]
  propagators:
    - [k, m]
`)
	_, err := doc.Reduce(2)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestReduceTargetsDerivesTop(t *testing.T) {
	doc := writeDoc(t, `
family:
  name: bubble
  internals: [k]
  sp_rules:
    - [p, p, s]
  propagators:
    - [k, m]
targets:
  - [1, 1]
  - [2, 0]
`)
	rs, err := doc.Reduce(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b11), rs.Top)
	assert.Equal(t, [][]int32{{1, 1}, {2, 0}}, rs.Targets)
}

func TestReduceTargetsArityMismatchErrors(t *testing.T) {
	doc := writeDoc(t, `
family:
  name: bubble
  internals: [k]
  sp_rules:
    - [p, p, s]
  propagators:
    - [k, m]
targets:
  - [1, 1, 1]
`)
	_, err := doc.Reduce(2)
	assert.ErrorIs(t, err, ErrConfig)
}
