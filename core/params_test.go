package core

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParametersInDomain(t *testing.T) {
	require.NoError(t, DefaultParameters().CheckDomain())
}

func TestCheckDomain(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ParameterSet)
		field  string
	}{
		{"count zero", func(p *ParameterSet) { p.Count = 0 }, FieldCount},
		{"count above max", func(p *ParameterSet) { p.Count = 100001 }, FieldCount},
		{"size too small", func(p *ParameterSet) { p.Size = 0.0001 }, FieldSize},
		{"radius too big", func(p *ParameterSet) { p.Radius = 25 }, FieldRadius},
		{"one branch", func(p *ParameterSet) { p.Branches = 1 }, FieldBranches},
		{"spin below min", func(p *ParameterSet) { p.Spin = -6 }, FieldSpin},
		{"randomness NaN", func(p *ParameterSet) { p.Randomness = math.NaN() }, FieldRandomness},
		{"power zero", func(p *ParameterSet) { p.RandomnessPower = 0 }, FieldRandomnessPower},
		{"outside color inf", func(p *ParameterSet) { p.OutsideColor.G = math.Inf(-1) }, FieldOutsideColor},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParameters()
			tc.mutate(&p)
			err := p.CheckDomain()
			require.ErrorIs(t, err, ErrInvalidParameter)
			field, _ := InvalidField(err)
			assert.Equal(t, tc.field, field)
		})
	}
}

func TestClamp(t *testing.T) {
	p := DefaultParameters()
	p.Count = 250000
	p.Branches = 0
	p.Spin = math.NaN()
	p.Radius = -3
	p.InsideColor = RGB{math.NaN(), 0, 0}

	c := p.Clamp()
	require.NoError(t, c.CheckDomain())
	assert.Equal(t, 100000, c.Count)
	assert.Equal(t, 2, c.Branches)
	assert.Equal(t, DefaultParameters().Spin, c.Spin)
	assert.Equal(t, 0.01, c.Radius)
	assert.Equal(t, DefaultParameters().InsideColor, c.InsideColor)
}

func TestDomainSnap(t *testing.T) {
	tests := []struct {
		field string
		in    float64
		want  float64
	}{
		{FieldCount, 1234, 1201},
		{FieldCount, 0, 1},
		{FieldCount, 999999, 100000},
		{FieldSpin, 0.33, 0.3},
		{FieldSpin, -7, -5},
		{FieldRandomnessPower, 3.6, 4},
		{FieldSize, 0.0123, 0.012},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			d, ok := DomainOf(tc.field)
			require.True(t, ok)
			assert.InDelta(t, tc.want, d.Snap(tc.in), 1e-9)
		})
	}

	_, ok := DomainOf(FieldInsideColor)
	assert.False(t, ok, "colors have no numeric domain")
}

func TestFieldAccessors(t *testing.T) {
	p := DefaultParameters()

	p, ok := p.WithNumber(FieldBranches, 5.4)
	require.True(t, ok)
	assert.Equal(t, 5, p.Branches)

	v, ok := p.Number(FieldBranches)
	require.True(t, ok)
	assert.Equal(t, 5.0, v)

	_, ok = p.WithNumber("nope", 1)
	assert.False(t, ok)

	p, ok = p.WithColor(FieldOutsideColor, RGB{0, 1, 0})
	require.True(t, ok)
	c, ok := p.Color(FieldOutsideColor)
	require.True(t, ok)
	assert.Equal(t, RGB{0, 1, 0}, c)
}

func TestParameterSetJSON(t *testing.T) {
	data, err := json.Marshal(DefaultParameters())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"insideColor":"#ff6030"`)

	var p ParameterSet
	require.NoError(t, json.Unmarshal([]byte(`{"count":200,"branches":4,"outsideColor":"#00ff00"}`), &p))
	assert.Equal(t, 200, p.Count)
	assert.Equal(t, 4, p.Branches)
	assert.Equal(t, RGB{0, 1, 0}, p.OutsideColor)

	assert.Error(t, json.Unmarshal([]byte(`{"insideColor":"red"}`), &p))
}
