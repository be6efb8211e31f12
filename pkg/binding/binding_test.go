package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	waves   bool
	limit   int
	spacing float64
	refund  float64
	cap     int
	mode    string
}

func TestBoolCommit(t *testing.T) {
	s := &sample{}
	b := Bool("rules.waves", func() bool { return s.waves }, func(v bool) { s.waves = v })

	assert.Equal(t, KindBool, b.Kind())
	assert.Equal(t, "false", b.Format())
	assert.True(t, b.Commit("yes"))
	assert.True(t, s.waves)
	assert.False(t, b.Commit("maybe"))
	assert.True(t, s.waves, "invalid input must not change the target")

	b.Value.(*BoolField).Toggle()
	assert.False(t, s.waves)
}

func TestIntBounds(t *testing.T) {
	s := &sample{cap: 5}
	b := Int("rules.unitcap", func() int { return s.cap }, func(v int) { s.cap = v }, -999, 999)

	tests := []struct {
		raw   string
		valid bool
		want  int
	}{
		{"10", true, 10},
		{" -999 ", true, -999},
		{"1000", false, -999},
		{"1.5", false, -999},
		{"", false, -999},
		{"abc", false, -999},
		{"999", true, 999},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.valid, b.Commit(tt.raw))
			assert.Equal(t, tt.want, s.cap)
		})
	}
}

func TestFloatRejectsNegativeTextBeforeRange(t *testing.T) {
	s := &sample{refund: 0.5}
	b := Float("rules.deconstructrefundmultiplier",
		func() float64 { return s.refund }, func(v float64) { s.refund = v }, Range(0, 1))

	assert.False(t, b.Valid("-0.5"))
	assert.False(t, b.Commit("-0.5"))
	assert.Equal(t, 0.5, s.refund)

	assert.False(t, b.Commit("1.5"), "above max")
	assert.True(t, b.Commit("0"))
	assert.Equal(t, 0.0, s.refund)
	assert.True(t, b.Commit(".25"))
	assert.Equal(t, 0.25, s.refund)
}

func TestFloatNegativeMinIsUnreachable(t *testing.T) {
	s := &sample{spacing: 1}
	b := Float("rules.offset", func() float64 { return s.spacing }, func(v float64) { s.spacing = v }, Range(-10, 10))

	assert.False(t, b.Commit("-5"))
	assert.Equal(t, 1.0, s.spacing)
}

func TestCanParsePositiveFloat(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"1", true},
		{"0.5", true},
		{"5.", true},
		{".5", true},
		{"0", true},
		{"-1", false},
		{"+1", false},
		{"1e3", false},
		{"1.2.3", false},
		{".", false},
		{"", false},
		{"NaN", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanParsePositiveFloat(tt.raw), tt.raw)
	}
}

func TestFloatFormat(t *testing.T) {
	v := 0.0
	b := Float("k", func() float64 { return v }, func(f float64) { v = f })

	v = 2
	assert.Equal(t, "2", b.Format())
	v = 0.1 + 0.2
	assert.Equal(t, "0.3", b.Format())

	v = 3.75
	integer := Float("k", func() float64 { return v }, func(f float64) { v = f }, DisplayInteger())
	assert.Equal(t, "3", integer.Format())

	fixed := Float("k", func() float64 { return v }, func(f float64) { v = f }, Decimals(1))
	assert.Equal(t, "3.8", fixed.Format())
}

func TestWhenPredicates(t *testing.T) {
	s := &sample{}
	b := Float("rules.wavespacing", func() float64 { return s.spacing }, func(v float64) { s.spacing = v },
		When(func() bool { return s.waves }))

	assert.False(t, b.IsEnabled())
	s.waves = true
	assert.True(t, b.IsEnabled())
}

func TestAll(t *testing.T) {
	a, c := true, false
	p := All(func() bool { return a }, nil, func() bool { return c })
	assert.False(t, p())
	c = true
	assert.True(t, p())
	assert.True(t, All()())
}

func TestEnumSelection(t *testing.T) {
	s := &sample{mode: "crux"}
	choices := []Choice[string]{
		{Value: "sharded", Key: "team.sharded.name"},
		{Value: "crux", Key: "team.crux.name"},
		{Value: "malis", Key: "team.malis.name"},
	}
	b := Enum("rules.enemyteam", choices, func() string { return s.mode }, func(v string) { s.mode = v })
	f := b.Value.(*EnumField)

	require.Equal(t, 1, f.Index())
	assert.Equal(t, "team.crux.name", b.Format())

	f.Select(2)
	assert.Equal(t, "malis", s.mode)
	assert.Equal(t, 2, f.Index())

	assert.True(t, b.Commit("TEAM.SHARDED.NAME"))
	assert.Equal(t, "sharded", s.mode)
	assert.True(t, b.Commit("1"))
	assert.Equal(t, "crux", s.mode)
	assert.False(t, b.Commit("7"))
	assert.Equal(t, "crux", s.mode)

	s.mode = "derelict"
	assert.Equal(t, -1, f.Index())
	assert.Equal(t, "", b.Format())
}

func TestActionNeverCommits(t *testing.T) {
	ran := 0
	b := Action("bannedblocks", func() { ran++ })
	assert.Equal(t, KindAction, b.Kind())
	assert.False(t, b.Commit("anything"))
	b.Value.(*ActionField).Run()
	assert.Equal(t, 1, ran)
}
