package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/silogen/rulebloom/pkg/form"
	"github.com/silogen/rulebloom/pkg/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(r *Rules, o Options) *form.Editor {
	return form.NewEditor(locale.English(), Declaration(func() *Rules { return r }, o), form.Options{})
}

func TestCategoriesInOrder(t *testing.T) {
	e := newEditor(Defaults(), Options{})

	var names []string
	for _, c := range e.Categories() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"waves", "resourcesbuilding", "unit", "enemy", "environment", "light", "planet", "teams"}, names)
	assert.Equal(t, "Resources & Building", e.Categories()[1].Title)
}

func TestWaveSpacingDisplayedInSeconds(t *testing.T) {
	r := Defaults()
	r.Waves = true
	e := newEditor(r, Options{})
	c := e.Control("rules.wavespacing")
	require.NotNil(t, c)

	assert.Equal(t, "120", c.State().Text)
	assert.True(t, c.Commit("30"))
	assert.Equal(t, 30.0*TicksPerSecond, r.WaveSpacing)

	assert.False(t, c.Commit("0"))
	assert.False(t, c.Commit("-10"))
	assert.Equal(t, 30.0*TicksPerSecond, r.WaveSpacing)
}

func TestWaveSpacingEnabledByWaves(t *testing.T) {
	r := Defaults()
	e := newEditor(r, Options{})
	spacing := e.Control("rules.wavespacing")
	wait := e.Control("rules.waitforwavetoend")
	require.False(t, spacing.State().Enabled)

	rebuilds := e.Rebuilds()
	require.True(t, e.Control("rules.waves").Toggle())
	e.Refresh()
	assert.True(t, spacing.State().Enabled)
	assert.True(t, wait.State().Enabled)
	assert.Equal(t, rebuilds, e.Rebuilds())

	require.True(t, e.Control("rules.wavetimer").Toggle())
	e.Refresh()
	assert.False(t, spacing.State().Enabled)
	assert.False(t, wait.State().Enabled)
}

func TestSearchMultiplier(t *testing.T) {
	e := newEditor(Defaults(), Options{})
	e.SetQuery("multiplier")

	assert.NotNil(t, e.Control("rules.buildspeedmultiplier"))
	assert.Nil(t, e.Control("rules.wavelimit"))
	for _, c := range e.Categories() {
		assert.NotEqual(t, "waves", c.Name)
	}
	assert.Len(t, e.ControlsFor("rules.unithealthmultiplier"), 1+len(BaseTeams))
}

func TestSearchPlanetMatchesCategoryTitle(t *testing.T) {
	e := newEditor(Defaults(), Options{})
	e.SetQuery("planet")
	require.Len(t, e.Categories(), 1)
	assert.Equal(t, "planet", e.Categories()[0].Name)
}

func TestAllowEditRowIsOptional(t *testing.T) {
	assert.Nil(t, newEditor(Defaults(), Options{}).Control("rules.allowedit"))
	assert.NotNil(t, newEditor(Defaults(), Options{ShowAllowEdit: true}).Control("rules.allowedit"))
}

func TestInGameLocksMapArea(t *testing.T) {
	r := Defaults()
	r.LimitMapArea = true

	e := newEditor(r, Options{})
	assert.True(t, e.Control("rules.limitarea").State().Enabled)
	assert.True(t, e.Control("rules.limitx").State().Enabled)

	e = newEditor(r, Options{InGame: true})
	assert.False(t, e.Control("rules.limitarea").State().Enabled)
	assert.False(t, e.Control("rules.limitx").State().Enabled)
}

func TestEnemyCoreRadiusDisplayIsCapped(t *testing.T) {
	r := Defaults()
	r.EnemyCoreBuildRadius = 300 * TileSize
	e := newEditor(r, Options{})
	c := e.Control("rules.enemycorebuildradius")

	assert.Equal(t, "200", c.State().Text)
	require.True(t, c.Commit("50"))
	assert.Equal(t, 50.0*TileSize, r.EnemyCoreBuildRadius)
}

func TestPlanetChoice(t *testing.T) {
	r := Defaults()
	e := newEditor(r, Options{})
	c := e.Control(form.TitlePrefix + "planet")
	require.NotNil(t, c)
	require.Equal(t, []string{"Serpulo", "Erekir", "Any environment"}, c.Choices)
	assert.Equal(t, 0, c.State().Selected)

	require.True(t, c.Select(1))
	assert.Equal(t, Erekir, r.Planet)
	assert.Equal(t, ErekirEnv, r.Env)
	assert.True(t, r.Fog)

	require.True(t, c.Select(2))
	assert.Equal(t, Sun, r.Planet)
	assert.Equal(t, DefaultEnv, r.Env)
	assert.Equal(t, 2, c.State().Selected)
}

func TestTeamChoiceExactlyOne(t *testing.T) {
	r := Defaults()
	e := newEditor(r, Options{})
	player := e.Control("rules.playerteam")
	require.NotNil(t, player)
	assert.Equal(t, 1, player.State().Selected)

	require.True(t, player.Select(2))
	assert.Equal(t, Crux, r.DefaultTeam)
	assert.Equal(t, 2, player.State().Selected)
}

func TestTeamRulesGating(t *testing.T) {
	r := Defaults()
	e := newEditor(r, Options{})

	rts := e.ControlsFor("rules.rtsai")
	require.Len(t, rts, len(BaseTeams))
	for i, team := range BaseTeams {
		assert.Equal(t, team != r.DefaultTeam, rts[i].State().Enabled, team)
	}

	buildAi := e.ControlsFor("rules.buildai")
	crux := 2
	assert.True(t, buildAi[crux].State().Enabled)
	SelectPlanet(r, Erekir)
	e.Refresh()
	assert.False(t, buildAi[crux].State().Enabled)

	squad := e.ControlsFor("rules.rtsminsquadsize")[crux]
	assert.False(t, squad.State().Enabled)
	require.True(t, rts[crux].Toggle())
	e.Refresh()
	assert.True(t, squad.State().Enabled)
	assert.True(t, r.Team(Crux).RtsAi)
}

func TestTeamSubsectionsDropWhenEmpty(t *testing.T) {
	e := newEditor(Defaults(), Options{})
	for _, team := range BaseTeams {
		assert.NotNil(t, e.Section(team.Key()), team)
	}
	e.SetQuery("wave limit")
	for _, team := range BaseTeams {
		assert.Nil(t, e.Section(team.Key()), team)
	}
}

func TestDialogRows(t *testing.T) {
	r := Defaults()
	assert.Nil(t, newEditor(r, Options{}).Control("rules.weather"))

	var seen []WeatherEntry
	o := Options{Dialogs: Dialogs{
		Weather: form.DialogFunc[[]WeatherEntry](func(cur []WeatherEntry, set func([]WeatherEntry)) {
			seen = cur
			set(append(cur, WeatherKinds[0].Entry()))
		}),
	}}
	e := newEditor(r, o)
	c := e.Control("rules.weather")
	require.NotNil(t, c)
	require.True(t, c.Activate())
	assert.Empty(t, seen)
	require.Len(t, r.Weather, 1)
	assert.Equal(t, "rain", r.Weather[0].Weather)
}

func TestExtraDeclarations(t *testing.T) {
	ran := false
	o := Options{Extra: []func(*form.Builder){
		func(b *form.Builder) {
			b.Category("extra")
			b.Button("mode.custom", func() { ran = true })
		},
	}}
	e := newEditor(Defaults(), o)
	cats := e.Categories()
	assert.Equal(t, "extra", cats[len(cats)-1].Name)
	require.True(t, e.Control("mode.custom").Activate())
	assert.True(t, ran)
}

func TestExportStripsSpawns(t *testing.T) {
	r := Defaults()
	r.Spawns = []SpawnGroup{{Type: "dagger", End: 10}}
	r.Objectives = []Objective{{Type: "research", Text: "duo"}}

	data, err := Export(r)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dagger")
	assert.Contains(t, string(data), "research")
	assert.Len(t, r.Spawns, 1)
}

func TestImportKeepsMapSpecificData(t *testing.T) {
	src := Defaults()
	src.WinWave = 42
	src.Objectives = []Objective{{Type: "other"}}
	data, err := Export(src)
	require.NoError(t, err)

	cur := Defaults()
	cur.Spawns = []SpawnGroup{{Type: "flare"}}
	cur.Objectives = []Objective{{Type: "mine"}}
	next, err := Import(data, cur)
	require.NoError(t, err)

	assert.Equal(t, 42, next.WinWave)
	assert.Equal(t, cur.Spawns, next.Spawns)
	assert.Equal(t, cur.Objectives, next.Objectives)
}

func TestImportInvalid(t *testing.T) {
	cur := Defaults()
	for _, in := range []string{"", "   ", "waves: [not a bool", "just text"} {
		next, err := Import([]byte(in), cur)
		assert.ErrorIs(t, err, ErrInvalidData, "%q", in)
		assert.Nil(t, next)
	}
	assert.Equal(t, Defaults(), cur)
}

func TestImportRejectsUnknownChoices(t *testing.T) {
	cur := Defaults()
	for _, in := range []string{
		"defaultTeam: purple",
		"waveTeam: \"\"",
		"planet: pluto",
	} {
		next, err := Import([]byte(in), cur)
		assert.ErrorIs(t, err, ErrInvalidData, "%q", in)
		assert.Nil(t, next)
	}

	next, err := Import([]byte("defaultTeam: crux\nplanet: "+Sun), cur)
	require.NoError(t, err)
	assert.Equal(t, Crux, next.DefaultTeam)
	ed := newEditor(next, Options{})
	assert.Equal(t, 2, ed.Control("rules.playerteam").State().Selected)
}

func TestLoadFileRejectsUnknownTeam(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaultTeam: purple\n"), 0644))

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestSessionImportAndReset(t *testing.T) {
	r := Defaults()
	s := NewSession(r, nil, locale.English(), form.Options{}, Options{})
	before := s.Editor().Rebuilds()

	require.Error(t, s.Import([]byte("{{{")))
	assert.Same(t, r, s.Rules())
	assert.Equal(t, before, s.Editor().Rebuilds())

	other := Defaults()
	other.Waves = true
	data, err := Export(other)
	require.NoError(t, err)
	require.NoError(t, s.Import(data))
	assert.NotSame(t, r, s.Rules())
	assert.True(t, s.Rules().Waves)
	assert.Equal(t, before+1, s.Editor().Rebuilds())
	assert.True(t, s.Editor().Control("rules.waves").State().Checked)

	s.Reset()
	assert.False(t, s.Rules().Waves)
	assert.False(t, s.Editor().Control("rules.waves").State().Checked)
}

func TestSessionNotifiesReplace(t *testing.T) {
	s := NewSession(Defaults(), nil, locale.English(), form.Options{}, Options{})
	replaced := 0
	s.OnReplace(func() { replaced++ })

	require.Error(t, s.Import([]byte("{{{")))
	assert.Zero(t, replaced)

	s.Reset()
	assert.Equal(t, 1, replaced)

	data, err := Export(Defaults())
	require.NoError(t, err)
	require.NoError(t, s.Import(data))
	assert.Equal(t, 2, replaced)
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	r := Defaults()
	r.Spawns = []SpawnGroup{{Type: "dagger"}}
	r.Weather = []WeatherEntry{WeatherKinds[1].Entry()}
	r.Team(Blue).RtsAi = true
	require.NoError(t, SaveFile(path, r))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWeatherEditor(t *testing.T) {
	r := Defaults()
	ed := NewWeatherEditor(&r.Weather, locale.English(), form.Options{})

	var kinds []string
	for _, k := range ed.Kinds() {
		kinds = append(kinds, k.Key)
	}
	assert.NotContains(t, kinds, WeatherKey("suspend-particles"))

	require.NoError(t, ed.Open())
	require.NoError(t, ed.BeginAdd())
	require.NoError(t, ed.Choose(WeatherKey("sandstorm")))
	require.Len(t, r.Weather, 1)

	card := ed.Cards()[0]
	assert.Equal(t, "Sandstorm", card.Title)
	assert.Equal(t, "2", card.Control("rules.weather.minduration").State().Text)
	require.True(t, card.Control("rules.weather.maxfrequency").Commit("45"))
	assert.Equal(t, 45.0*TicksPerMinute, r.Weather[0].MaxFrequency)

	require.True(t, card.Control("rules.weather.always").Toggle())
	assert.Equal(t, 4, ed.Refresh())
	assert.False(t, card.Control("rules.weather.minduration").State().Enabled)
	assert.Equal(t, 2.0*TicksPerMinute, r.Weather[0].MinDuration)
}

func TestColorHex(t *testing.T) {
	c, err := ParseColor("#ff000080")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.R)
	assert.Equal(t, "ff000080", c.Hex())

	c, err = ParseColor("00ff00")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.A)

	for _, bad := range []string{"", "fff", "zzzzzz"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestEnglishCoversEveryKey(t *testing.T) {
	en := locale.English()
	o := Options{ShowAllowEdit: true, Dialogs: Dialogs{
		Loadout:      form.DialogFunc[[]ItemStack](func([]ItemStack, func([]ItemStack)) {}),
		BannedBlocks: form.DialogFunc[[]string](func([]string, func([]string)) {}),
		BannedUnits:  form.DialogFunc[[]string](func([]string, func([]string)) {}),
		Weather:      form.DialogFunc[[]WeatherEntry](func([]WeatherEntry, func([]WeatherEntry)) {}),
		AmbientLight: form.DialogFunc[Color](func(Color, func(Color)) {}),
	}}
	e := newEditor(Defaults(), o)

	var missing []string
	form.Each(e.Categories(), func(c *form.Control, _ int) {
		if !en.Has(c.Key()) {
			missing = append(missing, c.Key())
		}
	})
	for _, c := range e.Categories() {
		if !en.Has(c.TitleKey) {
			missing = append(missing, c.TitleKey)
		}
	}
	for _, w := range WeatherKinds {
		if !en.Has(w.Key()) {
			missing = append(missing, w.Key())
		}
	}
	assert.Empty(t, missing, strings.Join(missing, ", "))
}
