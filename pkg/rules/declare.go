/**
 * Copyright 2025 Advanced Micro Devices, Inc.  All rights reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
**/

package rules

import (
	"math"

	"github.com/silogen/rulebloom/pkg/binding"
	"github.com/silogen/rulebloom/pkg/form"
)

// Dialogs are the sub-editors reached from action rows. A nil dialog
// omits its row.
type Dialogs struct {
	Loadout      form.Dialog[[]ItemStack]
	BannedBlocks form.Dialog[[]string]
	BannedUnits  form.Dialog[[]string]
	Weather      form.Dialog[[]WeatherEntry]
	AmbientLight form.Dialog[Color]
}

// Options tune the ruleset form.
type Options struct {
	// ShowAllowEdit adds the "allow editing rules" row to the teams category.
	ShowAllowEdit bool
	// InGame locks the map area settings.
	InGame  bool
	Dialogs Dialogs
	// Extra declarations run after the built-in categories.
	Extra []func(b *form.Builder)
}

// Declare emits every category of the ruleset form for r.
func Declare(b *form.Builder, r *Rules, o Options) {
	declareWaves(b, r)
	declareResources(b, r, o)
	declareUnits(b, r, o)
	declareEnemy(b, r)
	declareEnvironment(b, r, o)
	declareLight(b, r, o)
	declarePlanet(b, r)
	declareTeams(b, r, o)
	for _, fn := range o.Extra {
		fn(b)
	}
}

// Declaration returns a declaration for form.NewEditor that always reads
// the current target through get.
func Declaration(get func() *Rules, o Options) func(*form.Builder) {
	return func(b *form.Builder) { Declare(b, get(), o) }
}

func flag(b *form.Builder, key string, field *bool, when ...binding.Predicate) {
	b.Check(key, func() bool { return *field }, func(v bool) { *field = v }, when...)
}

func number(b *form.Builder, key string, field *float64, opts ...binding.FloatOption) {
	b.Number(key, func() float64 { return *field }, func(v float64) { *field = v }, opts...)
}

func integer(b *form.Builder, key string, field *int, min, max int, when ...binding.Predicate) {
	b.NumberInt(key, func() int { return *field }, func(v int) { *field = v }, min, max, when...)
}

// scaled binds a field stored in other units; the form shows field/scale.
func scaled(b *form.Builder, key string, field *float64, scale float64, opts ...binding.FloatOption) {
	b.Number(key, func() float64 { return *field / scale }, func(v float64) { *field = v * scale }, opts...)
}

// capped is scaled with the displayed value limited to 200 tiles.
func capped(b *form.Builder, key string, field *float64, when ...binding.Predicate) {
	b.Number(key,
		func() float64 { return math.Min(*field/TileSize, 200) },
		func(v float64) { *field = v * TileSize },
		binding.When(when...))
}

func declareWaves(b *form.Builder, r *Rules) {
	waves := func() bool { return r.Waves }
	timed := func() bool { return r.Waves && r.WaveTimer }

	b.Category("waves")
	flag(b, "rules.waves", &r.Waves)
	flag(b, "rules.wavesending", &r.WaveSending, waves)
	flag(b, "rules.wavetimer", &r.WaveTimer, waves)
	flag(b, "rules.waitforwavetoend", &r.WaitEnemies, timed)
	flag(b, "rules.randomwaveai", &r.RandomWaveAI, waves)
	flag(b, "rules.wavespawnatcores", &r.WavesSpawnAtCores, waves)
	flag(b, "rules.airusespawns", &r.AirUseSpawns, waves)
	integer(b, "rules.wavelimit", &r.WinWave, 0, math.MaxInt32, waves)
	scaled(b, "rules.wavespacing", &r.WaveSpacing, TicksPerSecond,
		binding.Range(1, math.MaxFloat32), binding.When(timed))
	scaled(b, "rules.initialwavespacing", &r.InitialWaveSpacing, TicksPerSecond, binding.When(timed))
	scaled(b, "rules.dropzoneradius", &r.DropZoneRadius, TileSize, binding.When(waves))
}

func declareResources(b *form.Builder, r *Rules, o Options) {
	finite := func() bool { return !r.InfiniteResources }

	b.Category("resourcesbuilding")
	flag(b, "rules.alloweditworldprocessors", &r.AllowEditWorldProcessors)
	flag(b, "rules.infiniteresources", &r.InfiniteResources)
	flag(b, "rules.onlydepositcore", &r.OnlyDepositCore)
	flag(b, "rules.derelictrepair", &r.DerelictRepair)
	flag(b, "rules.reactorexplosions", &r.ReactorExplosions)
	flag(b, "rules.schematic", &r.SchematicsAllowed)
	flag(b, "rules.coreincinerates", &r.CoreIncinerates)
	flag(b, "rules.cleanupdeadteams", &r.CleanupDeadTeams, func() bool { return r.PvP })
	flag(b, "rules.disableworldprocessors", &r.DisableWorldProcessors)
	number(b, "rules.buildcostmultiplier", &r.BuildCostMultiplier, binding.When(finite))
	number(b, "rules.buildspeedmultiplier", &r.BuildSpeedMultiplier, binding.Range(0.001, 50))
	number(b, "rules.deconstructrefundmultiplier", &r.DeconstructRefundMultiplier,
		binding.Range(0, 1), binding.When(finite))
	number(b, "rules.blockhealthmultiplier", &r.BlockHealthMultiplier)
	number(b, "rules.blockdamagemultiplier", &r.BlockDamageMultiplier)
	form.Show(b, "configure", o.Dialogs.Loadout,
		func() []ItemStack { return r.Loadout }, func(v []ItemStack) { r.Loadout = v })
	form.Show(b, "bannedblocks", o.Dialogs.BannedBlocks,
		func() []string { return r.BannedBlocks }, func(v []string) { r.BannedBlocks = v })
	flag(b, "rules.hidebannedblocks", &r.HideBannedBlocks)
	flag(b, "bannedblocks.whitelist", &r.BlockWhitelist)
}

func declareUnits(b *form.Builder, r *Rules, o Options) {
	b.Category("unit")
	flag(b, "rules.unitcapvariable", &r.UnitCapVariable)
	flag(b, "rules.unitpayloadsexplode", &r.UnitPayloadsExplode)
	integer(b, "rules.unitcap", &r.UnitCap, -999, 999)
	number(b, "rules.unitdamagemultiplier", &r.UnitDamageMultiplier)
	number(b, "rules.unitcrashdamagemultiplier", &r.UnitCrashDamageMultiplier)
	number(b, "rules.unitminespeedmultiplier", &r.UnitMineSpeedMultiplier)
	number(b, "rules.unitbuildspeedmultiplier", &r.UnitBuildSpeedMultiplier, binding.Range(0, 50))
	number(b, "rules.unitcostmultiplier", &r.UnitCostMultiplier)
	number(b, "rules.unithealthmultiplier", &r.UnitHealthMultiplier)
	form.Show(b, "bannedunits", o.Dialogs.BannedUnits,
		func() []string { return r.BannedUnits }, func(v []string) { r.BannedUnits = v })
	flag(b, "bannedunits.whitelist", &r.UnitWhitelist)
}

func declareEnemy(b *form.Builder, r *Rules) {
	b.Category("enemy")
	flag(b, "rules.attack", &r.AttackMode)
	flag(b, "rules.corecapture", &r.CoreCapture)
	flag(b, "rules.placerangecheck", &r.PlaceRangeCheck)
	flag(b, "rules.polygoncoreprotection", &r.PolygonCoreProtection)
	capped(b, "rules.enemycorebuildradius", &r.EnemyCoreBuildRadius,
		func() bool { return !r.PolygonCoreProtection })
}

func declareEnvironment(b *form.Builder, r *Rules, o Options) {
	editable := func() bool { return !o.InGame }
	limited := func() bool { return r.LimitMapArea && !o.InGame }

	b.Category("environment")
	flag(b, "rules.explosions", &r.DamageExplosions)
	flag(b, "rules.fire", &r.Fire)
	flag(b, "rules.fog", &r.Fog)
	flag(b, "rules.lighting", &r.Lighting)
	flag(b, "rules.limitarea", &r.LimitMapArea, editable)
	integer(b, "rules.limitx", &r.LimitX, 0, 10000, limited)
	integer(b, "rules.limity", &r.LimitY, 0, 10000, limited)
	integer(b, "rules.limitwidth", &r.LimitWidth, 0, 10000, limited)
	integer(b, "rules.limitheight", &r.LimitHeight, 0, 10000, limited)
	number(b, "rules.solarmultiplier", &r.SolarMultiplier)
	form.Show(b, "rules.weather", o.Dialogs.Weather,
		func() []WeatherEntry { return r.Weather }, func(v []WeatherEntry) { r.Weather = v })
}

func declareLight(b *form.Builder, r *Rules, o Options) {
	b.Category("light")
	form.Show(b, "rules.ambientlight", o.Dialogs.AmbientLight,
		func() Color { return r.AmbientLight }, func(v Color) { r.AmbientLight = v })
	flag(b, "rules.lighting.unitlight", &r.UnitLight)
}

// The planet picker is matched on the category title.
func declarePlanet(b *form.Builder, r *Rules) {
	b.Category("planet")
	form.Choice(b, form.TitlePrefix+"planet", planetChoices(),
		func() string { return r.Planet },
		func(name string) { SelectPlanet(r, name) })
}

func declareTeams(b *form.Builder, r *Rules, o Options) {
	teams := teamChoices()

	b.Category("teams")
	if o.ShowAllowEdit {
		flag(b, "rules.allowedit", &r.AllowEditRules)
	}
	form.Choice(b, "rules.playerteam", teams,
		func() Team { return r.DefaultTeam }, func(t Team) { r.DefaultTeam = t })
	form.Choice(b, "rules.enemyteam", teams,
		func() Team { return r.WaveTeam }, func(t Team) { r.WaveTeam = t })

	for _, team := range BaseTeams {
		tr := r.Team(team)
		b.Subsection(team.Key(), func(b *form.Builder) {
			declareTeamRule(b, r, team, tr)
		})
	}
}

func declareTeamRule(b *form.Builder, r *Rules, team Team, tr *TeamRule) {
	notDefault := func() bool { return team != r.DefaultTeam }
	rts := func() bool { return tr.RtsAi }
	builderEnv := func() bool { return r.Env != ErekirEnv && !r.PvP }

	number(b, "rules.blockhealthmultiplier", &tr.BlockHealthMultiplier)
	number(b, "rules.blockdamagemultiplier", &tr.BlockDamageMultiplier)

	flag(b, "rules.rtsai", &tr.RtsAi, notDefault)
	integer(b, "rules.rtsminsquadsize", &tr.RtsMinSquad, 0, 100, rts)
	integer(b, "rules.rtsmaxsquadsize", &tr.RtsMaxSquad, 1, 1000, rts)
	number(b, "rules.rtsminattackweight", &tr.RtsMinWeight, binding.When(rts))

	flag(b, "rules.buildai", &tr.BuildAi, notDefault, builderEnv)
	number(b, "rules.buildaitier", &tr.BuildAiTier, binding.Range(0, 1),
		binding.When(func() bool { return tr.BuildAi }, builderEnv))

	capped(b, "rules.extracorebuildradius", &tr.ExtraCoreBuildRadius,
		func() bool { return !r.PolygonCoreProtection })

	flag(b, "rules.infiniteresources", &tr.InfiniteResources)
	flag(b, "rules.fillitems", &tr.FillItems)
	number(b, "rules.buildspeedmultiplier", &tr.BuildSpeedMultiplier, binding.Range(0.001, 50))

	number(b, "rules.unitdamagemultiplier", &tr.UnitDamageMultiplier)
	number(b, "rules.unitcrashdamagemultiplier", &tr.UnitCrashDamageMultiplier)
	number(b, "rules.unitminespeedmultiplier", &tr.UnitMineSpeedMultiplier)
	number(b, "rules.unitbuildspeedmultiplier", &tr.UnitBuildSpeedMultiplier, binding.Range(0.001, 50))
	number(b, "rules.unitcostmultiplier", &tr.UnitCostMultiplier)
	number(b, "rules.unithealthmultiplier", &tr.UnitHealthMultiplier)
}
