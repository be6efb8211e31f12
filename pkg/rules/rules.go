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

// Package rules is the ruleset edited by rulebloom: its data model,
// defaults, form declarations and transfer format.
package rules

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// TicksPerSecond converts stored tick counts to seconds.
	TicksPerSecond = 60
	// TicksPerMinute converts stored tick counts to minutes.
	TicksPerMinute = 60 * TicksPerSecond
	// TileSize converts stored world units to tiles.
	TileSize = 8
)

// Env is a bit set of environment capabilities a map provides.
type Env int

const (
	EnvTerrestrial Env = 1 << iota
	EnvSpace
	EnvUnderwater
	EnvSpores
	EnvScorching
	EnvGroundOil
	EnvGroundWater
	EnvOxygen

	DefaultEnv = EnvTerrestrial | EnvSpores | EnvGroundOil | EnvGroundWater | EnvOxygen
	ErekirEnv  = EnvScorching | EnvTerrestrial
)

// Team identifies one of the base teams.
type Team string

const (
	Derelict Team = "derelict"
	Sharded  Team = "sharded"
	Crux     Team = "crux"
	Malis    Team = "malis"
	Green    Team = "green"
	Blue     Team = "blue"
)

// BaseTeams lists the teams that get their own rule section.
var BaseTeams = []Team{Derelict, Sharded, Crux, Malis, Green, Blue}

// Key is the localization key of the team name.
func (t Team) Key() string { return "team." + string(t) + ".name" }

// Color is an RGBA colour with components in [0, 1].
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// Hex renders the colour as rrggbbaa.
func (c Color) Hex() string {
	b := func(v float64) int { return int(clamp01(v)*255 + 0.5) }
	return fmt.Sprintf("%02x%02x%02x%02x", b(c.R), b(c.G), b(c.B), b(c.A))
}

// ParseColor reads rrggbb or rrggbbaa, with or without a leading '#'.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return Color{}, fmt.Errorf("color %q: want rrggbb or rrggbbaa", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	ch := func(shift uint) float64 { return float64((v>>shift)&0xff) / 255 }
	return Color{R: ch(24), G: ch(16), B: ch(8), A: ch(0)}, nil
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// ItemStack is one loadout entry.
type ItemStack struct {
	Item   string `yaml:"item"`
	Amount int    `yaml:"amount"`
}

// SpawnGroup describes one wave spawn. Spawns are map specific and never
// travel through export or import.
type SpawnGroup struct {
	Type    string `yaml:"type"`
	Begin   int    `yaml:"begin,omitempty"`
	End     int    `yaml:"end,omitempty"`
	Spacing int    `yaml:"spacing,omitempty"`
	Amount  int    `yaml:"amount,omitempty"`
}

// Objective is a map objective. Like spawns, objectives stay with the map.
type Objective struct {
	Type string `yaml:"type"`
	Text string `yaml:"text,omitempty"`
}

// TeamRule holds the per-team overrides.
type TeamRule struct {
	BlockHealthMultiplier     float64 `yaml:"blockHealthMultiplier"`
	BlockDamageMultiplier     float64 `yaml:"blockDamageMultiplier"`
	RtsAi                     bool    `yaml:"rtsAi"`
	RtsMinSquad               int     `yaml:"rtsMinSquad"`
	RtsMaxSquad               int     `yaml:"rtsMaxSquad"`
	RtsMinWeight              float64 `yaml:"rtsMinWeight"`
	BuildAi                   bool    `yaml:"buildAi"`
	BuildAiTier               float64 `yaml:"buildAiTier"`
	ExtraCoreBuildRadius      float64 `yaml:"extraCoreBuildRadius"`
	InfiniteResources         bool    `yaml:"infiniteResources"`
	FillItems                 bool    `yaml:"fillItems"`
	BuildSpeedMultiplier      float64 `yaml:"buildSpeedMultiplier"`
	UnitDamageMultiplier      float64 `yaml:"unitDamageMultiplier"`
	UnitCrashDamageMultiplier float64 `yaml:"unitCrashDamageMultiplier"`
	UnitMineSpeedMultiplier   float64 `yaml:"unitMineSpeedMultiplier"`
	UnitBuildSpeedMultiplier  float64 `yaml:"unitBuildSpeedMultiplier"`
	UnitCostMultiplier        float64 `yaml:"unitCostMultiplier"`
	UnitHealthMultiplier      float64 `yaml:"unitHealthMultiplier"`
}

// DefaultTeamRule returns the overrides a team starts with.
func DefaultTeamRule() *TeamRule {
	return &TeamRule{
		BlockHealthMultiplier:     1,
		BlockDamageMultiplier:     1,
		RtsMinSquad:               4,
		RtsMaxSquad:               1000,
		RtsMinWeight:              1.2,
		BuildAiTier:               1,
		BuildSpeedMultiplier:      1,
		UnitDamageMultiplier:      1,
		UnitCrashDamageMultiplier: 1,
		UnitMineSpeedMultiplier:   1,
		UnitBuildSpeedMultiplier:  1,
		UnitCostMultiplier:        1,
		UnitHealthMultiplier:      1,
	}
}

// Rules is the ruleset. Time values are stored in ticks and distances in
// world units; the form converts them to seconds, minutes and tiles.
type Rules struct {
	Waves              bool    `yaml:"waves"`
	WaveSending        bool    `yaml:"waveSending"`
	WaveTimer          bool    `yaml:"waveTimer"`
	WaitEnemies        bool    `yaml:"waitEnemies"`
	RandomWaveAI       bool    `yaml:"randomWaveAI"`
	WavesSpawnAtCores  bool    `yaml:"wavesSpawnAtCores"`
	AirUseSpawns       bool    `yaml:"airUseSpawns"`
	WinWave            int     `yaml:"winWave"`
	WaveSpacing        float64 `yaml:"waveSpacing"`
	InitialWaveSpacing float64 `yaml:"initialWaveSpacing"`
	DropZoneRadius     float64 `yaml:"dropZoneRadius"`

	AllowEditWorldProcessors    bool        `yaml:"allowEditWorldProcessors"`
	InfiniteResources           bool        `yaml:"infiniteResources"`
	OnlyDepositCore             bool        `yaml:"onlyDepositCore"`
	DerelictRepair              bool        `yaml:"derelictRepair"`
	ReactorExplosions           bool        `yaml:"reactorExplosions"`
	SchematicsAllowed           bool        `yaml:"schematicsAllowed"`
	CoreIncinerates             bool        `yaml:"coreIncinerates"`
	CleanupDeadTeams            bool        `yaml:"cleanupDeadTeams"`
	DisableWorldProcessors      bool        `yaml:"disableWorldProcessors"`
	BuildCostMultiplier         float64     `yaml:"buildCostMultiplier"`
	BuildSpeedMultiplier        float64     `yaml:"buildSpeedMultiplier"`
	DeconstructRefundMultiplier float64     `yaml:"deconstructRefundMultiplier"`
	BlockHealthMultiplier       float64     `yaml:"blockHealthMultiplier"`
	BlockDamageMultiplier       float64     `yaml:"blockDamageMultiplier"`
	Loadout                     []ItemStack `yaml:"loadout"`
	BannedBlocks                []string    `yaml:"bannedBlocks,omitempty"`
	HideBannedBlocks            bool        `yaml:"hideBannedBlocks"`
	BlockWhitelist              bool        `yaml:"blockWhitelist"`

	UnitCapVariable           bool     `yaml:"unitCapVariable"`
	UnitPayloadsExplode       bool     `yaml:"unitPayloadsExplode"`
	UnitCap                   int      `yaml:"unitCap"`
	UnitDamageMultiplier      float64  `yaml:"unitDamageMultiplier"`
	UnitCrashDamageMultiplier float64  `yaml:"unitCrashDamageMultiplier"`
	UnitMineSpeedMultiplier   float64  `yaml:"unitMineSpeedMultiplier"`
	UnitBuildSpeedMultiplier  float64  `yaml:"unitBuildSpeedMultiplier"`
	UnitCostMultiplier        float64  `yaml:"unitCostMultiplier"`
	UnitHealthMultiplier      float64  `yaml:"unitHealthMultiplier"`
	BannedUnits               []string `yaml:"bannedUnits,omitempty"`
	UnitWhitelist             bool     `yaml:"unitWhitelist"`

	AttackMode            bool    `yaml:"attackMode"`
	CoreCapture           bool    `yaml:"coreCapture"`
	PlaceRangeCheck       bool    `yaml:"placeRangeCheck"`
	PolygonCoreProtection bool    `yaml:"polygonCoreProtection"`
	EnemyCoreBuildRadius  float64 `yaml:"enemyCoreBuildRadius"`

	DamageExplosions bool           `yaml:"damageExplosions"`
	Fire             bool           `yaml:"fire"`
	Fog              bool           `yaml:"fog"`
	Lighting         bool           `yaml:"lighting"`
	LimitMapArea     bool           `yaml:"limitMapArea"`
	LimitX           int            `yaml:"limitX"`
	LimitY           int            `yaml:"limitY"`
	LimitWidth       int            `yaml:"limitWidth"`
	LimitHeight      int            `yaml:"limitHeight"`
	SolarMultiplier  float64        `yaml:"solarMultiplier"`
	Weather          []WeatherEntry `yaml:"weather,omitempty"`

	AmbientLight Color `yaml:"ambientLight"`
	UnitLight    bool  `yaml:"unitLight"`

	Planet string `yaml:"planet"`
	Env    Env    `yaml:"env"`

	PvP            bool               `yaml:"pvp"`
	AllowEditRules bool               `yaml:"allowEditRules"`
	DefaultTeam    Team               `yaml:"defaultTeam"`
	WaveTeam       Team               `yaml:"waveTeam"`
	Teams          map[Team]*TeamRule `yaml:"teams"`

	Spawns     []SpawnGroup `yaml:"spawns,omitempty"`
	Objectives []Objective  `yaml:"objectives,omitempty"`
}

// Defaults returns a fresh ruleset.
func Defaults() *Rules {
	return &Rules{
		WaveSending:       true,
		WaveTimer:         true,
		WavesSpawnAtCores: true,
		WaveSpacing:       2 * TicksPerMinute,
		DropZoneRadius:    300,

		ReactorExplosions:           true,
		SchematicsAllowed:           true,
		BuildCostMultiplier:         1,
		BuildSpeedMultiplier:        1,
		DeconstructRefundMultiplier: 0.5,
		BlockHealthMultiplier:       1,
		BlockDamageMultiplier:       1,
		Loadout:                     []ItemStack{{Item: "copper", Amount: 100}},

		UnitCapVariable:           true,
		UnitDamageMultiplier:      1,
		UnitCrashDamageMultiplier: 1,
		UnitMineSpeedMultiplier:   1,
		UnitBuildSpeedMultiplier:  1,
		UnitCostMultiplier:        1,
		UnitHealthMultiplier:      1,

		EnemyCoreBuildRadius: 400,

		DamageExplosions: true,
		Fire:             true,
		LimitWidth:       1,
		LimitHeight:      1,
		SolarMultiplier:  1,

		AmbientLight: Color{A: 0.5},

		Planet: Serpulo,
		Env:    DefaultEnv,

		DefaultTeam: Sharded,
		WaveTeam:    Crux,
		Teams:       map[Team]*TeamRule{},
	}
}

// Team returns the overrides for t, creating them on first use.
func (r *Rules) Team(t Team) *TeamRule {
	if r.Teams == nil {
		r.Teams = map[Team]*TeamRule{}
	}
	tr, ok := r.Teams[t]
	if !ok || tr == nil {
		tr = DefaultTeamRule()
		r.Teams[t] = tr
	}
	return tr
}
