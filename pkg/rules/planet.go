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
	"github.com/silogen/rulebloom/pkg/binding"
)

const (
	Serpulo = "serpulo"
	Erekir  = "erekir"
	// Sun stands in for "any environment".
	Sun = "sun"
)

// Planet is a landable planet and the rule preset it applies.
type Planet struct {
	Name       string
	DefaultEnv Env
	preset     func(r *Rules)
}

// Key is the localization key of the planet name.
func (p Planet) Key() string { return "planet." + p.Name + ".name" }

// ApplyRules switches r to this planet and applies its preset.
func (p Planet) ApplyRules(r *Rules) {
	r.Planet = p.Name
	r.Env = p.DefaultEnv
	if p.preset != nil {
		p.preset(r)
	}
}

// Planets lists the landable planets in picker order.
var Planets = []Planet{
	{
		Name:       Serpulo,
		DefaultEnv: DefaultEnv,
		preset: func(r *Rules) {
			r.Fog = false
			r.CoreIncinerates = false
			r.PolygonCoreProtection = false
		},
	},
	{
		Name:       Erekir,
		DefaultEnv: ErekirEnv,
		preset: func(r *Rules) {
			r.Fog = true
			r.CoreIncinerates = true
			r.PolygonCoreProtection = true
			r.PlaceRangeCheck = false
		},
	},
}

// FindPlanet looks a planet up by name.
func FindPlanet(name string) (Planet, bool) {
	for _, p := range Planets {
		if p.Name == name {
			return p, true
		}
	}
	return Planet{}, false
}

// SelectPlanet applies the planet named name, or the "any environment"
// setting for Sun.
func SelectPlanet(r *Rules, name string) {
	if p, ok := FindPlanet(name); ok {
		p.ApplyRules(r)
		return
	}
	r.Env = DefaultEnv
	r.Planet = Sun
}

func planetChoices() []binding.Choice[string] {
	out := make([]binding.Choice[string], 0, len(Planets)+1)
	for _, p := range Planets {
		out = append(out, binding.Choice[string]{Value: p.Name, Key: p.Key()})
	}
	return append(out, binding.Choice[string]{Value: Sun, Key: "rules.anyenv"})
}

func teamChoices() []binding.Choice[Team] {
	out := make([]binding.Choice[Team], len(BaseTeams))
	for i, t := range BaseTeams {
		out[i] = binding.Choice[Team]{Value: t, Key: t.Key()}
	}
	return out
}
