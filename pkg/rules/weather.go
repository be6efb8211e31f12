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
	"github.com/silogen/rulebloom/pkg/form"
	"github.com/silogen/rulebloom/pkg/listedit"
	"github.com/silogen/rulebloom/pkg/locale"
)

// WeatherEntry schedules one weather kind. Durations and frequencies are
// stored in ticks.
type WeatherEntry struct {
	Weather      string  `yaml:"weather"`
	MinDuration  float64 `yaml:"minDuration"`
	MaxDuration  float64 `yaml:"maxDuration"`
	MinFrequency float64 `yaml:"minFrequency"`
	MaxFrequency float64 `yaml:"maxFrequency"`
	Always       bool    `yaml:"always"`
	Intensity    float64 `yaml:"intensity"`
}

// WeatherKind is a catalog entry; durations and frequencies in minutes.
type WeatherKind struct {
	Name      string
	Hidden    bool
	Duration  [2]float64
	Frequency [2]float64
}

// Key is the localization key of the weather name.
func (w WeatherKind) Key() string { return WeatherKey(w.Name) }

// WeatherKey is the localization key for the weather named name.
func WeatherKey(name string) string { return "weather." + name + ".name" }

// Entry returns a new entry for this kind with its default schedule.
func (w WeatherKind) Entry() WeatherEntry {
	return WeatherEntry{
		Weather:      w.Name,
		MinDuration:  w.Duration[0] * TicksPerMinute,
		MaxDuration:  w.Duration[1] * TicksPerMinute,
		MinFrequency: w.Frequency[0] * TicksPerMinute,
		MaxFrequency: w.Frequency[1] * TicksPerMinute,
		Intensity:    1,
	}
}

// WeatherKinds is the weather catalog in chooser order.
var WeatherKinds = []WeatherKind{
	{Name: "rain", Duration: [2]float64{2, 10}, Frequency: [2]float64{10, 30}},
	{Name: "snow", Duration: [2]float64{2, 10}, Frequency: [2]float64{10, 30}},
	{Name: "sandstorm", Duration: [2]float64{2, 6}, Frequency: [2]float64{15, 40}},
	{Name: "sporestorm", Duration: [2]float64{2, 6}, Frequency: [2]float64{15, 40}},
	{Name: "fog", Duration: [2]float64{5, 15}, Frequency: [2]float64{20, 60}},
	{Name: "suspend-particles", Hidden: true, Duration: [2]float64{5, 15}, Frequency: [2]float64{20, 60}},
}

// DeclareWeather binds the fields of one weather card. The schedule is
// shown in minutes and is disabled, not hidden, while Always is set.
func DeclareWeather(b *form.Builder, e *WeatherEntry) {
	scheduled := func() bool { return !e.Always }
	minutes := func(key string, field *float64) {
		b.Number(key,
			func() float64 { return *field / TicksPerMinute },
			func(v float64) { *field = v * TicksPerMinute },
			binding.When(scheduled))
	}
	minutes("rules.weather.minduration", &e.MinDuration)
	minutes("rules.weather.maxduration", &e.MaxDuration)
	minutes("rules.weather.minfrequency", &e.MinFrequency)
	minutes("rules.weather.maxfrequency", &e.MaxFrequency)
	b.Check("rules.weather.always", func() bool { return e.Always }, func(v bool) { e.Always = v })
}

// NewWeatherEditor returns a list editor over list using the weather
// catalog.
func NewWeatherEditor(list *[]WeatherEntry, bundle locale.Bundle, opts form.Options) *listedit.Editor[WeatherEntry] {
	kinds := make([]listedit.Kind[WeatherEntry], len(WeatherKinds))
	for i, w := range WeatherKinds {
		kinds[i] = listedit.Kind[WeatherEntry]{Key: w.Key(), Hidden: w.Hidden, New: w.Entry}
	}
	return listedit.New(list, listedit.Config[WeatherEntry]{
		Bundle:  bundle,
		Options: opts,
		Catalog: kinds,
		Title:   func(e WeatherEntry) string { return WeatherKey(e.Weather) },
		Declare: DeclareWeather,
	})
}
