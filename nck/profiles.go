package nck

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Profile is the YAML-serializable form of a ModemConfig, letting
// operators keep a library of named channel presets (e.g. "hf-ssb-narrow",
// "telephone-voiceband") instead of repeating CLI flags.
type Profile struct {
	Name string `yaml:"name"`
	FS   int     `yaml:"fs"`
	CF   float64 `yaml:"cf"`
	BW   float64 `yaml:"bw"`
	KR   float64 `yaml:"kr"`
	M    int     `yaml:"m"`

	UseFFTShape bool `yaml:"fft_shape,omitempty"`
	Barker      int  `yaml:"barker,omitempty"`
}

// ProfileSet is a named collection of Profiles, the document shape loaded
// from a profiles.yaml file.
type ProfileSet map[string]Profile

// LoadProfiles parses a YAML document mapping profile names to channel
// parameters.
func LoadProfiles(r io.Reader) (ProfileSet, error) {
	var raw struct {
		Profiles []Profile `yaml:"profiles"`
	}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("nck: parsing profiles: %w", err)
	}
	set := make(ProfileSet, len(raw.Profiles))
	for _, p := range raw.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("nck: profile missing name")
		}
		set[p.Name] = p
	}
	return set, nil
}

// Config builds a validated ModemConfig from the profile.
func (p Profile) Config() (*ModemConfig, error) {
	var opts []Option
	if p.UseFFTShape {
		opts = append(opts, WithFFTShape())
	}
	if p.Barker > 0 {
		opts = append(opts, WithBarker(p.Barker))
	}
	return NewModemConfig(p.FS, p.CF, p.BW, p.KR, p.M, opts...)
}
