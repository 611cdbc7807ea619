// Package scenario defines scripts of attach, detach and leak steps that are
// played against a video game subject. Scripts are written in YAML:
//
//	gamers:
//	  - name: alice
//	    kind: pro
//	  - name: bob
//	    kind: casual
//	steps:
//	  - attach: alice
//	  - attach: bob
//	  - leak: {}
//	  - leak: {state: 8}
//	  - detach: alice
//	  - notify: {}
//
// A leak without a state draws a random severity, a leak with a state forces
// it before notifying the gamers.
package scenario

import (
	"os"

	"go.dedis.ch/gamenews/videogame"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

const (
	// KindPro is the kind of gamer that reacts to every leak.
	KindPro = "pro"

	// KindCasual is the kind of gamer that reacts only to minor leaks.
	KindCasual = "casual"
)

// Gamer declares a gamer that the steps can refer to by name.
type Gamer struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// Leak is the parameter of a leak step. State is optional.
type Leak struct {
	State *int `yaml:"state,omitempty"`
}

// Notification is the parameter of a notify step.
type Notification struct{}

// Step is a single action of a script. Exactly one of the fields must be set.
type Step struct {
	Attach string        `yaml:"attach,omitempty"`
	Detach string        `yaml:"detach,omitempty"`
	Leak   *Leak         `yaml:"leak,omitempty"`
	Notify *Notification `yaml:"notify,omitempty"`
}

// Script is the list of gamers and the ordered steps to play.
type Script struct {
	Gamers []Gamer `yaml:"gamers"`
	Steps  []Step  `yaml:"steps"`
}

// Default returns the demonstration script: a pro and a casual gamer follow
// two leaks, then the pro gamer leaves before a third one.
func Default() Script {
	return Script{
		Gamers: []Gamer{
			{Name: "pro", Kind: KindPro},
			{Name: "casual", Kind: KindCasual},
		},
		Steps: []Step{
			{Attach: "pro"},
			{Attach: "casual"},
			{Leak: &Leak{}},
			{Leak: &Leak{}},
			{Detach: "pro"},
			{Leak: &Leak{}},
		},
	}
}

// Parse decodes and validates a script.
func Parse(data []byte) (Script, error) {
	var script Script

	err := yaml.UnmarshalStrict(data, &script)
	if err != nil {
		return script, xerrors.Errorf("failed to decode: %v", err)
	}

	err = script.Validate()
	if err != nil {
		return script, xerrors.Errorf("invalid script: %v", err)
	}

	return script, nil
}

// Load reads the script at the given path.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, xerrors.Errorf("failed to read script: %v", err)
	}

	script, err := Parse(data)
	if err != nil {
		return script, xerrors.Errorf("script %q: %v", path, err)
	}

	return script, nil
}

// Validate returns an error if a gamer is badly declared or if a step is
// malformed or refers to an unknown gamer.
func (s Script) Validate() error {
	names := make(map[string]struct{})

	for i, g := range s.Gamers {
		if g.Name == "" {
			return xerrors.Errorf("gamer %d: missing name", i)
		}

		_, found := names[g.Name]
		if found {
			return xerrors.Errorf("gamer %d: duplicate name %q", i, g.Name)
		}

		if g.Kind != KindPro && g.Kind != KindCasual {
			return xerrors.Errorf("gamer %d: unknown kind %q", i, g.Kind)
		}

		names[g.Name] = struct{}{}
	}

	for i, step := range s.Steps {
		err := step.validate(names)
		if err != nil {
			return xerrors.Errorf("step %d: %v", i, err)
		}
	}

	return nil
}

func (s Step) validate(names map[string]struct{}) error {
	actions := 0

	for _, set := range []bool{s.Attach != "", s.Detach != "", s.Leak != nil, s.Notify != nil} {
		if set {
			actions++
		}
	}

	if actions != 1 {
		return xerrors.Errorf("expected exactly one action but got %d", actions)
	}

	for _, name := range []string{s.Attach, s.Detach} {
		if name == "" {
			continue
		}

		_, found := names[name]
		if !found {
			return xerrors.Errorf("unknown gamer %q", name)
		}
	}

	if s.Leak != nil && s.Leak.State != nil {
		err := videogame.CheckState(*s.Leak.State)
		if err != nil {
			return err
		}
	}

	return nil
}
