// Package snapshot replays scripted input against a scene state at a fixed
// time step, for headless rendering.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyStep is returned for a step that neither presses keys, moves the
// camera nor waits.
var ErrEmptyStep = errors.New("empty step")

// Script is a sequence of input steps.
//
//	scene: transformer
//	camera: top
//	steps:
//	  - keys: [W, Q, E, R]
//	    frames: 40
//	  - keys: [Down]
//	    frames: 300
type Script struct {
	// Scene overrides the configured scene when set.
	Scene string `yaml:"scene"`
	// Output overrides the generated file name when set.
	Output string `yaml:"output"`
	Steps  []Step `yaml:"steps"`
}

// Step holds Keys down for Frames frames, then releases them. Drag and Zoom
// are applied once before the first frame of the step.
type Step struct {
	Keys   []string   `yaml:"keys"`
	Frames int        `yaml:"frames"`
	Drag   [2]float32 `yaml:"drag"`
	Zoom   float32    `yaml:"zoom"`
}

// frames returns how many frames the step runs. Keys without a count are
// tapped for a single frame.
func (s Step) frames() int {
	if s.Frames == 0 && len(s.Keys) > 0 {
		return 1
	}
	return s.Frames
}

// TotalFrames returns the number of frames the script runs.
func (sc *Script) TotalFrames() int {
	n := 0
	for _, s := range sc.Steps {
		n += s.frames()
	}
	return n
}

// Parse decodes a script. Unknown fields are rejected so typos fail loudly.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Script
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, s := range sc.Steps {
		if s.Frames < 0 {
			return nil, fmt.Errorf("step %d: negative frame count %d", i, s.Frames)
		}
		if s.frames() == 0 && s.Drag == [2]float32{} && s.Zoom == 0 {
			return nil, fmt.Errorf("step %d: %w", i, ErrEmptyStep)
		}
	}
	return &sc, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
