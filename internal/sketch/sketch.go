// Package sketch provides sketch file handling and persistence.
package sketch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/internal/snap"
)

// CurrentVersion is the sketch file format version written by Save.
const CurrentVersion = 1

// File represents a sketch file (.sketch): the entities, the layer
// table and the snap configuration, all in one JSON document.
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	Entities []entity.Entity `json:"entities"`
	Layers   []Layer         `json:"layers,omitempty"`

	SnapSettings *snap.Settings `json:"snap_settings,omitempty"`
}

// Layer is one entry in the sketch layer table.
type Layer struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// New creates an empty sketch file.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  CurrentVersion,
		Name:     name,
		Created:  now,
		Modified: now,
	}
}

// Load loads a sketch from a .sketch file. Entities with invalid
// geometry are rejected rather than silently dropped.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if file.Version > CurrentVersion {
		return nil, fmt.Errorf("%s: unsupported sketch version %d", path, file.Version)
	}
	for _, e := range file.Entities {
		if !e.Valid() {
			return nil, fmt.Errorf("%s: entity %s has invalid %s geometry", path, e.ID, e.Type)
		}
	}

	return &file, nil
}

// Save saves the sketch to a file, updating the modified timestamp.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
