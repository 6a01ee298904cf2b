// Package app provides application lifecycle management, configuration, and events.
package app

import (
	"fmt"
	"sync"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/internal/sketch"
	"dxf-sketcher/internal/snap"
)

// State holds the application state: the current sketch, its entities,
// layer visibility, snap configuration and the snap engine itself.
type State struct {
	mu sync.RWMutex

	// Sketch
	SketchPath string
	SketchName string
	Modified   bool

	// Drawing content
	entities    []entity.Entity
	hiddenLayer map[string]bool

	// Selection
	SelectedID entity.ID

	// Snapping
	snapper *snap.Snapper

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventSketchLoaded EventType = iota
	EventSketchSaved
	EventEntitiesChanged
	EventLayersChanged
	EventSelectionChanged
	EventSnapSettingsChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with an empty sketch and
// default snap settings.
func NewState() *State {
	s := &State{
		SketchName:  "untitled",
		hiddenLayer: make(map[string]bool),
		snapper:     snap.New(snap.DefaultSettings()),
		listeners:   make(map[EventType][]EventListener),
	}
	s.snapper.Initialize(nil)
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the sketch as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// Snapper returns the snap engine. Queries must come from the UI
// goroutine, same as every other State access.
func (s *State) Snapper() *snap.Snapper {
	return s.snapper
}

// Entities returns a snapshot of the drawing with layer visibility
// applied: entities on hidden layers are returned with Visible false.
func (s *State) Entities() []entity.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() []entity.Entity {
	out := make([]entity.Entity, len(s.entities))
	copy(out, s.entities)
	for i := range out {
		if s.hiddenLayer[out[i].Layer] {
			out[i].Visible = false
		}
	}
	return out
}

// Entity returns the entity with the given ID.
func (s *State) Entity(id entity.ID) (entity.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entities {
		if e.ID == id {
			return e, true
		}
	}
	return entity.Entity{}, false
}

// AddEntity appends an entity to the drawing and reindexes the snap
// engines.
func (s *State) AddEntity(e entity.Entity) error {
	if !e.Valid() {
		return fmt.Errorf("add entity %s: invalid %s geometry", e.ID, e.Type)
	}

	s.mu.Lock()
	for _, existing := range s.entities {
		if existing.ID == e.ID {
			s.mu.Unlock()
			return fmt.Errorf("add entity: duplicate id %s", e.ID)
		}
	}
	s.entities = append(s.entities, e)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.snapper.Initialize(snapshot)
	s.SetModified(true)
	s.Emit(EventEntitiesChanged, nil)
	return nil
}

// RemoveEntity deletes an entity by ID and reindexes the snap engines.
func (s *State) RemoveEntity(id entity.ID) bool {
	s.mu.Lock()
	removed := false
	for i, e := range s.entities {
		if e.ID == id {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		s.mu.Unlock()
		return false
	}
	if s.SelectedID == id {
		s.SelectedID = ""
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.snapper.Initialize(snapshot)
	s.SetModified(true)
	s.Emit(EventEntitiesChanged, nil)
	return true
}

// ReplaceEntity swaps an entity in place, e.g. after a move or edit.
func (s *State) ReplaceEntity(e entity.Entity) error {
	if !e.Valid() {
		return fmt.Errorf("replace entity %s: invalid %s geometry", e.ID, e.Type)
	}

	s.mu.Lock()
	found := false
	for i := range s.entities {
		if s.entities[i].ID == e.ID {
			s.entities[i] = e
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("replace entity: no entity with id %s", e.ID)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.snapper.Initialize(snapshot)
	s.SetModified(true)
	s.Emit(EventEntitiesChanged, nil)
	return nil
}

// SetEntityVisible shows or hides one entity.
func (s *State) SetEntityVisible(id entity.ID, visible bool) {
	s.mu.Lock()
	changed := false
	for i := range s.entities {
		if s.entities[i].ID == id && s.entities[i].Visible != visible {
			s.entities[i].Visible = visible
			changed = true
			break
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.snapper.Initialize(snapshot)
	s.SetModified(true)
	s.Emit(EventEntitiesChanged, nil)
}

// Layers returns the distinct layer names in the drawing, in first-use
// order, with their visibility.
func (s *State) Layers() []sketch.Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var layers []sketch.Layer
	seen := make(map[string]bool)
	for _, e := range s.entities {
		if seen[e.Layer] {
			continue
		}
		seen[e.Layer] = true
		layers = append(layers, sketch.Layer{Name: e.Layer, Visible: !s.hiddenLayer[e.Layer]})
	}
	return layers
}

// SetLayerVisible shows or hides a whole layer. Entities on a hidden
// layer are excluded from rendering and from snapping.
func (s *State) SetLayerVisible(name string, visible bool) {
	s.mu.Lock()
	if s.hiddenLayer[name] == !visible {
		s.mu.Unlock()
		return
	}
	if visible {
		delete(s.hiddenLayer, name)
	} else {
		s.hiddenLayer[name] = true
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.snapper.Initialize(snapshot)
	s.Emit(EventLayersChanged, name)
	s.Emit(EventEntitiesChanged, nil)
}

// Select marks an entity as the current selection ("" clears it).
func (s *State) Select(id entity.ID) {
	s.mu.Lock()
	if s.SelectedID == id {
		s.mu.Unlock()
		return
	}
	s.SelectedID = id
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, id)
}

// ToggleSnapFeature enables or disables one snap feature type.
func (s *State) ToggleSnapFeature(ft snap.FeatureType, enabled bool) {
	s.mu.RLock()
	snapshot := s.snapshotLocked()
	s.mu.RUnlock()

	s.snapper.ToggleFeature(ft, enabled, snapshot)
	s.Emit(EventSnapSettingsChanged, ft)
}

// SetSnapTolerance updates the global pixel tolerance.
func (s *State) SetSnapTolerance(pixels float64) {
	if pixels <= 0 {
		return
	}
	s.snapper.Settings().PixelTolerance = pixels
	s.Emit(EventSnapSettingsChanged, nil)
}

// NewSketch clears the drawing and starts an unnamed sketch.
func (s *State) NewSketch() {
	s.mu.Lock()
	s.SketchPath = ""
	s.SketchName = "untitled"
	s.Modified = false
	s.entities = nil
	s.hiddenLayer = make(map[string]bool)
	s.SelectedID = ""
	s.mu.Unlock()

	s.snapper.Initialize(nil)
	s.Emit(EventEntitiesChanged, nil)
}

// LoadSketch loads a sketch from the specified path, replacing the
// current drawing and snap settings.
func (s *State) LoadSketch(path string) error {
	file, err := sketch.Load(path)
	if err != nil {
		return fmt.Errorf("load sketch: %w", err)
	}

	s.mu.Lock()
	s.SketchPath = path
	s.SketchName = file.Name
	s.Modified = false
	s.entities = file.Entities
	s.hiddenLayer = make(map[string]bool)
	for _, l := range file.Layers {
		if !l.Visible {
			s.hiddenLayer[l.Name] = true
		}
	}
	s.SelectedID = ""
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if file.SnapSettings != nil {
		s.snapper.Dispose()
		s.snapper = snap.New(*file.SnapSettings)
	}
	s.snapper.Initialize(snapshot)

	s.Emit(EventEntitiesChanged, nil)
	s.Emit(EventSnapSettingsChanged, nil)
	s.Emit(EventSketchLoaded, path)
	return nil
}

// SaveSketch saves the current drawing to the specified path.
func (s *State) SaveSketch(path string) error {
	s.mu.RLock()
	file := sketch.New(s.SketchName)
	file.Entities = make([]entity.Entity, len(s.entities))
	copy(file.Entities, s.entities)
	s.mu.RUnlock()

	file.Layers = s.Layers()
	settings := s.snapper.Settings().Clone()
	file.SnapSettings = &settings

	if err := file.Save(path); err != nil {
		return fmt.Errorf("save sketch: %w", err)
	}

	s.mu.Lock()
	s.SketchPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSketchSaved, path)
	return nil
}
