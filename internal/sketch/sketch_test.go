package sketch

import (
	"os"
	"path/filepath"
	"testing"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.sketch")

	f := New("floor plan")
	f.Entities = []entity.Entity{
		entity.NewLine("l1", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 10, Y: 0}),
	}
	f.Layers = []Layer{{Name: "walls", Visible: true}}

	if err := f.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "floor plan" || len(loaded.Entities) != 1 || len(loaded.Layers) != 1 {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Entities[0].ID != "l1" {
		t.Errorf("entity ID = %v, want l1", loaded.Entities[0].ID)
	}
}

func TestLoadRejectsInvalidGeometry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.sketch")
	data := `{"version":1,"name":"x","entities":[{"id":"c","type":"circle","center":{"x":0,"y":0},"radius":-1,"visible":true}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load accepted an entity with negative radius")
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "future.sketch")
	if err := os.WriteFile(path, []byte(`{"version":99,"name":"x"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load accepted an unsupported version")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.sketch")); err == nil {
		t.Error("Load succeeded on a missing file")
	}
}
