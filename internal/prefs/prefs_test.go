package prefs

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

var defaults = Preferences{Speed: 2, Sound: true}

func newTestManager(t *testing.T, name string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	m, err := gdata.Open(gdata.Config{AppName: name})
	if err != nil {
		t.Fatalf("gdata.Open() error = %v", err)
	}
	return m
}

func TestLoadWithoutSavedData(t *testing.T) {
	s := NewStore(newTestManager(t, "confetti_prefs_empty"), defaults, nil)
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != defaults {
		t.Errorf("Load() = %+v, want %+v", got, defaults)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := newTestManager(t, "confetti_prefs_roundtrip")
	want := Preferences{Gradient: true, Speed: 3.5, Sound: false}

	if err := NewStore(m, defaults, nil).Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := NewStore(m, defaults, nil).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadCorruptData(t *testing.T) {
	m := newTestManager(t, "confetti_prefs_corrupt")
	if err := m.SaveObjectProp(object, property, []byte("speed: [")); err != nil {
		t.Fatal(err)
	}
	got, err := NewStore(m, defaults, nil).Load()
	if err == nil {
		t.Error("Load() accepted corrupt data")
	}
	if got != defaults {
		t.Errorf("Load() = %+v, want defaults", got)
	}
}

func TestDegradedStore(t *testing.T) {
	s := NewStore(nil, defaults, nil)
	if err := s.Save(Preferences{Gradient: true}); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	got, err := s.Load()
	if err != nil || got != defaults {
		t.Errorf("Load() = %+v, %v; want defaults", got, err)
	}
}
