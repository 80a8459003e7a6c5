// Package app provides application state for the clip viewer: the editable
// scene, its persistence, and change notification toward the UI.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"clipview/internal/clip"
	"clipview/pkg/geometry"
)

// Scene is the editable content: subject polygons and the clip window they
// are clipped against.
type Scene struct {
	Subjects [][]geometry.Point2D `json:"subjects"`
	Window   geometry.Rect        `json:"window"`
}

// DefaultScene returns the startup scene: a star and an ellipse straddling a
// clip window, so the first frame already shows a non-trivial result.
func DefaultScene() Scene {
	return Scene{
		Subjects: [][]geometry.Point2D{
			clip.Star(160, 160, 140, 60, 5),
			clip.Ellipse(340, 260, 120, 80, 48),
		},
		Window: geometry.Rect{X: 80, Y: 80, Width: 280, Height: 240},
	}
}

// DragTarget identifies what a drag gesture is manipulating.
type DragTarget int

const (
	DragNone DragTarget = iota
	DragVertex
	DragWindow
)

// State holds the scene, the active drag target, and dirty tracking. All
// methods are safe for concurrent use, though in practice everything runs on
// the UI thread.
type State struct {
	mu sync.RWMutex

	scene     Scene
	ScenePath string
	Modified  bool

	// Active drag target; valid between a begin-drag and end-drag.
	dragTarget  DragTarget
	dragPath    int
	dragVertex  int
	dragGrabOff geometry.Point2D

	onChange func()
}

// NewState creates application state with the default scene.
func NewState() *State {
	return &State{scene: DefaultScene()}
}

// OnChange registers the single change callback (the UI redraw trigger).
func (s *State) OnChange(fn func()) {
	s.onChange = fn
}

func (s *State) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Scene returns a snapshot of the current scene.
func (s *State) Scene() Scene {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Scene{Window: s.scene.Window, Subjects: make([][]geometry.Point2D, len(s.scene.Subjects))}
	for i, p := range s.scene.Subjects {
		out.Subjects[i] = append([]geometry.Point2D(nil), p...)
	}
	return out
}

// SetScene replaces the scene wholesale.
func (s *State) SetScene(sc Scene) {
	s.mu.Lock()
	s.scene = sc
	s.Modified = true
	s.mu.Unlock()
	s.notify()
}

// ContentBounds returns the bounding box of all subjects and the window,
// used for fit-to-content framing.
func (s *State) ContentBounds() geometry.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bounds := s.scene.Window
	for _, path := range s.scene.Subjects {
		if len(path) > 0 {
			bounds = bounds.Union(geometry.BoundingBox(path))
		}
	}
	return bounds
}

// Result clips the subjects against the current window and returns the
// resulting polygons.
func (s *State) Result() [][]geometry.Point2D {
	s.mu.RLock()
	w := s.scene.Window
	subjects := clip.EncodePaths(s.scene.Subjects)
	s.mu.RUnlock()

	rc := clip.RectClipper{Left: w.X, Top: w.Y, Right: w.X + w.Width, Bottom: w.Y + w.Height}
	return clip.DecodePaths(rc.BooleanOp(clip.Intersection, clip.EvenOdd, subjects, nil))
}

// BeginDrag resolves a world-space press into a drag target: the nearest
// subject vertex within tolerance wins, otherwise a press inside the clip
// window grabs the window itself. Returns the chosen target.
func (s *State) BeginDrag(p geometry.Point2D, tolerance float64) DragTarget {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := tolerance
	s.dragTarget = DragNone
	for pi, path := range s.scene.Subjects {
		for vi, v := range path {
			if d := v.Distance(p); d <= best {
				best = d
				s.dragTarget = DragVertex
				s.dragPath, s.dragVertex = pi, vi
			}
		}
	}
	if s.dragTarget == DragNone && s.scene.Window.Contains(p) {
		s.dragTarget = DragWindow
		s.dragGrabOff = p.Sub(geometry.Point2D{X: s.scene.Window.X, Y: s.scene.Window.Y})
	}
	return s.dragTarget
}

// MoveDrag moves the active drag target to follow the world-space pointer.
func (s *State) MoveDrag(p geometry.Point2D) {
	s.mu.Lock()
	switch s.dragTarget {
	case DragVertex:
		s.scene.Subjects[s.dragPath][s.dragVertex] = p
	case DragWindow:
		origin := p.Sub(s.dragGrabOff)
		s.scene.Window.X, s.scene.Window.Y = origin.X, origin.Y
	default:
		s.mu.Unlock()
		return
	}
	s.Modified = true
	s.mu.Unlock()
	s.notify()
}

// EndDrag releases the active drag target.
func (s *State) EndDrag() {
	s.mu.Lock()
	changed := s.dragTarget != DragNone
	s.dragTarget = DragNone
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// DragActive returns the current drag target.
func (s *State) DragActive() DragTarget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dragTarget
}

// SaveScene writes the scene as JSON.
func (s *State) SaveScene(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.scene, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	s.ScenePath = path
	s.Modified = false
	return nil
}

// LoadScene reads a scene JSON file and replaces the current scene.
func (s *State) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	var sc Scene
	if err := json.Unmarshal(data, &sc); err != nil {
		return fmt.Errorf("parse scene %s: %w", path, err)
	}

	s.mu.Lock()
	s.scene = sc
	s.ScenePath = path
	s.Modified = false
	s.dragTarget = DragNone
	s.mu.Unlock()
	s.notify()
	return nil
}
