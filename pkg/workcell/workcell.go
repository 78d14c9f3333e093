// Package workcell defines the workcell document model, a flat
// parent-indexed tree of frames, geometry instances, inertial records and
// joints sharing one identifier space, together with its bidirectional
// conversion to and from URDF robot descriptions and its JSON document
// form.
//
// All conversions are pure, synchronous, one-shot transforms. The package
// performs no internal synchronization; concurrent callers must give each
// call its own document instance.
package workcell

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Schema version of the JSON document form. Not embedded in or checked
// against loaded documents; compatibility enforcement is left to the
// surrounding application.
const (
	CurrentMajorVersion = 0
	CurrentMinorVersion = 1
)

// Workcell is the document root: a name, the reserved root identifier,
// and one parented map per entity kind. The maps share the identifier
// space. Frames parent to the root or to a joint; joints parent to a
// frame; visuals, collisions and inertias parent to a frame and are
// always leaves.
type Workcell struct {
	// Name of the workcell.
	Name string `json:"name"`
	// ID of the root; entities parented directly to the workcell use it.
	ID ID `json:"id"`

	Frames     map[ID]Parented[Frame]   `json:"frames,omitempty"`
	Visuals    map[ID]Parented[Model]   `json:"visuals,omitempty"`
	Collisions map[ID]Parented[Model]   `json:"collisions,omitempty"`
	Inertias   map[ID]Parented[Inertia] `json:"inertias,omitempty"`
	Joints     map[ID]Parented[Joint]   `json:"joints,omitempty"`
}

// New creates a blank workcell document: a root with the reserved
// identifier and no children.
func New(name string) *Workcell {
	return &Workcell{
		Name:       name,
		ID:         RootID,
		Frames:     make(map[ID]Parented[Frame]),
		Visuals:    make(map[ID]Parented[Model]),
		Collisions: make(map[ID]Parented[Model]),
		Inertias:   make(map[ID]Parented[Inertia]),
		Joints:     make(map[ID]Parented[Joint]),
	}
}

// Allocator returns an identifier allocator positioned past every
// identifier currently in the document, for callers that mutate the
// document after construction.
func (w *Workcell) Allocator() *Allocator {
	max := RootID
	bump := func(id ID) {
		if id > max {
			max = id
		}
	}
	for id := range w.Frames {
		bump(id)
	}
	for id := range w.Visuals {
		bump(id)
	}
	for id := range w.Collisions {
		bump(id)
	}
	for id := range w.Inertias {
		bump(id)
	}
	for id := range w.Joints {
		bump(id)
	}
	return &Allocator{next: max + 1}
}

// ToWriter serializes the document to its JSON form.
func (w *Workcell) ToWriter(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w); err != nil {
		return fmt.Errorf("workcell: encode: %w", err)
	}
	return nil
}

// ToString serializes the document to its JSON form as a string.
func (w *Workcell) ToString() (string, error) {
	var sb strings.Builder
	if err := w.ToWriter(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// initMaps replaces nil entity maps after decoding, so a loaded document
// is always safe to insert into.
func (w *Workcell) initMaps() {
	if w.Frames == nil {
		w.Frames = make(map[ID]Parented[Frame])
	}
	if w.Visuals == nil {
		w.Visuals = make(map[ID]Parented[Model])
	}
	if w.Collisions == nil {
		w.Collisions = make(map[ID]Parented[Model])
	}
	if w.Inertias == nil {
		w.Inertias = make(map[ID]Parented[Inertia])
	}
	if w.Joints == nil {
		w.Joints = make(map[ID]Parented[Joint])
	}
}

// FromReader deserializes a document from its JSON form.
func FromReader(r io.Reader) (*Workcell, error) {
	var w Workcell
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("workcell: decode: %w", err)
	}
	w.initMaps()
	return &w, nil
}

// FromString deserializes a document from its JSON form.
func FromString(s string) (*Workcell, error) {
	return FromBytes([]byte(s))
}

// FromBytes deserializes a document from its JSON form.
func FromBytes(b []byte) (*Workcell, error) {
	var w Workcell
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("workcell: decode: %w", err)
	}
	w.initMaps()
	return &w, nil
}
