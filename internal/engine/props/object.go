// Package props defines placeable decoration objects and their meshes.
package props

import (
	"fmt"

	"github.com/cicciocappa/worldeditor/pkg/math"
)

// Kind is an object category tag.
type Kind string

// Built-in object kinds.
const (
	KindTree  Kind = "tree"
	KindRock  Kind = "rock"
	KindBlock Kind = "block"
)

// Kinds lists all placeable kinds in toolbar order.
var Kinds = []Kind{KindTree, KindRock, KindBlock}

// ParseKind validates a kind tag read from a world file.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTree, KindRock, KindBlock:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown object kind %q", s)
}

// PlacedObject is one object placed on the terrain. Position.Y is snapped to
// the surface at placement time; rotation is around the vertical axis.
type PlacedObject struct {
	Kind      Kind
	Position  math.Vec3
	RotationY float32 // radians
	Scale     float32 // uniform, > 0
}

// ModelMatrix returns the object's model transform.
func (o PlacedObject) ModelMatrix() math.Mat4 {
	translate := math.Translate(o.Position.X, o.Position.Y, o.Position.Z)
	return translate.Mul(math.RotateY(o.RotationY)).Mul(math.Scale(o.Scale))
}
