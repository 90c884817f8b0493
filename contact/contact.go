// Package contact defines the external contact manifold/point records that
// persist across simulation steps, produced by narrow-phase collision
// detection (out of scope here, per spec.md §1) and consumed/updated by the
// solver package. This package has no behavior of its own: per spec.md §7
// the solver's outward effect is pure in-out mutation of these fields.
package contact

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/briandl2000/reactphysics3d/body"
)

// Point is one contact location within a manifold.
type Point struct {
	LocalPointOnShape1 mgl64.Vec3
	LocalPointOnShape2 mgl64.Vec3

	// Normal points from body 1 toward body 2, by convention (spec.md §3).
	Normal mgl64.Vec3

	PenetrationDepth float64
	IsRestingContact bool

	// PenetrationImpulse is the normal-constraint accumulator, persisted
	// across steps for warm-starting.
	PenetrationImpulse float64
}

// Manifold is a set of up to 4 coplanar contact points between a pair of
// bodies sharing a common normal direction.
type Manifold struct {
	BodyEntity1, BodyEntity2 body.Entity
	ColliderIndex1, ColliderIndex2 int

	// PointsIndex/NbPoints index into a shared []Point slice rather than
	// owning a per-manifold slice, so the solver can size its scratch arrays
	// from a single contact-point count (spec.md §4 step 1).
	PointsIndex int
	NbPoints    int

	FrictionImpulse1      float64
	FrictionImpulse2      float64
	FrictionTwistImpulse  float64
	RollingResistanceImpulse mgl64.Vec3

	FrictionVector1 mgl64.Vec3
	FrictionVector2 mgl64.Vec3
}
