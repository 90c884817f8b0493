// Package collider stores per-collider shape-independent data: the
// local-to-world transform and the material the solver mixes to derive
// friction, restitution and rolling-resistance coefficients for a contact.
// Shape geometry itself (support functions, AABBs) is collision-detection
// machinery and out of scope here, per spec.md §1.
package collider

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/briandl2000/reactphysics3d/body"
)

// Transform is a rigid transform, following feather/actor.Transform.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// LocalToWorld maps a point from collider-local space to world space.
func (t Transform) LocalToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(local).Add(t.Position)
}

// Material holds the per-collider surface coefficients the solver mixes.
// Extends feather's actor.Material with RollingResistance, which feather
// never modeled.
type Material struct {
	Bounciness        float64
	Friction          float64
	RollingResistance float64
}

// Components is the SoA collider store.
type Components struct {
	Transforms   []Transform
	Materials    []Material
	BodyEntities []body.Entity
}

// NewComponents returns an empty collider store.
func NewComponents() *Components {
	return &Components{}
}

// Add appends a collider and returns its index.
func (c *Components) Add(bodyEntity body.Entity, transform Transform, material Material) int {
	idx := len(c.Transforms)
	c.Transforms = append(c.Transforms, transform)
	c.Materials = append(c.Materials, material)
	c.BodyEntities = append(c.BodyEntities, bodyEntity)
	return idx
}

// LocalToWorldPoint transforms a local contact point on collider colliderIdx
// into world space.
func (c *Components) LocalToWorldPoint(colliderIdx int, local mgl64.Vec3) mgl64.Vec3 {
	return c.Transforms[colliderIdx].LocalToWorld(local)
}

// MixedFriction computes the geometric-mean friction coefficient of two
// materials (spec.md §4.1 step 2). Grounded on feather's
// ComputeStaticFriction/ComputeDynamicFriction.
func MixedFriction(a, b Material) float64 {
	return math.Sqrt(a.Friction * b.Friction)
}

// MixedRollingResistance computes the average rolling-resistance factor of
// two materials (spec.md §4.1 step 2).
func MixedRollingResistance(a, b Material) float64 {
	return (a.RollingResistance + b.RollingResistance) / 2.0
}

// MixedRestitution computes the mixed restitution (bounciness) of two
// materials as max(e_a, e_b), per spec.md §4.1 step 2. Note this differs
// deliberately from feather's own ComputeRestitution, which averages; see
// DESIGN.md Open Question 1.
func MixedRestitution(a, b Material) float64 {
	return math.Max(a.Bounciness, b.Bounciness)
}
