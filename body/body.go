// Package body stores rigid/collision body data as a structure-of-arrays,
// indexed by a stable entity id rather than by pointer. This is the "Body
// component store" collaborator the contact solver consumes: it owns the
// velocity, mass, inertia and center-of-mass columns the solver reads at
// init and the constrained/split velocity columns the solver mutates while
// solving.
package body

import "github.com/go-gl/mathgl/mgl64"

// Entity is a stable identifier for a rigid body, independent of its row
// index in the component arrays (rows move on Remove).
type Entity uint32

// BodyType classifies how a body responds to forces and constraints.
type BodyType int

const (
	// Static bodies never move; their inverse mass and inverse inertia are
	// always treated as zero.
	Static BodyType = iota
	// Kinematic bodies are moved externally (by animation or script). The
	// store keeps the inverse mass and inverse inertia passed to Add for
	// them, and the solver applies impulses to them with those values just
	// as it does to dynamic bodies.
	Kinematic
	// Dynamic bodies are fully simulated.
	Dynamic
)

// Components is the structure-of-arrays body store. All slices are indexed
// by row; Index resolves a stable Entity to its current row.
type Components struct {
	entities  []Entity
	index     map[Entity]int
	Types     []BodyType
	Disabled  []bool

	CentersOfMassWorld         []mgl64.Vec3
	Orientations               []mgl64.Quat
	InverseMasses              []float64
	InverseInertiaTensorsLocal []mgl64.Mat3

	LinearVelocities  []mgl64.Vec3
	AngularVelocities []mgl64.Vec3

	// Working velocity fields mutated by the solver (§5). The caller must
	// not touch these between Init and StoreImpulses.
	ConstrainedLinearVelocities  []mgl64.Vec3
	ConstrainedAngularVelocities []mgl64.Vec3
	SplitLinearVelocities        []mgl64.Vec3
	SplitAngularVelocities       []mgl64.Vec3

	// Per-axis gates in [0,1], read-only to the solver.
	LinearVelocityFactors  []mgl64.Vec3
	AngularVelocityFactors []mgl64.Vec3
}

// NewComponents returns an empty body store.
func NewComponents() *Components {
	return &Components{index: make(map[Entity]int)}
}

// Add appends a new row for entity and returns its index.
func (c *Components) Add(entity Entity, bodyType BodyType, inverseMass float64, inverseInertiaLocal mgl64.Mat3, com mgl64.Vec3, orientation mgl64.Quat) int {
	row := len(c.entities)
	c.entities = append(c.entities, entity)
	c.index[entity] = row

	if bodyType == Static {
		inverseMass = 0
	}

	c.Types = append(c.Types, bodyType)
	c.Disabled = append(c.Disabled, false)
	c.CentersOfMassWorld = append(c.CentersOfMassWorld, com)
	c.Orientations = append(c.Orientations, orientation)
	c.InverseMasses = append(c.InverseMasses, inverseMass)
	c.InverseInertiaTensorsLocal = append(c.InverseInertiaTensorsLocal, inverseInertiaLocal)

	c.LinearVelocities = append(c.LinearVelocities, mgl64.Vec3{})
	c.AngularVelocities = append(c.AngularVelocities, mgl64.Vec3{})
	c.ConstrainedLinearVelocities = append(c.ConstrainedLinearVelocities, mgl64.Vec3{})
	c.ConstrainedAngularVelocities = append(c.ConstrainedAngularVelocities, mgl64.Vec3{})
	c.SplitLinearVelocities = append(c.SplitLinearVelocities, mgl64.Vec3{})
	c.SplitAngularVelocities = append(c.SplitAngularVelocities, mgl64.Vec3{})

	c.LinearVelocityFactors = append(c.LinearVelocityFactors, mgl64.Vec3{1, 1, 1})
	c.AngularVelocityFactors = append(c.AngularVelocityFactors, mgl64.Vec3{1, 1, 1})

	return row
}

// Remove drops entity's row via swap-remove, fixing up the index map.
func (c *Components) Remove(entity Entity) {
	row, ok := c.index[entity]
	if !ok {
		return
	}
	last := len(c.entities) - 1

	swap := func(i, j int) {
		c.entities[i], c.entities[j] = c.entities[j], c.entities[i]
		c.Types[i], c.Types[j] = c.Types[j], c.Types[i]
		c.Disabled[i], c.Disabled[j] = c.Disabled[j], c.Disabled[i]
		c.CentersOfMassWorld[i], c.CentersOfMassWorld[j] = c.CentersOfMassWorld[j], c.CentersOfMassWorld[i]
		c.Orientations[i], c.Orientations[j] = c.Orientations[j], c.Orientations[i]
		c.InverseMasses[i], c.InverseMasses[j] = c.InverseMasses[j], c.InverseMasses[i]
		c.InverseInertiaTensorsLocal[i], c.InverseInertiaTensorsLocal[j] = c.InverseInertiaTensorsLocal[j], c.InverseInertiaTensorsLocal[i]
		c.LinearVelocities[i], c.LinearVelocities[j] = c.LinearVelocities[j], c.LinearVelocities[i]
		c.AngularVelocities[i], c.AngularVelocities[j] = c.AngularVelocities[j], c.AngularVelocities[i]
		c.ConstrainedLinearVelocities[i], c.ConstrainedLinearVelocities[j] = c.ConstrainedLinearVelocities[j], c.ConstrainedLinearVelocities[i]
		c.ConstrainedAngularVelocities[i], c.ConstrainedAngularVelocities[j] = c.ConstrainedAngularVelocities[j], c.ConstrainedAngularVelocities[i]
		c.SplitLinearVelocities[i], c.SplitLinearVelocities[j] = c.SplitLinearVelocities[j], c.SplitLinearVelocities[i]
		c.SplitAngularVelocities[i], c.SplitAngularVelocities[j] = c.SplitAngularVelocities[j], c.SplitAngularVelocities[i]
		c.LinearVelocityFactors[i], c.LinearVelocityFactors[j] = c.LinearVelocityFactors[j], c.LinearVelocityFactors[i]
		c.AngularVelocityFactors[i], c.AngularVelocityFactors[j] = c.AngularVelocityFactors[j], c.AngularVelocityFactors[i]
	}

	if row != last {
		swap(row, last)
		c.index[c.entities[row]] = row
	}

	c.entities = c.entities[:last]
	c.Types = c.Types[:last]
	c.Disabled = c.Disabled[:last]
	c.CentersOfMassWorld = c.CentersOfMassWorld[:last]
	c.Orientations = c.Orientations[:last]
	c.InverseMasses = c.InverseMasses[:last]
	c.InverseInertiaTensorsLocal = c.InverseInertiaTensorsLocal[:last]
	c.LinearVelocities = c.LinearVelocities[:last]
	c.AngularVelocities = c.AngularVelocities[:last]
	c.ConstrainedLinearVelocities = c.ConstrainedLinearVelocities[:last]
	c.ConstrainedAngularVelocities = c.ConstrainedAngularVelocities[:last]
	c.SplitLinearVelocities = c.SplitLinearVelocities[:last]
	c.SplitAngularVelocities = c.SplitAngularVelocities[:last]
	c.LinearVelocityFactors = c.LinearVelocityFactors[:last]
	c.AngularVelocityFactors = c.AngularVelocityFactors[:last]

	delete(c.index, entity)
}

// Index resolves entity to its current row.
func (c *Components) Index(entity Entity) (int, bool) {
	row, ok := c.index[entity]
	return row, ok
}

// IsDynamic reports whether the body at row is simulated under forces.
func (c *Components) IsDynamic(row int) bool {
	return c.Types[row] == Dynamic
}

// WorldInverseInertiaTensor returns R·I⁻¹·Rᵗ for the body at row, the zero
// matrix for static bodies. Grounded on feather's RigidBody.GetInverseInertiaWorld.
func (c *Components) WorldInverseInertiaTensor(row int) mgl64.Mat3 {
	if c.Types[row] == Static {
		return mgl64.Mat3{}
	}

	r := c.Orientations[row].Mat4().Mat3()
	return r.Mul3(c.InverseInertiaTensorsLocal[row]).Mul3(r.Transpose())
}

// ResetConstrainedVelocities copies the step-start velocity snapshot into
// the constrained velocity fields and zeroes the split velocity fields. The
// solver calls this at the
// start of Init, since §5 reserves those columns to the solver.
func (c *Components) ResetConstrainedVelocities() {
	copy(c.ConstrainedLinearVelocities, c.LinearVelocities)
	copy(c.ConstrainedAngularVelocities, c.AngularVelocities)
	for i := range c.SplitLinearVelocities {
		c.SplitLinearVelocities[i] = mgl64.Vec3{}
		c.SplitAngularVelocities[i] = mgl64.Vec3{}
	}
}

// Len returns the number of active rows.
func (c *Components) Len() int {
	return len(c.entities)
}

// EntityAt returns the entity owning row i.
func (c *Components) EntityAt(i int) Entity {
	return c.entities[i]
}
