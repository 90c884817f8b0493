package solver

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/briandl2000/reactphysics3d/body"
	"github.com/briandl2000/reactphysics3d/collider"
	"github.com/briandl2000/reactphysics3d/contact"
	"github.com/briandl2000/reactphysics3d/memory"
)

// pointSolver is the scratch state for a single contact point, rebuilt by
// Init and consumed by Solve's normal-impulse pass.
type pointSolver struct {
	extIndex int // row into the caller's []contact.Point

	normal   mgl64.Vec3
	r1, r2   mgl64.Vec3 // lever arms from each body's center of mass to the contact point
	r1CrossN mgl64.Vec3
	r2CrossN mgl64.Vec3

	// I⁻¹·(r×n) for each body, precomputed since it is reused every
	// iteration of the normal constraint.
	i1R1CrossN mgl64.Vec3
	i2R2CrossN mgl64.Vec3

	inverseNormalMass float64

	biasPenetrationDepth float64
	restitutionBias      float64
	isRestingContact     bool

	penetrationImpulse      float64
	penetrationSplitImpulse float64
}

// manifoldSolver is the scratch state for one contact manifold: the single
// friction/twist/rolling constraint shared by all of its contact points,
// built from the centroid of those points, plus the mixed material
// coefficients and the body rows/inverse mass-and-inertia the manifold's
// points borrow.
type manifoldSolver struct {
	extIndex int // row into the caller's []contact.Manifold

	row1, row2                     int
	invMass1, invMass2              float64
	invI1, invI2                    mgl64.Mat3

	pointsStart, nbPoints int

	active bool // false when either body is disabled; manifold is skipped entirely

	normal mgl64.Vec3 // normalized average of the manifold's point normals

	r1Friction, r2Friction mgl64.Vec3
	frictionVector1        mgl64.Vec3
	frictionVector2        mgl64.Vec3
	oldFrictionVector1     mgl64.Vec3
	oldFrictionVector2     mgl64.Vec3

	r1CrossT1, r2CrossT1 mgl64.Vec3
	r1CrossT2, r2CrossT2 mgl64.Vec3

	inverseFriction1Mass float64
	inverseFriction2Mass float64
	inverseTwistMass     float64

	hasRollingResistance     bool
	inverseRollingResistance mgl64.Mat3

	frictionCoefficient     float64
	rollingResistanceFactor float64
	restitutionFactor       float64

	atLeastOneRestingContactPoint bool
	sumPenetrationImpulse         float64

	frictionImpulse1         float64
	frictionImpulse2         float64
	frictionTwistImpulse     float64
	rollingResistanceImpulse mgl64.Vec3
}

// System is the contact-constraint solver: it owns no persistent
// simulation state of its own, operating on the body and collider
// component stores and on the caller's contact manifolds/points for the
// duration of one Init/Solve*/StoreImpulses cycle.
type System struct {
	arena     *memory.Arena
	bodies    *body.Components
	colliders *collider.Components
	cfg       Config

	dt float64

	manifolds []manifoldSolver
	points    []pointSolver

	extManifolds []contact.Manifold
	extPoints    []contact.Point
}

// NewSystem returns a solver bound to the given component stores. The
// arena, body store and collider store are shared across steps; Init must
// be called once per step before Solve.
func NewSystem(arena *memory.Arena, bodies *body.Components, colliders *collider.Components, cfg Config) *System {
	return &System{arena: arena, bodies: bodies, colliders: colliders, cfg: cfg}
}
