package solver

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/briandl2000/reactphysics3d/collider"
	"github.com/briandl2000/reactphysics3d/contact"
	"github.com/briandl2000/reactphysics3d/internal/assert"
	"github.com/briandl2000/reactphysics3d/memory"
)

// Init builds the per-step scratch solver state for manifolds/points and
// warm-starts the constrained velocities from the impulses accumulated the
// previous step. The caller owns manifolds/points; Init reads their current
// values and, for each point it consumes, marks it as a resting contact so
// it warm-starts on a future step if it persists.
func (s *System) Init(manifolds []contact.Manifold, points []contact.Point, dt float64) {
	s.dt = dt
	s.extManifolds = manifolds
	s.extPoints = points

	s.bodies.ResetConstrainedVelocities()

	s.manifolds = memory.Get[manifoldSolver](s.arena, len(manifolds))
	s.points = memory.Get[pointSolver](s.arena, len(points))

	for i := range manifolds {
		s.initializeManifold(i, &manifolds[i], points)
	}

	s.warmStart()
}

func (s *System) initializeManifold(i int, m *contact.Manifold, points []contact.Point) {
	ms := &s.manifolds[i]
	*ms = manifoldSolver{}

	ms.extIndex = i
	ms.pointsStart = m.PointsIndex
	ms.nbPoints = m.NbPoints

	row1, ok1 := s.bodies.Index(m.BodyEntity1)
	row2, ok2 := s.bodies.Index(m.BodyEntity2)
	if !ok1 || !ok2 {
		slog.Warn("contact manifold references an unknown body entity", "manifold", i)
	}
	assert.That(ok1 && ok2, "manifold %d references an unknown body entity", i)
	ms.row1, ms.row2 = row1, row2

	ms.active = !s.bodies.Disabled[row1] && !s.bodies.Disabled[row2]
	if !ms.active {
		slog.Warn("contact manifold references a disabled body", "manifold", i)
	}
	assert.That(ms.active, "manifold %d references a disabled body", i)

	if !s.bodies.IsDynamic(row1) && !s.bodies.IsDynamic(row2) {
		slog.Warn("contact manifold has no dynamic body", "manifold", i)
	}
	assert.That(s.bodies.IsDynamic(row1) || s.bodies.IsDynamic(row2), "manifold %d has no dynamic body", i)

	mat1 := s.colliders.Materials[m.ColliderIndex1]
	mat2 := s.colliders.Materials[m.ColliderIndex2]
	ms.frictionCoefficient = collider.MixedFriction(mat1, mat2)
	ms.rollingResistanceFactor = collider.MixedRollingResistance(mat1, mat2)
	ms.restitutionFactor = collider.MixedRestitution(mat1, mat2)

	ms.frictionImpulse1 = m.FrictionImpulse1
	ms.frictionImpulse2 = m.FrictionImpulse2
	ms.frictionTwistImpulse = m.FrictionTwistImpulse
	ms.rollingResistanceImpulse = m.RollingResistanceImpulse
	ms.oldFrictionVector1 = m.FrictionVector1
	ms.oldFrictionVector2 = m.FrictionVector2

	com1 := s.bodies.CentersOfMassWorld[row1]
	com2 := s.bodies.CentersOfMassWorld[row2]
	ms.invMass1 = s.bodies.InverseMasses[row1]
	ms.invMass2 = s.bodies.InverseMasses[row2]
	ms.invI1 = s.bodies.WorldInverseInertiaTensor(row1)
	ms.invI2 = s.bodies.WorldInverseInertiaTensor(row2)

	var normalSum, centroid1, centroid2 mgl64.Vec3
	atLeastOneResting := false
	beta := s.cfg.beta()

	for k := 0; k < m.NbPoints; k++ {
		extIdx := m.PointsIndex + k
		p := &points[extIdx]
		ps := &s.points[extIdx]
		*ps = pointSolver{}

		ps.extIndex = extIdx
		ps.normal = p.Normal

		// p1/p2 are independently transformed: the collision-detection
		// output need not place them at the same world point.
		p1 := s.colliders.LocalToWorldPoint(m.ColliderIndex1, p.LocalPointOnShape1)
		p2 := s.colliders.LocalToWorldPoint(m.ColliderIndex2, p.LocalPointOnShape2)

		ps.r1 = p1.Sub(com1)
		ps.r2 = p2.Sub(com2)
		ps.r1CrossN = ps.r1.Cross(p.Normal)
		ps.r2CrossN = ps.r2.Cross(p.Normal)
		ps.i1R1CrossN = ms.invI1.Mul3x1(ps.r1CrossN)
		ps.i2R2CrossN = ms.invI2.Mul3x1(ps.r2CrossN)

		sumInvMass := ms.invMass1 + ms.invMass2 +
			ps.i1R1CrossN.Dot(ps.r1CrossN) + ps.i2R2CrossN.Dot(ps.r2CrossN)
		if sumInvMass > machineEpsilon {
			ps.inverseNormalMass = 1.0 / sumInvMass
		} else {
			slog.Debug("degenerate normal effective mass, skipping point", "manifold", i, "point", k)
		}

		v1 := s.bodies.LinearVelocities[row1].Add(s.bodies.AngularVelocities[row1].Cross(ps.r1))
		v2 := s.bodies.LinearVelocities[row2].Add(s.bodies.AngularVelocities[row2].Cross(ps.r2))
		relativeVelocity := v2.Sub(v1).Dot(p.Normal)

		if relativeVelocity < -s.cfg.RestitutionVelocityThreshold {
			ps.restitutionBias = ms.restitutionFactor * relativeVelocity
		}

		if p.PenetrationDepth > s.cfg.Slop {
			ps.biasPenetrationDepth = -(beta / s.dt) * (p.PenetrationDepth - s.cfg.Slop)
		}

		ps.isRestingContact = p.IsRestingContact
		if p.IsRestingContact {
			atLeastOneResting = true
		}

		ps.penetrationImpulse = p.PenetrationImpulse

		normalSum = normalSum.Add(p.Normal)
		centroid1 = centroid1.Add(p1)
		centroid2 = centroid2.Add(p2)

		// This point now belongs to the manifold the solver is tracking; if
		// it persists to the next step, it is eligible to warm-start.
		p.IsRestingContact = true
	}

	ms.atLeastOneRestingContactPoint = atLeastOneResting

	if m.NbPoints > 0 {
		centroid1 = centroid1.Mul(1.0 / float64(m.NbPoints))
		centroid2 = centroid2.Mul(1.0 / float64(m.NbPoints))
	}
	if length := normalSum.Len(); length > machineEpsilon {
		ms.normal = normalSum.Mul(1.0 / length)
	} else {
		ms.normal = mgl64.Vec3{0, 1, 0}
	}

	ms.r1Friction = centroid1.Sub(com1)
	ms.r2Friction = centroid2.Sub(com2)

	v1 := s.bodies.LinearVelocities[row1].Add(s.bodies.AngularVelocities[row1].Cross(ms.r1Friction))
	v2 := s.bodies.LinearVelocities[row2].Add(s.bodies.AngularVelocities[row2].Cross(ms.r2Friction))
	ms.frictionVector1, ms.frictionVector2 = computeFrictionVectors(v2.Sub(v1), ms.normal)

	ms.r1CrossT1 = ms.r1Friction.Cross(ms.frictionVector1)
	ms.r2CrossT1 = ms.r2Friction.Cross(ms.frictionVector1)
	ms.r1CrossT2 = ms.r1Friction.Cross(ms.frictionVector2)
	ms.r2CrossT2 = ms.r2Friction.Cross(ms.frictionVector2)

	i1r1t1 := ms.invI1.Mul3x1(ms.r1CrossT1)
	i2r2t1 := ms.invI2.Mul3x1(ms.r2CrossT1)
	if sum := ms.invMass1 + ms.invMass2 + i1r1t1.Dot(ms.r1CrossT1) + i2r2t1.Dot(ms.r2CrossT1); sum > machineEpsilon {
		ms.inverseFriction1Mass = 1.0 / sum
	} else {
		slog.Debug("degenerate friction1 effective mass", "manifold", i)
	}

	i1r1t2 := ms.invI1.Mul3x1(ms.r1CrossT2)
	i2r2t2 := ms.invI2.Mul3x1(ms.r2CrossT2)
	if sum := ms.invMass1 + ms.invMass2 + i1r1t2.Dot(ms.r1CrossT2) + i2r2t2.Dot(ms.r2CrossT2); sum > machineEpsilon {
		ms.inverseFriction2Mass = 1.0 / sum
	} else {
		slog.Debug("degenerate friction2 effective mass", "manifold", i)
	}

	i1n := ms.invI1.Mul3x1(ms.normal)
	i2n := ms.invI2.Mul3x1(ms.normal)
	if sum := i1n.Dot(ms.normal) + i2n.Dot(ms.normal); sum > machineEpsilon {
		ms.inverseTwistMass = 1.0 / sum
	} else {
		slog.Debug("degenerate twist-friction effective mass", "manifold", i)
	}

	if ms.rollingResistanceFactor > 0 {
		sumInertia := addMat3(ms.invI1, ms.invI2)
		if det := sumInertia.Det(); math.Abs(det) > machineEpsilon {
			ms.inverseRollingResistance = sumInertia.Inv()
			ms.hasRollingResistance = true
		} else {
			slog.Debug("singular rolling-resistance matrix, skipping", "manifold", i)
		}
	}
}

// warmStart injects each manifold's impulses accumulated during the
// previous step as an initial bias on this step's constrained velocities,
// before the first Solve iteration. Only points flagged IsRestingContact by
// the caller (i.e. points that existed last step too) carry a meaningful
// normal impulse forward; new points start from zero.
func (s *System) warmStart() {
	for i := range s.manifolds {
		ms := &s.manifolds[i]
		if !ms.active {
			continue
		}

		for k := 0; k < ms.nbPoints; k++ {
			ps := &s.points[ms.pointsStart+k]
			if !ps.isRestingContact {
				ps.penetrationImpulse = 0
				continue
			}
			s.applyNormalImpulse(ms, ps, ps.penetrationImpulse)
		}

		oldFrictionImpulse := ms.oldFrictionVector1.Mul(ms.frictionImpulse1).
			Add(ms.oldFrictionVector2.Mul(ms.frictionImpulse2))
		ms.frictionImpulse1 = oldFrictionImpulse.Dot(ms.frictionVector1)
		ms.frictionImpulse2 = oldFrictionImpulse.Dot(ms.frictionVector2)

		if !ms.atLeastOneRestingContactPoint {
			ms.frictionImpulse1 = 0
			ms.frictionImpulse2 = 0
			ms.frictionTwistImpulse = 0
			ms.rollingResistanceImpulse = mgl64.Vec3{}
			continue
		}

		s.applyFrictionImpulse(ms, ms.frictionVector1, ms.r1CrossT1, ms.r2CrossT1, ms.frictionImpulse1)
		s.applyFrictionImpulse(ms, ms.frictionVector2, ms.r1CrossT2, ms.r2CrossT2, ms.frictionImpulse2)
		s.applyTwistImpulse(ms, ms.frictionTwistImpulse)
		if ms.hasRollingResistance {
			s.applyRollingImpulse(ms, ms.rollingResistanceImpulse)
		}
	}
}
