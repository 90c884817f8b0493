package solver

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Solve runs one Projected Gauss-Seidel sweep over every manifold built by
// Init: the normal (penetration) constraint for each contact point, then
// the manifold-level friction, twist-friction and rolling-resistance
// constraints once per manifold. The caller is expected to call Solve
// several times per step (spec.md §4.2's velocity-iteration count) to let
// the impulses converge.
func (s *System) Solve() {
	for i := range s.manifolds {
		ms := &s.manifolds[i]
		if !ms.active {
			continue
		}

		s.solveNormalConstraints(ms)

		s.applyVelocityFactors(ms.row1)
		s.applyVelocityFactors(ms.row2)

		s.solveFrictionConstraints(ms)
	}
}

func (s *System) solveNormalConstraints(ms *manifoldSolver) {
	ms.sumPenetrationImpulse = 0
	splitActive := s.cfg.SplitImpulseActive

	for k := 0; k < ms.nbPoints; k++ {
		ps := &s.points[ms.pointsStart+k]
		if ps.inverseNormalMass == 0 {
			continue
		}

		v1 := s.bodies.ConstrainedLinearVelocities[ms.row1].Add(s.bodies.ConstrainedAngularVelocities[ms.row1].Cross(ps.r1))
		v2 := s.bodies.ConstrainedLinearVelocities[ms.row2].Add(s.bodies.ConstrainedAngularVelocities[ms.row2].Cross(ps.r2))
		jv := v2.Sub(v1).Dot(ps.normal)

		var deltaLambda float64
		if splitActive {
			deltaLambda = -(jv + ps.restitutionBias) * ps.inverseNormalMass
		} else {
			deltaLambda = -(jv + ps.biasPenetrationDepth + ps.restitutionBias) * ps.inverseNormalMass
		}

		newImpulse := math.Max(ps.penetrationImpulse+deltaLambda, 0)
		deltaLambda = newImpulse - ps.penetrationImpulse
		ps.penetrationImpulse = newImpulse

		s.applyNormalImpulse(ms, ps, deltaLambda)

		if splitActive {
			v1s := s.bodies.SplitLinearVelocities[ms.row1].Add(s.bodies.SplitAngularVelocities[ms.row1].Cross(ps.r1))
			v2s := s.bodies.SplitLinearVelocities[ms.row2].Add(s.bodies.SplitAngularVelocities[ms.row2].Cross(ps.r2))
			jvSplit := v2s.Sub(v1s).Dot(ps.normal)

			deltaLambdaSplit := -(jvSplit + ps.biasPenetrationDepth) * ps.inverseNormalMass
			newSplit := math.Max(ps.penetrationSplitImpulse+deltaLambdaSplit, 0)
			deltaLambdaSplit = newSplit - ps.penetrationSplitImpulse
			ps.penetrationSplitImpulse = newSplit

			s.applySplitNormalImpulse(ms, ps, deltaLambdaSplit)
		}

		ms.sumPenetrationImpulse += ps.penetrationImpulse
	}
}

func (s *System) solveFrictionConstraints(ms *manifoldSolver) {
	frictionLimit := ms.frictionCoefficient * ms.sumPenetrationImpulse

	s.solveFrictionAxis(ms, ms.frictionVector1, ms.r1CrossT1, ms.r2CrossT1, ms.inverseFriction1Mass, frictionLimit, &ms.frictionImpulse1)
	s.solveFrictionAxis(ms, ms.frictionVector2, ms.r1CrossT2, ms.r2CrossT2, ms.inverseFriction2Mass, frictionLimit, &ms.frictionImpulse2)

	s.solveTwistFriction(ms, frictionLimit)

	if ms.hasRollingResistance {
		s.solveRollingResistance(ms)
	}
}

func (s *System) solveFrictionAxis(ms *manifoldSolver, tangent, r1CrossT, r2CrossT mgl64.Vec3, inverseMass, limit float64, accum *float64) {
	v1 := s.bodies.ConstrainedLinearVelocities[ms.row1].Add(s.bodies.ConstrainedAngularVelocities[ms.row1].Cross(ms.r1Friction))
	v2 := s.bodies.ConstrainedLinearVelocities[ms.row2].Add(s.bodies.ConstrainedAngularVelocities[ms.row2].Cross(ms.r2Friction))
	jv := v2.Sub(v1).Dot(tangent)

	deltaLambda := -jv * inverseMass
	newImpulse := clampScalar(*accum+deltaLambda, -limit, limit)
	deltaLambda = newImpulse - *accum
	*accum = newImpulse

	s.applyFrictionImpulse(ms, tangent, r1CrossT, r2CrossT, deltaLambda)
}

func (s *System) solveTwistFriction(ms *manifoldSolver, limit float64) {
	if ms.inverseTwistMass == 0 {
		return
	}

	jv := s.bodies.ConstrainedAngularVelocities[ms.row2].Sub(s.bodies.ConstrainedAngularVelocities[ms.row1]).Dot(ms.normal)
	deltaLambda := -jv * ms.inverseTwistMass

	newImpulse := clampScalar(ms.frictionTwistImpulse+deltaLambda, -limit, limit)
	deltaLambda = newImpulse - ms.frictionTwistImpulse
	ms.frictionTwistImpulse = newImpulse

	s.applyTwistImpulse(ms, deltaLambda)
}

func (s *System) solveRollingResistance(ms *manifoldSolver) {
	jvRolling := s.bodies.ConstrainedAngularVelocities[ms.row2].Sub(s.bodies.ConstrainedAngularVelocities[ms.row1])
	deltaRolling := ms.inverseRollingResistance.Mul3x1(jvRolling.Mul(-1))

	rollingLimit := ms.rollingResistanceFactor * ms.sumPenetrationImpulse
	newImpulse := clampVec3PerAxis(ms.rollingResistanceImpulse.Add(deltaRolling), rollingLimit)
	deltaRolling = newImpulse.Sub(ms.rollingResistanceImpulse)
	ms.rollingResistanceImpulse = newImpulse

	s.applyRollingImpulse(ms, deltaRolling)
}
