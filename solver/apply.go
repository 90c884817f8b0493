package solver

import "github.com/go-gl/mathgl/mgl64"

func (s *System) addConstrainedVelocity(row int, dv, dw mgl64.Vec3) {
	s.bodies.ConstrainedLinearVelocities[row] = s.bodies.ConstrainedLinearVelocities[row].Add(dv)
	s.bodies.ConstrainedAngularVelocities[row] = s.bodies.ConstrainedAngularVelocities[row].Add(dw)
}

func (s *System) addSplitVelocity(row int, dv, dw mgl64.Vec3) {
	s.bodies.SplitLinearVelocities[row] = s.bodies.SplitLinearVelocities[row].Add(dv)
	s.bodies.SplitAngularVelocities[row] = s.bodies.SplitAngularVelocities[row].Add(dw)
}

// applyNormalImpulse applies a (possibly incremental) normal impulse lambda
// at point ps to manifold ms's two bodies' constrained velocities.
func (s *System) applyNormalImpulse(ms *manifoldSolver, ps *pointSolver, lambda float64) {
	linear := ps.normal.Mul(lambda)
	s.addConstrainedVelocity(ms.row1, linear.Mul(-ms.invMass1), ps.i1R1CrossN.Mul(-lambda))
	s.addConstrainedVelocity(ms.row2, linear.Mul(ms.invMass2), ps.i2R2CrossN.Mul(lambda))
}

func (s *System) applySplitNormalImpulse(ms *manifoldSolver, ps *pointSolver, lambda float64) {
	linear := ps.normal.Mul(lambda)
	s.addSplitVelocity(ms.row1, linear.Mul(-ms.invMass1), ps.i1R1CrossN.Mul(-lambda))
	s.addSplitVelocity(ms.row2, linear.Mul(ms.invMass2), ps.i2R2CrossN.Mul(lambda))
}

// applyFrictionImpulse applies a (possibly incremental) tangential impulse
// lambda along tangent, using the manifold-level lever-arm cross products
// r1CrossT/r2CrossT for body1/body2 respectively.
func (s *System) applyFrictionImpulse(ms *manifoldSolver, tangent, r1CrossT, r2CrossT mgl64.Vec3, lambda float64) {
	linear := tangent.Mul(lambda)
	angular1 := ms.invI1.Mul3x1(r1CrossT.Mul(-lambda))
	angular2 := ms.invI2.Mul3x1(r2CrossT.Mul(lambda))
	s.addConstrainedVelocity(ms.row1, linear.Mul(-ms.invMass1), angular1)
	s.addConstrainedVelocity(ms.row2, linear.Mul(ms.invMass2), angular2)
}

func (s *System) applyTwistImpulse(ms *manifoldSolver, lambda float64) {
	angular := ms.normal.Mul(lambda)
	s.addConstrainedVelocity(ms.row1, mgl64.Vec3{}, ms.invI1.Mul3x1(angular).Mul(-1))
	s.addConstrainedVelocity(ms.row2, mgl64.Vec3{}, ms.invI2.Mul3x1(angular))
}

func (s *System) applyRollingImpulse(ms *manifoldSolver, delta mgl64.Vec3) {
	s.addConstrainedVelocity(ms.row1, mgl64.Vec3{}, ms.invI1.Mul3x1(delta).Mul(-1))
	s.addConstrainedVelocity(ms.row2, mgl64.Vec3{}, ms.invI2.Mul3x1(delta))
}

// applyVelocityFactors gates a body's constrained (and, if active, split)
// velocities through its per-axis linear/angular factors. Called once per
// manifold touching the body, after that manifold's normal-impulse pass,
// never per contact point — see DESIGN.md's note on the redesigned
// double-application behavior this replaces.
func (s *System) applyVelocityFactors(row int) {
	b := s.bodies
	b.ConstrainedLinearVelocities[row] = mulElem(b.ConstrainedLinearVelocities[row], b.LinearVelocityFactors[row])
	b.ConstrainedAngularVelocities[row] = mulElem(b.ConstrainedAngularVelocities[row], b.AngularVelocityFactors[row])
	if s.cfg.SplitImpulseActive {
		b.SplitLinearVelocities[row] = mulElem(b.SplitLinearVelocities[row], b.LinearVelocityFactors[row])
		b.SplitAngularVelocities[row] = mulElem(b.SplitAngularVelocities[row], b.AngularVelocityFactors[row])
	}
}
