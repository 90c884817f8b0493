package solver

import "github.com/briandl2000/reactphysics3d/memory"

// StoreImpulses writes the solver's accumulated impulses back onto the
// caller's manifolds/points, so the next step's Init can warm-start from
// them.
func (s *System) StoreImpulses() {
	for i := range s.manifolds {
		ms := &s.manifolds[i]
		if !ms.active {
			continue
		}

		for k := 0; k < ms.nbPoints; k++ {
			ps := &s.points[ms.pointsStart+k]
			s.extPoints[ps.extIndex].PenetrationImpulse = ps.penetrationImpulse
		}

		m := &s.extManifolds[ms.extIndex]
		m.FrictionImpulse1 = ms.frictionImpulse1
		m.FrictionImpulse2 = ms.frictionImpulse2
		m.FrictionTwistImpulse = ms.frictionTwistImpulse
		m.RollingResistanceImpulse = ms.rollingResistanceImpulse
		m.FrictionVector1 = ms.frictionVector1
		m.FrictionVector2 = ms.frictionVector2
	}
}

// Reset releases this step's scratch manifold/point slices back to the
// frame arena. Callers must call StoreImpulses before Reset if they want
// this step's impulses to warm-start the next one.
func (s *System) Reset() {
	memory.Put(s.arena, s.manifolds)
	memory.Put(s.arena, s.points)

	s.manifolds = nil
	s.points = nil
	s.extManifolds = nil
	s.extPoints = nil
}
