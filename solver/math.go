package solver

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// machineEpsilon gates the degenerate-tangent fallback in
// computeFrictionVectors, grounded on original_source's use of
// MACHINE_EPSILON for the same comparison.
const machineEpsilon = 1e-9

func clampScalar(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// clampVec3PerAxis clamps each component of v independently to
// [-limit, limit]. Grounded on DESIGN.md's Open Question decision that the
// rolling-resistance accumulator clamps per axis rather than by vector norm.
func clampVec3PerAxis(v mgl64.Vec3, limit float64) mgl64.Vec3 {
	return mgl64.Vec3{
		clampScalar(v[0], -limit, limit),
		clampScalar(v[1], -limit, limit),
		clampScalar(v[2], -limit, limit),
	}
}

func mulElem(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func addMat3(a, b mgl64.Mat3) mgl64.Mat3 {
	var r mgl64.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Set(i, j, a.At(i, j)+b.At(i, j))
		}
	}
	return r
}

// oneUnitOrthogonalVector returns an arbitrary unit vector orthogonal to v,
// used as the friction tangent basis when the relative tangential velocity
// at a contact is too small to define one. Grounded on feather's
// actor.getTangentBasis helper.
func oneUnitOrthogonalVector(v mgl64.Vec3) mgl64.Vec3 {
	absX, absY, absZ := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])

	var axis mgl64.Vec3
	switch {
	case absX <= absY && absX <= absZ:
		axis = mgl64.Vec3{1, 0, 0}
	case absY <= absZ:
		axis = mgl64.Vec3{0, 1, 0}
	default:
		axis = mgl64.Vec3{0, 0, 1}
	}

	return v.Cross(axis).Normalize()
}

// computeFrictionVectors builds a right-handed tangent basis (t1, t2)
// orthogonal to normal from the relative velocity deltaVelocity at a
// contact, falling back to an arbitrary orthogonal vector when the
// tangential component is too small to normalize.
func computeFrictionVectors(deltaVelocity, normal mgl64.Vec3) (t1, t2 mgl64.Vec3) {
	normalVelocity := normal.Mul(deltaVelocity.Dot(normal))
	tangentVelocity := deltaVelocity.Sub(normalVelocity)

	if length := tangentVelocity.Len(); length > machineEpsilon {
		t1 = tangentVelocity.Mul(1.0 / length)
	} else {
		t1 = oneUnitOrthogonalVector(normal)
	}

	t2 = normal.Cross(t1).Normalize()
	return t1, t2
}
