package solver

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestComputeFrictionVectorsOrthonormalBasis(t *testing.T) {
	normal := mgl64.Vec3{0, 1, 0}
	deltaVelocity := mgl64.Vec3{3, -1, 0.5}

	t1, t2 := computeFrictionVectors(deltaVelocity, normal)

	require.InDelta(t, 1.0, t1.Len(), 1e-9)
	require.InDelta(t, 1.0, t2.Len(), 1e-9)
	require.InDelta(t, 0.0, t1.Dot(normal), 1e-9)
	require.InDelta(t, 0.0, t2.Dot(normal), 1e-9)
	require.InDelta(t, 0.0, t1.Dot(t2), 1e-9)

	// {t1, t2, normal} is right-handed: t1 x t2 == normal.
	cross := t1.Cross(t2)
	require.InDelta(t, normal[0], cross[0], 1e-9)
	require.InDelta(t, normal[1], cross[1], 1e-9)
	require.InDelta(t, normal[2], cross[2], 1e-9)
}

func TestComputeFrictionVectorsDegenerateFallsBackToOrthogonalVector(t *testing.T) {
	normal := mgl64.Vec3{0, 0, 1}
	// Relative velocity purely along the normal: no tangential component.
	deltaVelocity := mgl64.Vec3{0, 0, 4}

	t1, t2 := computeFrictionVectors(deltaVelocity, normal)

	require.InDelta(t, 1.0, t1.Len(), 1e-9)
	require.InDelta(t, 0.0, t1.Dot(normal), 1e-9)
	require.InDelta(t, 1.0, t2.Len(), 1e-9)
	require.InDelta(t, 0.0, t2.Dot(normal), 1e-9)
}

func TestOneUnitOrthogonalVectorForAxisAlignedNormals(t *testing.T) {
	normals := []mgl64.Vec3{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1},
	}

	for _, n := range normals {
		n := n.Normalize()
		ortho := oneUnitOrthogonalVector(n)
		require.InDelta(t, 1.0, ortho.Len(), 1e-9)
		require.InDelta(t, 0.0, ortho.Dot(n), 1e-9)
	}
}

func TestClampVec3PerAxisClampsComponentsIndependently(t *testing.T) {
	v := mgl64.Vec3{5, -5, 0.5}
	got := clampVec3PerAxis(v, 2)
	require.Equal(t, mgl64.Vec3{2, -2, 0.5}, got)
}

func TestClampScalar(t *testing.T) {
	require.Equal(t, 2.0, clampScalar(5, -2, 2))
	require.Equal(t, -2.0, clampScalar(-5, -2, 2))
	require.Equal(t, 0.3, clampScalar(0.3, -2, 2))
}

func TestAddMat3MatchesElementwiseSum(t *testing.T) {
	a := mgl64.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	b := mgl64.Mat3{9, 8, 7, 6, 5, 4, 3, 2, 1}
	got := addMat3(a, b)
	for i := range got {
		require.InDelta(t, 10.0, got[i], 1e-9)
	}
}

func TestMulElem(t *testing.T) {
	got := mulElem(mgl64.Vec3{2, 3, 4}, mgl64.Vec3{5, 0, 1})
	require.Equal(t, mgl64.Vec3{10, 0, 4}, got)
}

func TestMachineEpsilonIsTiny(t *testing.T) {
	require.True(t, machineEpsilon < 1e-6)
	require.True(t, math.Abs(machineEpsilon) > 0)
}
