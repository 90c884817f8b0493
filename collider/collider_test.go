package collider_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/briandl2000/reactphysics3d/body"
	"github.com/briandl2000/reactphysics3d/collider"
)

func TestLocalToWorldPoint(t *testing.T) {
	c := collider.NewComponents()
	tr := collider.Transform{
		Position: mgl64.Vec3{1, 2, 3},
		Rotation: mgl64.QuatIdent(),
	}
	idx := c.Add(body.Entity(1), tr, collider.Material{})

	got := c.LocalToWorldPoint(idx, mgl64.Vec3{1, 0, 0})
	require.Equal(t, mgl64.Vec3{2, 2, 3}, got)
}

func TestMixedFrictionGeometricMean(t *testing.T) {
	a := collider.Material{Friction: 0.4}
	b := collider.Material{Friction: 0.9}
	got := collider.MixedFriction(a, b)
	require.InDelta(t, math.Sqrt(0.36), got, 1e-9)
}

func TestMixedRollingResistanceAverage(t *testing.T) {
	a := collider.Material{RollingResistance: 0.1}
	b := collider.Material{RollingResistance: 0.3}
	require.InDelta(t, 0.2, collider.MixedRollingResistance(a, b), 1e-9)
}

func TestMixedRestitutionIsMax(t *testing.T) {
	a := collider.Material{Bounciness: 0.2}
	b := collider.Material{Bounciness: 0.8}
	require.Equal(t, 0.8, collider.MixedRestitution(a, b))
}
