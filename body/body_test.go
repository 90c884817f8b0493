package body_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/briandl2000/reactphysics3d/body"
)

func TestAddIndexRemove(t *testing.T) {
	c := body.NewComponents()

	e1 := body.Entity(1)
	e2 := body.Entity(2)
	e3 := body.Entity(3)

	c.Add(e1, body.Dynamic, 1.0, mgl64.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}, mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent())
	c.Add(e2, body.Dynamic, 0.5, mgl64.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.QuatIdent())
	c.Add(e3, body.Static, 0, mgl64.Mat3{}, mgl64.Vec3{2, 0, 0}, mgl64.QuatIdent())

	require.Equal(t, 3, c.Len())

	idx2, ok := c.Index(e2)
	require.True(t, ok)
	require.Equal(t, mgl64.Vec3{1, 0, 0}, c.CentersOfMassWorld[idx2])

	c.Remove(e1)
	require.Equal(t, 2, c.Len())

	idx2After, ok := c.Index(e2)
	require.True(t, ok)
	require.Equal(t, mgl64.Vec3{1, 0, 0}, c.CentersOfMassWorld[idx2After])

	_, ok = c.Index(e1)
	require.False(t, ok)
}

func TestWorldInverseInertiaTensorStaticIsZero(t *testing.T) {
	c := body.NewComponents()
	e := body.Entity(1)
	c.Add(e, body.Static, 0, mgl64.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}, mgl64.Vec3{}, mgl64.QuatIdent())

	row, _ := c.Index(e)
	got := c.WorldInverseInertiaTensor(row)
	require.Equal(t, mgl64.Mat3{}, got)
}

func TestWorldInverseInertiaTensorIdentityOrientation(t *testing.T) {
	c := body.NewComponents()
	e := body.Entity(1)
	local := mgl64.Mat3{2, 0, 0, 0, 3, 0, 0, 0, 4}
	c.Add(e, body.Dynamic, 1, local, mgl64.Vec3{}, mgl64.QuatIdent())

	row, _ := c.Index(e)
	got := c.WorldInverseInertiaTensor(row)
	for i := range got {
		require.InDelta(t, local[i], got[i], 1e-9)
	}
}

func TestWorldInverseInertiaTensorRotated(t *testing.T) {
	c := body.NewComponents()
	e := body.Entity(1)
	local := mgl64.Mat3{2, 0, 0, 0, 3, 0, 0, 0, 4}
	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	c.Add(e, body.Dynamic, 1, local, mgl64.Vec3{}, q)

	row, _ := c.Index(e)
	got := c.WorldInverseInertiaTensor(row)

	// A 90 degree rotation about Z swaps the X/Y principal inertias.
	require.InDelta(t, 3.0, got.At(0, 0), 1e-9)
	require.InDelta(t, 2.0, got.At(1, 1), 1e-9)
	require.InDelta(t, 4.0, got.At(2, 2), 1e-9)
}

func TestResetConstrainedVelocities(t *testing.T) {
	c := body.NewComponents()
	e := body.Entity(1)
	c.Add(e, body.Dynamic, 1, mgl64.Mat3{}, mgl64.Vec3{}, mgl64.QuatIdent())
	row, _ := c.Index(e)

	c.LinearVelocities[row] = mgl64.Vec3{1, 2, 3}
	c.AngularVelocities[row] = mgl64.Vec3{0.1, 0.2, 0.3}
	c.SplitLinearVelocities[row] = mgl64.Vec3{9, 9, 9}

	c.ResetConstrainedVelocities()

	require.Equal(t, mgl64.Vec3{1, 2, 3}, c.ConstrainedLinearVelocities[row])
	require.Equal(t, mgl64.Vec3{0.1, 0.2, 0.3}, c.ConstrainedAngularVelocities[row])
	require.Equal(t, mgl64.Vec3{}, c.SplitLinearVelocities[row])
	require.Equal(t, mgl64.Vec3{}, c.SplitAngularVelocities[row])
}
