// Command solverbench drives the contact solver over a synthetic stack of
// boxes resting on a static plane, for profiling and rough throughput
// measurement. It builds no collision geometry of its own: the contact
// manifolds are authored directly, since narrow-phase collision detection
// is out of this repository's scope.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/profile"

	"github.com/briandl2000/reactphysics3d/body"
	"github.com/briandl2000/reactphysics3d/collider"
	"github.com/briandl2000/reactphysics3d/contact"
	"github.com/briandl2000/reactphysics3d/memory"
	"github.com/briandl2000/reactphysics3d/solver"
)

func main() {
	nbBoxes := flag.Int("boxes", 32, "number of stacked boxes")
	steps := flag.Int("steps", 600, "number of physics steps to simulate")
	iterations := flag.Int("iterations", 8, "velocity iterations per step")
	cpuProfile := flag.Bool("profile", false, "write a CPU profile to ./cpu.pprof")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	bodies, colliders, manifolds, points := buildStack(*nbBoxes)
	arena := memory.New()
	sys := solver.NewSystem(arena, bodies, colliders, solver.DefaultConfig())

	const dt = 1.0 / 60.0
	start := time.Now()

	for step := 0; step < *steps; step++ {
		sys.Init(manifolds, points, dt)
		for i := 0; i < *iterations; i++ {
			sys.Solve()
		}
		sys.StoreImpulses()
		sys.Reset()
	}

	elapsed := time.Since(start)
	logger.Info("solverbench done",
		"boxes", *nbBoxes,
		"manifolds", len(manifolds),
		"steps", *steps,
		"iterations", *iterations,
		"elapsed", elapsed,
		"stepsPerSecond", float64(*steps)/elapsed.Seconds(),
	)
	fmt.Printf("%d boxes, %d steps x %d iterations in %s (%.0f steps/s)\n",
		*nbBoxes, *steps, *iterations, elapsed, float64(*steps)/elapsed.Seconds())
}

// buildStack authors nbBoxes unit boxes stacked directly on top of one
// another above a static ground plane, each touching its neighbor with a
// single-point manifold (a stand-in for the 4-point face contact a real
// box/box collision would generate, sufficient to exercise the solver's
// island of coupled bodies).
func buildStack(nbBoxes int) (*body.Components, *collider.Components, []contact.Manifold, []contact.Point) {
	bodies := body.NewComponents()
	colliders := collider.NewComponents()

	groundEntity := body.Entity(1)
	bodies.Add(groundEntity, body.Static, 0, mgl64.Mat3{}, mgl64.Vec3{}, mgl64.QuatIdent())
	groundCollider := colliders.Add(groundEntity,
		collider.Transform{Position: mgl64.Vec3{0, 0, 0}, Rotation: mgl64.QuatIdent()},
		collider.Material{Bounciness: 0, Friction: 0.4, RollingResistance: 0.01})

	boxInertia := mgl64.Mat3{6, 0, 0, 0, 6, 0, 0, 0, 6} // inverse inertia of a unit-mass unit cube, roughly
	prevEntity := groundEntity
	prevCollider := groundCollider
	prevHeight := 0.0 // ground's collider sits at world y=0

	var manifolds []contact.Manifold
	var points []contact.Point

	for i := 0; i < nbBoxes; i++ {
		entity := body.Entity(i + 2)
		height := float64(i) + 0.5
		bodies.Add(entity, body.Dynamic, 1.0, boxInertia, mgl64.Vec3{0, height, 0}, mgl64.QuatIdent())
		colliderIdx := colliders.Add(entity,
			collider.Transform{Position: mgl64.Vec3{0, height, 0}, Rotation: mgl64.QuatIdent()},
			collider.Material{Bounciness: 0, Friction: 0.4, RollingResistance: 0.01})

		contactY := height - 0.5 // the current box's bottom face, touching prevEntity's top face
		points = append(points, contact.Point{
			LocalPointOnShape1: mgl64.Vec3{0, contactY - prevHeight, 0},
			LocalPointOnShape2: mgl64.Vec3{0, -0.5, 0},
			Normal:             mgl64.Vec3{0, 1, 0},
			PenetrationDepth:   0.001,
			IsRestingContact:   true,
		})
		manifolds = append(manifolds, contact.Manifold{
			BodyEntity1:    prevEntity,
			BodyEntity2:    entity,
			ColliderIndex1: prevCollider,
			ColliderIndex2: colliderIdx,
			PointsIndex:    len(points) - 1,
			NbPoints:       1,
		})

		prevEntity = entity
		prevCollider = colliderIdx
		prevHeight = height
	}

	return bodies, colliders, manifolds, points
}
