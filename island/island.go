// Package island groups bodies and the contact manifolds between them into
// disjoint islands, so the solver's caller can solve separate islands in
// parallel (spec.md §5: "different islands may be solved in parallel by the
// caller because islands are disjoint sets of bodies"). Construction itself
// is upstream of the solver's §1 scope boundary, but a complete repository
// needs some producer of islands to exercise the solver end to end.
package island

import (
	"sort"

	"github.com/briandl2000/reactphysics3d/body"
	"github.com/briandl2000/reactphysics3d/contact"
)

// Table is the island collaborator of spec.md §6: for each island, the body
// entities it contains and the start/count of its slice of the global
// manifold array.
type Table struct {
	BodyEntities   [][]body.Entity
	ManifoldStart  []int
	ManifoldCount  []int
}

// NbIslands returns the number of islands in the table.
func (t *Table) NbIslands() int {
	return len(t.ManifoldStart)
}

// ManifoldRange returns the [start, start+count) slice of the global
// manifold array belonging to island islandIndex.
func (t *Table) ManifoldRange(islandIndex int) (start, count int) {
	return t.ManifoldStart[islandIndex], t.ManifoldCount[islandIndex]
}

// unionFind is a standard disjoint-set structure over body rows.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// Build groups manifolds into islands by connected-component union-find
// over the bodies they reference, and sorts each island's manifolds into
// contiguous ranges of a reordered manifold slice. It requires manifolds to
// already be ordered as the caller wants within an island (spec.md §5:
// "manifolds are processed in the order they appear in the external
// manifold array") — Build only partitions, it never reorders manifolds
// relative to each other within an island.
//
// bodyRow resolves a body.Entity to a dense row index (e.g. body.Components.Index),
// used only to build the union-find; the returned Table still refers to
// manifolds by entity, not by row.
func Build(manifolds []contact.Manifold, bodyRow func(body.Entity) (int, bool), nbBodies int) (*Table, []contact.Manifold) {
	if len(manifolds) == 0 {
		return &Table{}, manifolds
	}

	uf := newUnionFind(nbBodies)
	for _, m := range manifolds {
		r1, ok1 := bodyRow(m.BodyEntity1)
		r2, ok2 := bodyRow(m.BodyEntity2)
		if ok1 && ok2 {
			uf.union(r1, r2)
		}
	}

	// Group manifold indices by their island root.
	rootOfManifold := make([]int, len(manifolds))
	islandOfRoot := make(map[int]int)
	var order []int

	for i, m := range manifolds {
		root := -1
		if r1, ok := bodyRow(m.BodyEntity1); ok {
			root = uf.find(r1)
		} else if r2, ok := bodyRow(m.BodyEntity2); ok {
			root = uf.find(r2)
		}
		rootOfManifold[i] = root

		if _, seen := islandOfRoot[root]; !seen {
			islandOfRoot[root] = len(islandOfRoot)
			order = append(order, root)
		}
	}

	sort.Ints(order) // deterministic island ordering across runs

	nbIslands := len(order)
	islandIndexOfRoot := make(map[int]int, nbIslands)
	for idx, root := range order {
		islandIndexOfRoot[root] = idx
	}

	reordered := make([]contact.Manifold, 0, len(manifolds))
	bucketed := make([][]contact.Manifold, nbIslands)
	bodySets := make([]map[body.Entity]struct{}, nbIslands)
	for i := range bodySets {
		bodySets[i] = make(map[body.Entity]struct{})
	}

	for i, m := range manifolds {
		islandIdx := islandIndexOfRoot[rootOfManifold[i]]
		bucketed[islandIdx] = append(bucketed[islandIdx], m)
		bodySets[islandIdx][m.BodyEntity1] = struct{}{}
		bodySets[islandIdx][m.BodyEntity2] = struct{}{}
	}

	table := &Table{
		BodyEntities:  make([][]body.Entity, nbIslands),
		ManifoldStart: make([]int, nbIslands),
		ManifoldCount: make([]int, nbIslands),
	}

	for i := 0; i < nbIslands; i++ {
		table.ManifoldStart[i] = len(reordered)
		table.ManifoldCount[i] = len(bucketed[i])
		reordered = append(reordered, bucketed[i]...)

		entities := make([]body.Entity, 0, len(bodySets[i]))
		for e := range bodySets[i] {
			entities = append(entities, e)
		}
		table.BodyEntities[i] = entities
	}

	return table, reordered
}
