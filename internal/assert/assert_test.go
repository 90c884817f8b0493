package assert_test

import (
	"testing"

	"github.com/briandl2000/reactphysics3d/internal/assert"
)

// Without the solverdebug build tag, a failed assertion must never panic —
// the release build's contract (spec.md §4.5) is that caller violations are
// undefined, not fatal.
func TestThatIsNoopInReleaseBuild(t *testing.T) {
	assert.That(false, "this must not panic: %d", 42)
}

func TestThatPassingConditionNeverPanics(t *testing.T) {
	assert.That(true, "unreachable")
}
