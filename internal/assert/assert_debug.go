//go:build solverdebug

package assert

import "fmt"

func that(cond bool, msg string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(msg, args...))
	}
}
