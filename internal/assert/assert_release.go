//go:build !solverdebug

package assert

func that(cond bool, msg string, args ...any) {}
