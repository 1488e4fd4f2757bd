//go:build okdebug

package framelog

import "runtime"

const debugBuild = true

func debugBreak() {
	runtime.Breakpoint()
}
