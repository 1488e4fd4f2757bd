//go:build !okdebug

package framelog

const debugBuild = false

func debugBreak() {}
