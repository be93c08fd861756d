//go:build linux || solaris || aix

package eunix

import "golang.org/x/sys/unix"

const (
	getAttrIOCTL    = unix.TCGETS
	setAttrNowIOCTL = unix.TCSETS
)
