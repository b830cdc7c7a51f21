//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos)

package term

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

func openDevice(string) (tcell.Screen, error) {
	return nil, errors.New("tty devices are not supported on this platform")
}
