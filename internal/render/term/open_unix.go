//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos

package term

import "github.com/gdamore/tcell/v2"

func openDevice(device string) (tcell.Screen, error) {
	tty, err := tcell.NewDevTtyFromDev(device)
	if err != nil {
		return nil, err
	}
	return tcell.NewTerminfoScreenFromTty(tty)
}
