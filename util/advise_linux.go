//go:build linux

package util

import (
	"log"
	"os"

	"golang.org/x/sys/unix"
)

// whole file, front to back
func advise_sequential(f *os.File) {
	err := unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
	if err != nil && err != unix.ESPIPE {
		log.Printf("fadvise %s: %s\n", f.Name(), err)
	}
}
