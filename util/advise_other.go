//go:build !linux

package util

import "os"

func advise_sequential(f *os.File) {}
