package util

import (
	"fmt"
	"os"
	"reflect"
)

func VerifyChecksum(sentCheck []byte, calcdCheck []byte) error {
	if reflect.DeepEqual(calcdCheck, sentCheck) {
		return nil
	} else {
		return fmt.Errorf("checksum mismatch")
	}
}

// Open_input opens the text source named on the command line.
// "-" stands for standard input, which is returned as is and must not be closed by the caller.
func Open_input(file_name string) (*os.File, error) {
	if file_name == "-" {
		return os.Stdin, nil
	}

	f, err := os.Open(file_name)
	if err != nil {
		return nil, err
	}

	f_info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if f_info.IsDir() {
		f.Close()
		return nil, &os.PathError{Op: "read", Path: file_name, Err: fmt.Errorf("is a directory")}
	}

	advise_sequential(f)
	return f, nil
}
