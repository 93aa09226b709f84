package executor

import (
	"fmt"
	"os"
)

// InDir runs fn with the process working directory set to dir and restores the
// previous directory afterwards, including when fn panics.
// Nothing in herbie calls it: Run and Track pass directories through cmd.Dir
// and never touch the process directory. It is the scoped form for code that has
// to change cwd.
func InDir(dir string, fn func() error) (err error) {
	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to read working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to enter %s: %w", dir, err)
	}
	defer func() {
		if cerr := os.Chdir(prev); cerr != nil && err == nil {
			err = fmt.Errorf("failed to restore working directory %s: %w", prev, cerr)
		}
	}()
	return fn()
}
