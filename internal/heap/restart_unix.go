//go:build unix

package heap

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/rileyhilliard/bleconsole/internal/errors"
	"github.com/rileyhilliard/bleconsole/internal/logger"
)

// ExecRestarter replaces the process image with a fresh copy of the same
// binary and arguments. On success Restart never returns.
type ExecRestarter struct {
	Logger logger.Logger
}

// Restart execs the current executable.
func (r ExecRestarter) Restart(reason string) error {
	exe, err := os.Executable()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrHeap,
			"Can't locate the running executable",
			"Restart bleconsole manually")
	}
	logger.OrDefault(r.Logger).Info("restarting %s: %s", exe, reason)
	if err := unix.Exec(exe, os.Args, restartEnv()); err != nil {
		return errors.WrapWithCode(err, errors.ErrHeap,
			"exec of "+exe+" failed",
			"Restart bleconsole manually")
	}
	return nil
}
