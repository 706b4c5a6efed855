//go:build !unix

package heap

import (
	"os"
	"os/exec"

	"github.com/rileyhilliard/bleconsole/internal/errors"
	"github.com/rileyhilliard/bleconsole/internal/logger"
)

// ExecRestarter starts a fresh copy of the binary and exits the current one.
type ExecRestarter struct {
	Logger logger.Logger
}

// Restart spawns the current executable and exits.
func (r ExecRestarter) Restart(reason string) error {
	exe, err := os.Executable()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrHeap,
			"Can't locate the running executable",
			"Restart bleconsole manually")
	}
	logger.OrDefault(r.Logger).Info("restarting %s: %s", exe, reason)
	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = restartEnv()
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Start(); err != nil {
		return errors.WrapWithCode(err, errors.ErrHeap,
			"spawn of "+exe+" failed",
			"Restart bleconsole manually")
	}
	os.Exit(0)
	return nil
}
