package heap

import (
	"os"
	"strings"
)

// RestartedEnv is set in the environment of a process started by ExecRestarter.
const RestartedEnv = "BLECONSOLE_RESTARTED"

// Restarted reports whether this process was started by a heap restart.
func Restarted() bool {
	return os.Getenv(RestartedEnv) == "1"
}

func restartEnv() []string {
	env := make([]string, 0, len(os.Environ())+1)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, RestartedEnv+"=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, RestartedEnv+"=1")
}
