package updater

import (
	"context"
	"fmt"
	"os"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/discord-updater/internal/logger"
)

// appProcessName is the executable name of the running desktop app.
const appProcessName = "Discord"

// terminateRunning kills running app processes before extraction so the
// resource tree is not replaced under a live process. Opt-in via the
// --terminate flag.
func (r *runner) terminateRunning(ctx context.Context) error {
	processList, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		processID := process.Pid()
		if processID == thisProcessID {
			continue
		}

		if process.Executable() != appProcessName {
			continue
		}

		var runningProcess *os.Process

		runningProcess, err = os.FindProcess(processID)
		if err != nil {
			return fmt.Errorf("find process %d: %w", processID, err)
		}

		if err = runningProcess.Kill(); err != nil {
			return fmt.Errorf("kill process %d: %w", processID, err)
		}

		logger.InfoKV(ctx, "Terminated running process", "pid", processID)
	}

	return nil
}
