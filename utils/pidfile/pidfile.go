package pidfile

/**
 * pidfile.go - pid file guard
 */

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

/**
 * WritePidFile writes current pid to path. Fails if path
 * holds pid of another running process.
 */
func WritePidFile(path string) error {

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			return fmt.Errorf("could not parse pid file %s contents '%s': %w", path, string(data), err)
		}

		if pid != os.Getpid() && processAlive(pid) {
			return fmt.Errorf("process with pid %d is still running", pid)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0664)
}

/**
 * RemovePidFile removes path if it still holds our pid
 */
func RemovePidFile(path string) error {

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if strings.TrimSpace(string(data)) != strconv.Itoa(os.Getpid()) {
		return nil
	}

	return os.Remove(path)
}

func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
