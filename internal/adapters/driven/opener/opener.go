// Package opener opens files with the desktop's default application.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

// Ensure Opener implements the interface.
var _ driven.FileOpener = (*Opener)(nil)

// Opener launches an external program for a path without waiting for it.
type Opener struct {
	command []string
	start   func(*exec.Cmd) error
}

// New creates an opener. An empty command uses the platform default
// (xdg-open, open or rundll32). A command may carry arguments; the path is
// appended as the last one.
func New(command string) *Opener {
	return &Opener{
		command: strings.Fields(command),
		start:   (*exec.Cmd).Start,
	}
}

// Open starts the program for path and returns once it is running.
func (o *Opener) Open(path string) error {
	if path == "" {
		return fmt.Errorf("open: empty path: %w", domain.ErrInvalidInput)
	}

	cmd, err := o.cmd(path)
	if err != nil {
		return err
	}

	logger.Debug("Opening %s with %s", path, cmd.Path)
	if err := o.start(cmd); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	// Reap the child so it does not linger as a zombie.
	if cmd.Process != nil {
		go func() { _ = cmd.Wait() }()
	}
	return nil
}

func (o *Opener) cmd(path string) (*exec.Cmd, error) {
	if len(o.command) > 0 {
		args := append(append([]string(nil), o.command[1:]...), path)
		return exec.Command(o.command[0], args...), nil
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", path), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
