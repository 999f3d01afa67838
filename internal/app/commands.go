package app

import (
	"fmt"
	"os"
	"strings"

	"go.spur.run/spur/internal/core/domain"
	"go.trai.ch/zerr"
)

// collectCommands turns the positional arguments into the command list.
// An argument naming a regular file is read as a script; anything else is
// a command string itself. Order is preserved across both kinds.
func (a *App) collectCommands(args []string, settings runSettings) ([]domain.Command, error) {
	var commands []domain.Command

	for _, arg := range args {
		lines, isScript, err := readScript(arg)
		if err != nil {
			return nil, err
		}

		if !isScript {
			commands = append(commands, buildCommand(arg, settings))
			continue
		}

		a.logger.Info(fmt.Sprintf("read %d command(s) from %s", len(lines), arg))
		for _, line := range lines {
			commands = append(commands, buildCommand(line, settings))
		}
	}

	return commands, nil
}

// readScript returns the commands contained in arg when it names a
// regular file. Blank lines and # comments are skipped.
func readScript(arg string) ([]string, bool, error) {
	info, err := os.Stat(arg)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false, nil
	}

	data, err := os.ReadFile(arg) // #nosec G304 -- the user named this file on the command line
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrScriptReadFailed.Error()), "path", arg)
	}

	var lines []string
	for line := range strings.SplitSeq(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, true, nil
}

// buildCommand makes a runnable command from one piece of user input.
func buildCommand(text string, settings runSettings) domain.Command {
	command := domain.NewCommand(text)
	command.Shell = settings.shell
	return command
}
