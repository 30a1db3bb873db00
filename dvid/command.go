/*
	This file holds types and functions supporting positional command-line invocations.
*/

package dvid

import (
	"strconv"
	"strings"
)

// Command is a positional invocation.  The first item in the string slice is the
// program or command name and the rest are its arguments in order.
type Command []string

// String returns a space-separated command line
func (cmd Command) String() string {
	return strings.Join([]string(cmd), " ")
}

// Name returns the first argument which is assumed to be the name of the command.
func (cmd Command) Name() string {
	if len(cmd) == 0 {
		return ""
	}
	return cmd[0]
}

// NumArgs returns the number of arguments after the command name.
func (cmd Command) NumArgs() int {
	if len(cmd) == 0 {
		return 0
	}
	return len(cmd) - 1
}

// Argument returns the i-th argument after the command name, starting at 1,
// or the empty string if there are not that many arguments.
func (cmd Command) Argument(i int) string {
	if i < 1 || i >= len(cmd) {
		return ""
	}
	return cmd[i]
}

// CommandArgs sets a variadic argument set of string pointers to the command
// arguments.  If there aren't enough arguments to set a target, the target is
// set to the empty string.  It returns an 'overflow' slice that has all arguments
// beyond those needed for targets.
func (cmd Command) CommandArgs(targets ...*string) (overflow []string) {
	for _, target := range targets {
		*target = ""
	}
	if len(cmd) < 2 {
		return
	}
	for i, arg := range cmd[1:] {
		if i < len(targets) {
			*(targets[i]) = arg
		} else {
			overflow = append(overflow, arg)
		}
	}
	return
}

// ParseFlag01 parses a named argument that must be "0" or "1".
func ParseFlag01(name, s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, ArgumentError("%s must be 0 or 1, got %q", name, s)
	}
}

// ParsePositiveInt parses a named argument that must be an integer > 0.
func ParsePositiveInt(name, s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ArgumentError("%s must be a positive integer, got %q", name, s)
	}
	if i <= 0 {
		return 0, ArgumentError("%s must be a positive integer, got %d", name, i)
	}
	return i, nil
}

// ParseNonNegativeInt parses a named argument that must be an integer >= 0.
func ParseNonNegativeInt(name, s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ArgumentError("%s must be a non-negative integer, got %q", name, s)
	}
	if i < 0 {
		return 0, ArgumentError("%s must be a non-negative integer, got %d", name, i)
	}
	return i, nil
}
