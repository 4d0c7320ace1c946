package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"elevatorbank/logger"
	"elevatorbank/types"
)

const PROMPT = "> "

var Log = logger.GetLogger()

var (
	errUnknownCommand = errors.New("unknown command, try again")
	errUsage          = errors.New("wrong arguments")
)

type Dispatcher interface {
	AssignRequest(floor int, dirn types.Dirn) (int, error)
	RequestFloor(id int, floor int) error
	Statuses() []types.Status
}

/*
 * Line based control of the fleet:
 *   U <floor>             up call
 *   D <floor>             down call
 *   F <floor> [elevator]  cab call, elevator 0 by default
 *   S                     status of every elevator
 *   Q                     quit
 * Commands are case insensitive. Returns when Q is read or in is exhausted.
 */
func Run(in io.Reader, out io.Writer, dispatcher Dispatcher) error {
	printUsage(out)

	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		command := strings.ToUpper(fields[0])
		if command == "Q" {
			return nil
		}

		err := execute(command, fields[1:], out, dispatcher)
		if err != nil {
			Log.Debug().Err(err).Str("command", scanner.Text()).Msg("Command failed")
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func execute(command string, args []string, out io.Writer, dispatcher Dispatcher) error {
	switch command {
	case "U", "D":
		if len(args) != 1 {
			return fmt.Errorf("%w: usage %s <floor>", errUsage, command)
		}

		floor, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: floor %q is not a number", errUsage, args[0])
		}

		dirn, _ := types.ParseDirn(command)

		id, err := dispatcher.AssignRequest(floor, dirn)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "elevator %d takes the %v call at floor %d\n", id, dirn, floor)

	case "F":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("%w: usage F <floor> [elevator]", errUsage)
		}

		floor, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: floor %q is not a number", errUsage, args[0])
		}

		id := 0
		if len(args) == 2 {
			id, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: elevator %q is not a number", errUsage, args[1])
			}
		}

		err = dispatcher.RequestFloor(id, floor)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "elevator %d will stop at floor %d\n", id, floor)

	case "S":
		for _, status := range dispatcher.Statuses() {
			fmt.Fprintln(out, status)
		}

	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, command)
	}

	return nil
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "===== Elevator control =====")
	fmt.Fprintln(out, "U <floor>             up call")
	fmt.Fprintln(out, "D <floor>             down call")
	fmt.Fprintln(out, "F <floor> [elevator]  cab call")
	fmt.Fprintln(out, "S                     status")
	fmt.Fprintln(out, "Q                     quit")
}
