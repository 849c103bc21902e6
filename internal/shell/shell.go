// Package shell is the interactive front end of a network: one command per
// line, answers written as plain text.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dharmasatrya/flightscheduler/internal/network"
)

const DefaultPrompt = "User: "

type Shell struct {
	network *network.Network
	out     io.Writer
	prompt  string
}

func New(n *network.Network, out io.Writer) *Shell {
	return &Shell{
		network: n,
		out:     out,
		prompt:  DefaultPrompt,
	}
}

// SetPrompt replaces the prompt printed before each command.
func (s *Shell) SetPrompt(prompt string) {
	s.prompt = prompt
}

// Run executes commands read from in until EXIT, the end of input, or ctx
// is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, s.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		more := s.Execute(ctx, scanner.Text())
		fmt.Fprintln(s.out)
		if !more {
			return nil
		}
	}
}

// Execute runs one command line and reports whether the session goes on.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		s.println("Invalid command. Type 'help' for a list of commands.")
		return true
	}

	switch strings.ToUpper(args[0]) {
	case "FLIGHT":
		s.flight(args)
	case "FLIGHTS":
		s.flights()
	case "LOCATION":
		s.location(args)
	case "LOCATIONS":
		s.locations()
	case "TRAVEL":
		s.travel(ctx, args)
	case "SCHEDULE", "DEPARTURES", "ARRIVALS":
		s.board(args)
	case "HELP":
		s.help()
	case "EXIT":
		s.println("Application closed.")
		return false
	default:
		s.println("Invalid command. Type 'help' for a list of commands.")
	}
	return true
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// fail prints err as a sentence.
func (s *Shell) fail(err error) {
	s.println(sentence(err.Error()))
}

func sentence(msg string) string {
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func (s *Shell) help() {
	s.println(`FLIGHTS - list all available flights ordered by departure time, then departure location name
FLIGHT ADD <departure time> <from> <to> <capacity> - add a flight
FLIGHT IMPORT/EXPORT <filename> - import/export flights to csv file
FLIGHT <id> - view information about a flight (from->to, departure arrival times, current ticket price, capacity, passengers booked)
FLIGHT <id> BOOK <num> - book a number of passengers at the current ticket price; one if no number is given, and never more than the seats left
FLIGHT <id> REMOVE - remove a flight from the schedule
FLIGHT <id> RESET - reset the number of passengers booked to 0, and the ticket price to its original state

LOCATIONS - list all available locations in alphabetical order
LOCATION ADD <name> <lat> <long> <demand_coefficient> - add a location
LOCATION <name> - view details about a location (its name, coordinates, demand coefficient)
LOCATION IMPORT/EXPORT <filename> - import/export locations to csv file
SCHEDULE <location_name> - list all departing and arriving flights, in order of the time they arrive/depart
DEPARTURES <location_name> - list all departing flights, in order of departure time
ARRIVALS <location_name> - list all arriving flights, in order of arrival time

TRAVEL <from> <to> [sort] [n] - show the nth route between two locations with at most 3 stopovers, shortest overall duration first by default; n past the last route shows the last one

other orderings:
TRAVEL <from> <to> cost - minimum current cost
TRAVEL <from> <to> duration - minimum total duration
TRAVEL <from> <to> stopovers - minimum stopovers
TRAVEL <from> <to> layover - minimum layover time
TRAVEL <from> <to> flight_time - minimum flight time

HELP - outputs this help string.
EXIT - end the program.`)
}
