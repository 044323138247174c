package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeStep   Type = "step"
	TypeEnergy Type = "energy"
	TypeBlock  Type = "block"
	TypeSnooze Type = "snooze"
	TypeImport Type = "import"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

type DoneArgs struct {
	Target string
}

// StepArgs carries "step <target> <title...>": a micro-commitment toward the
// targeted task.
type StepArgs struct {
	Target string
	Title  string
}

type EnergyArgs struct {
	Level int
}

type BlockArgs struct {
	Title string
	Start string
	End   string
}

type SnoozeArgs struct {
	Target string
	For    string
}

// ImportArgs carries "import <path>": a YAML file of tasks and blocks.
type ImportArgs struct {
	Path string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Done   *DoneArgs
	Step   *StepArgs
	Energy *EnergyArgs
	Block  *BlockArgs
	Snooze *SnoozeArgs
	Import *ImportArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeStep:
		return parseStep(input, args)
	case TypeEnergy:
		return parseEnergy(input, args)
	case TypeBlock:
		return parseBlock(input, args)
	case TypeSnooze:
		return parseSnooze(input, args)
	case TypeImport:
		return parseImport(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a target"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: strings.ToLower(args[0])}}, nil
}

func parseStep(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "step requires target and title"}
	}
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "step requires a title"}
	}
	return Command{Type: TypeStep, Raw: raw, Step: &StepArgs{Target: strings.ToLower(args[0]), Title: title}}, nil
}

func parseEnergy(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "energy requires a level 1-5"}
	}
	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 || level > 5 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid energy level: %s", args[0])}
	}
	return Command{Type: TypeEnergy, Raw: raw, Energy: &EnergyArgs{Level: level}}, nil
}

// parseBlock accepts "block <title...> <start>-<end>" where the last argument
// looks like "09:00AM-10:30AM".
func parseBlock(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "block requires title and a start-end range"}
	}
	span := args[len(args)-1]
	start, end, ok := strings.Cut(span, "-")
	if !ok || start == "" || end == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid time range: %s", span)}
	}
	title := strings.TrimSpace(strings.Join(args[:len(args)-1], " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "block requires a title"}
	}
	return Command{Type: TypeBlock, Raw: raw, Block: &BlockArgs{Title: title, Start: expandClock(start), End: expandClock(end)}}, nil
}

func parseSnooze(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "snooze requires target and duration"}
	}
	return Command{Type: TypeSnooze, Raw: raw, Snooze: &SnoozeArgs{Target: strings.ToLower(args[0]), For: strings.Join(args[1:], " ")}}, nil
}

func parseImport(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "import requires a file path"}
	}
	path := strings.TrimSpace(strings.Join(args, " "))
	if path == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "import requires a file path"}
	}
	return Command{Type: TypeImport, Raw: raw, Import: &ImportArgs{Path: path}}, nil
}

// expandClock turns "09:00AM" into "09:00 AM"; already-spaced input passes
// through untouched.
func expandClock(s string) string {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(upper, suffix) && !strings.HasSuffix(upper, " "+suffix) {
			return strings.TrimSpace(s[:len(s)-2]) + " " + suffix
		}
	}
	return s
}
