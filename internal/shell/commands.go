package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CommandKind identifies a slash command
type CommandKind string

const (
	// CommandNone marks free text that is not a slash command
	CommandNone       CommandKind = ""
	CommandHelp       CommandKind = "help"
	CommandStats      CommandKind = "stats"
	CommandFeedback   CommandKind = "feedback"
	CommandFrameworks CommandKind = "frameworks"
	CommandQuit       CommandKind = "quit"
)

// Rating bounds for /feedback
const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidRating  = fmt.Errorf("rating must be a number from %d to %d", MinRating, MaxRating)
)

// Command is a parsed slash command
type Command struct {
	Kind    CommandKind
	Rating  int
	Comment string
}

var commandAliases = map[string]CommandKind{
	"help":       CommandHelp,
	"?":          CommandHelp,
	"stats":      CommandStats,
	"feedback":   CommandFeedback,
	"frameworks": CommandFrameworks,
	"quit":       CommandQuit,
	"exit":       CommandQuit,
}

// commandHelp is shown by /help and used for completion, in display order
var commandHelp = []struct {
	Usage       string
	Description string
}{
	{"/help", "show this help"},
	{"/frameworks", "list supported frameworks"},
	{"/stats", "show command and feedback statistics for this session"},
	{"/feedback <1-5> [comment]", "rate the last project setup"},
	{"/quit", "leave Herbie (also /exit)"},
}

// ParseSlash parses one input line. Lines that do not start with "/" return
// a CommandNone command and no error.
func ParseSlash(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return Command{Kind: CommandNone}, nil
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: /", ErrUnknownCommand)
	}

	kind, ok := commandAliases[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("%w: /%s", ErrUnknownCommand, fields[0])
	}
	cmd := Command{Kind: kind}

	if kind == CommandFeedback {
		if len(fields) < 2 {
			return Command{}, ErrInvalidRating
		}
		rating, err := strconv.Atoi(fields[1])
		if err != nil || rating < MinRating || rating > MaxRating {
			return Command{}, ErrInvalidRating
		}
		cmd.Rating = rating
		cmd.Comment = strings.Join(fields[2:], " ")
	}
	return cmd, nil
}
