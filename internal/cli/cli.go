package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandRun        Command = "run"
	CommandStatus     Command = "status"
	CommandToggle     Command = "toggle"
	CommandForce      Command = "force"
	CommandUndo       Command = "undo"
	CommandAddWord    Command = "add-word"
	CommandRemoveWord Command = "remove-word"
	CommandWords      Command = "words"
	CommandStats      Command = "stats"
	CommandDoctor     Command = "doctor"
	CommandVersion    Command = "version"
	CommandHelp       Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandRun:        {},
	CommandStatus:     {},
	CommandToggle:     {},
	CommandForce:      {},
	CommandUndo:       {},
	CommandAddWord:    {},
	CommandRemoveWord: {},
	CommandWords:      {},
	CommandStats:      {},
	CommandDoctor:     {},
	CommandVersion:    {},
	CommandHelp:       {},
}

type Parsed struct {
	Command    Command
	ConfigPath string
	Word       string
	Language   string
	ShowHelp   bool
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	i := 0
	for ; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "--config":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			parsed.ConfigPath = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp
			rest := args[i+1:]
			if err := applyArguments(&parsed, rest); err != nil {
				return Parsed{}, err
			}
			return parsed, nil
		}
	}

	return parsed, nil
}

// applyArguments consumes positional arguments following the command token.
func applyArguments(parsed *Parsed, rest []string) error {
	switch parsed.Command {
	case CommandAddWord, CommandRemoveWord:
		if len(rest) != 2 {
			return fmt.Errorf("%s requires exactly two arguments: WORD LANG", parsed.Command)
		}
		parsed.Word = rest[0]
		parsed.Language = rest[1]
	case CommandWords:
		if len(rest) > 1 {
			return fmt.Errorf("words accepts at most one argument: LANG")
		}
		if len(rest) == 1 {
			parsed.Language = rest[0]
		}
	default:
		if len(rest) != 0 {
			return fmt.Errorf("unexpected arguments after command %q", parsed.Command)
		}
	}
	return nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] <command>

Commands:
  run                     Run the correction daemon in the foreground
  status                  Print daemon state and auto-correct mode
  toggle                  Pause or resume automatic correction
  force                   Remap the current word regardless of dictionaries
  undo                    Revert the most recent correction
  add-word WORD LANG      Add a word to the user dictionary (lang: ru or en)
  remove-word WORD LANG   Remove a word from the user dictionary
  words [LANG]            List learned user words
  stats                   Print dictionary statistics
  doctor                  Run configuration and environment checks
  version                 Print version information
  help                    Show this help

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/relayout/config.conf)
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
