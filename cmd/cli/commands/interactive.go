package commands

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (open the store once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands against the same
working snapshot without reconnecting to the store or re-authenticating with Google.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\n🚀 Starting interactive session...")
			fmt.Fprintln(out, "Type 'help' for available commands, 'exit' or 'quit' to leave")

			return runSession(siblingCommands(cmd), cmd.InOrStdin(), out)
		},
	}
}

// siblingCommands returns the root's subcommands, excluding interactive itself
func siblingCommands(cmd *cobra.Command) map[string]*cobra.Command {
	commands := make(map[string]*cobra.Command)
	for _, subCmd := range cmd.Parent().Commands() {
		switch subCmd.Name() {
		case "interactive", "completion", "help":
			continue
		}
		commands[subCmd.Name()] = subCmd
	}
	return commands
}

// runSession reads command lines until exit or end of input. A failing command prints its
// error and the session carries on.
func runSession(commands map[string]*cobra.Command, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts, err := parseCommandLine(line)
		if err != nil {
			fmt.Fprintf(out, "❌ Error parsing command: %v\n\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}
		cmdName, cmdArgs := parts[0], parts[1:]

		switch cmdName {
		case "exit", "quit":
			fmt.Fprintln(out, "👋 Goodbye!")
			return nil
		case "help":
			printInteractiveHelp(out, commands)
			continue
		}

		targetCmd, exists := commands[cmdName]
		if !exists {
			fmt.Fprintf(out, "❌ Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
			continue
		}

		if err := runCommand(targetCmd, cmdArgs, out); err != nil {
			fmt.Fprintf(out, "❌ Error: %v\n\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// runCommand calls the command's RunE directly, bypassing Execute so PersistentPreRunE does not
// initialize the app again. Flags are reset to their defaults first.
func runCommand(targetCmd *cobra.Command, args []string, out io.Writer) error {
	targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})

	if err := targetCmd.ParseFlags(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	args = targetCmd.Flags().Args()

	if targetCmd.Args != nil {
		if err := targetCmd.Args(targetCmd, args); err != nil {
			return err
		}
	}

	targetCmd.SetOut(out)
	if targetCmd.RunE != nil {
		return targetCmd.RunE(targetCmd, args)
	}
	if targetCmd.Run != nil {
		targetCmd.Run(targetCmd, args)
	}
	return nil
}

func printInteractiveHelp(out io.Writer, commands map[string]*cobra.Command) {
	fmt.Fprintln(out, "\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(out, "  %-36s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Fprintf(out, "\n  %-36s %s\n", "help", "Show this help message")
	fmt.Fprintf(out, "  %-36s %s\n", "exit, quit", "Exit the interactive session")
}

// parseCommandLine splits a command line into arguments, respecting single and double quotes
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune // 0 outside quotes, otherwise the opening quote
	quoted := false  // the current argument had quotes, so "" yields an empty argument

	for _, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
			quoted = true
		case unicode.IsSpace(r):
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
				quoted = false
			}
		default:
			current.WriteRune(r)
		}
	}

	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", inQuote)
	}
	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}

	return args, nil
}
