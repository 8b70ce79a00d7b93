// Package main implements txtool, a command line tool that decodes, resolves and announces catapult transactions.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"
)

// command is a sub command of the tool.
type command struct {
	name        string
	description string
	// define registers the flags of the command and returns the function that executes it.
	define func(flags *flag.FlagSet) func(ctx context.Context, container *dig.Container, out io.Writer) error
}

var commands = []command{
	{name: "decode", description: "decode hex encoded transaction payloads", define: decodeCommand},
	{name: "resolve", description: "resolve the aliases of a confirmed transaction", define: resolveCommand},
	{name: "announce", description: "announce a signed transaction payload", define: announceCommand},
	{name: "listen", description: "print the blocks and confirmed transactions of an account", define: listenCommand},
	{name: "network", description: "display the network of the node", define: networkCommand},
	{name: "deadline", description: "compute the deadline of a new transaction", define: deadlineCommand},
	{name: "restrictions", description: "display the restrictions of an account", define: restrictionsCommand},
	{name: "accounts", description: "search the accounts of the node", define: accountsCommand},
	{name: "duration", description: "parse server durations like 1615853185s", define: durationCommand},
}

func main() {
	if len(os.Args) < 2 {
		printUsage(nil)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "ERROR:\n  %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, name string, args []string, out io.Writer) error {
	if name == "help" || name == "-h" || name == "--help" {
		printUsage(nil)
		return nil
	}

	cmd, exists := findCommand(name)
	if !exists {
		printUsage(nil)
		return errors.Errorf("unknown command %s", name)
	}

	flags := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	flags.Usage = func() { printUsage(flags) }
	settings := newConfigFlags(flags)
	execute := cmd.define(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}

	config, err := loadConfig(settings)
	if err != nil {
		return err
	}

	container, err := newContainer(config)
	if err != nil {
		return err
	}

	return execute(ctx, container, out)
}

func findCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}

	return command{}, false
}

func printUsage(flags *flag.FlagSet, optionalErrorMessage ...string) {
	if len(optionalErrorMessage) >= 1 {
		_, _ = fmt.Fprintf(os.Stderr, "\n")
		_, _ = fmt.Fprintf(os.Stderr, "ERROR:\n  %s\n", optionalErrorMessage[0])
	}

	if flags == nil {
		fmt.Println()
		fmt.Println("USAGE:")
		fmt.Println("  " + filepath.Base(os.Args[0]) + " [COMMAND] [OPTIONS]")
		fmt.Println()
		fmt.Println("COMMANDS:")
		for _, cmd := range commands {
			fmt.Println("  " + cmd.name)
			fmt.Println("        " + cmd.description)
		}
		fmt.Println("  help")
		fmt.Println("        display this help screen")

		return
	}

	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  " + filepath.Base(os.Args[0]) + " " + flags.Name() + " [OPTIONS]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flags.PrintDefaults()
}
