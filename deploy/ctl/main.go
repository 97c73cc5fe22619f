package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"ravem-box/adapter/prompt"
	"ravem-box/adapter/uds"
	"ravem-box/business/usecase"
)

const (
	defaultSocket = "/tmp/ravem-box.sock"
	usage         = `Usage: ravemctl [flags] <command> [room]

Commands:
  list            list rooms with their state
  status ROOM     show the state and tooltip of a room
  click ROOM      connect or disconnect a room
  refresh ROOM    query the room status again (leaves error states)

Flags:
`
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("ravemctl", pflag.ContinueOnError)
	socket := flags.StringP("socket", "s", envOr("RAVEM_BOX_SOCKET", defaultSocket), "back-end command socket")
	yes := flags.BoolP("yes", "y", false, "answer yes to every confirmation")
	no := flags.BoolP("no", "n", false, "answer no to every confirmation")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if *yes && *no {
		fmt.Fprintln(os.Stderr, "--yes and --no are mutually exclusive")
		return 2
	}

	command, err := buildCommand(flags.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flags.Usage()
		return 2
	}

	var p usecase.Prompter = prompt.NewTerminal(os.Stdin, os.Stdout)
	switch {
	case *yes:
		p = prompt.Always
	case *no:
		p = prompt.Never
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := uds.NewUDSClient(&uds.ClientConfig{SocketPath: *socket})
	result, err := client.Do(ctx, command, p, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if len(result) != 0 {
		fmt.Println(result)
	}

	return 0
}

func buildCommand(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing command")
	}

	cmd := strings.ToLower(args[0])
	room := strings.Join(args[1:], " ")

	switch cmd {
	case uds.CmdList:
		return cmd, nil
	case uds.CmdStatus, uds.CmdClick, uds.CmdRefresh:
		if len(room) == 0 {
			return "", fmt.Errorf("%s needs a room name", cmd)
		}
		return cmd + " " + room, nil
	default:
		return "", fmt.Errorf("unknown command %q", cmd)
	}
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && len(v) != 0 {
		return v
	}
	return def
}
