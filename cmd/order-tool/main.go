package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const usage = `usage: order-tool <command> [flags]

commands:
  check    validate JSON/JSONL orders, print canonical JSON, summary to stderr
  encode   validate and encode orders into the binary wire format
  decode   decode binary (or hex lines) into JSON
`

// CLI для подготовки и проверки тестовых заказов.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run — точка входа без глобального состояния; возвращает код выхода.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var cmd func(context.Context, []string, io.Reader, io.Writer, io.Writer) error
	switch args[0] {
	case "check":
		cmd = runCheck
	case "encode":
		cmd = runEncode
	case "decode":
		cmd = runDecode
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err := cmd(ctx, args[1:], stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
		return 1
	}
	return 0
}
