package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printFn and printlnFn are test seams for REPL output.
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

// execIface is the command surface the REPL dispatches to. *App satisfies it.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Remove(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	Upload(ctx context.Context) error
	HashPassword(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit" or "quit". Handlers report their own errors, so returned errors
// are ignored here. Prompts inside handlers read from the same reader.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		printFn(promptFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := splitArgs(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: add, (l)ist, remove, clear, upload, status, logout, hash-password, exit")
			} else {
				printlnFn("Available commands: login, add, (l)ist, remove, clear, status, hash-password, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "add":
			_ = a.Add(ctx, args)

		case "l", "ls", "list":
			_ = a.List(ctx)

		case "rm", "remove":
			_ = a.Remove(ctx, args)

		case "clear":
			_ = a.Clear(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "hash-password":
			_ = a.HashPassword(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
