package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface - команды, которые нужны циклу оболочки.
// Реальная реализация - shellApp, в тестах используется заглушка.
type execIface interface {
	loggedIn() bool
	status() string
	// takeNotice возвращает и сбрасывает уведомление о принудительном выходе
	takeNotice() string

	register(ctx context.Context) error
	login(ctx context.Context) error
	logout(ctx context.Context) error
	whoami(ctx context.Context) error

	list(ctx context.Context) error
	show(ctx context.Context, args []string) error
	create(ctx context.Context) error
	edit(ctx context.Context, args []string) error
	remove(ctx context.Context, args []string) error
	share(ctx context.Context, args []string, isPublic bool) error

	publicList(ctx context.Context) error
	publicGet(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Команды: register, login, public, open <id>, help, exit"
	helpLoggedIn  = "Команды: (l)ist, show <id>, new, edit <id>, delete <id>, share <id>, unshare <id>, public, open <id>, whoami, logout, help, exit"
)

// runREPL читает команды построчно до EOF, exit или отмены ctx.
// Ошибка команды печатается, оболочка продолжает работу.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner, out io.Writer, printErr func(error)) {
	for {
		if notice := a.takeNotice(); notice != "" {
			fmt.Fprintln(out, notice)
		}

		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(out, "notes [%s]> ", a.status())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help", "?":
			if a.loggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}

		case "register":
			err = a.register(ctx)

		case "login":
			err = a.login(ctx)

		case "public":
			err = a.publicList(ctx)

		case "open":
			err = a.publicGet(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			if !a.loggedIn() {
				fmt.Fprintln(out, "Неизвестная команда или нужен вход:", cmd)
				continue
			}
			err = dispatchAuthenticated(ctx, a, cmd, args, out)
		}

		if err != nil {
			printErr(err)
		}
	}
}

func dispatchAuthenticated(ctx context.Context, a execIface, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "l", "list":
		return a.list(ctx)
	case "show":
		return a.show(ctx, args)
	case "new", "create":
		return a.create(ctx)
	case "edit", "update":
		return a.edit(ctx, args)
	case "delete", "rm":
		return a.remove(ctx, args)
	case "share":
		return a.share(ctx, args, true)
	case "unshare":
		return a.share(ctx, args, false)
	case "whoami":
		return a.whoami(ctx)
	case "logout":
		return a.logout(ctx)
	default:
		fmt.Fprintln(out, "Неизвестная команда:", cmd)
		return nil
	}
}
