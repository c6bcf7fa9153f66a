/*
Package main is the entry point for the roomchat terminal client.

It is responsible for loading configuration, initializing the global logging
system, resolving the participant's display name (interactively when needed),
wiring the session controller to the terminal view and the persisted identity
slot, and gracefully handling operating system interrupt signals so the
connection is closed exactly once on the way out.
*/
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"roomchat/internal/app/identity"
	"roomchat/internal/app/session"
	"roomchat/internal/app/termview"
	"roomchat/internal/configs"
	"roomchat/internal/pkg/errs"
	"roomchat/internal/pkg/logx"
	"roomchat/internal/pkg/randx"
)

func main() {
	// A .env file is optional; environment variables win when both exist.
	_ = godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("roomchat", flag.ContinueOnError)
	room := fs.StringP("room", "r", cfg.Room, "Room identifier to join")
	server := fs.StringP("server", "s", cfg.ServerURL, "Chat server WebSocket endpoint")
	name := fs.StringP("name", "n", cfg.DisplayName, "Display name")
	identityFile := fs.String("identity-file", cfg.IdentityFile, "Path of the persisted identity slot")
	verbose := fs.BoolP("verbose", "v", false, "Enable debug logging")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	logx.InitGlobalLogger(cfg.Environment == "development" || *verbose)

	if err := configs.ValidateServerURL(*server); err != nil {
		fatalUser(err)
	}

	displayName := strings.TrimSpace(*name)
	if displayName == "" {
		displayName, err = promptDisplayName()
		if err != nil {
			fatalUser(err)
		}
	}

	slotPath := *identityFile
	if slotPath == "" {
		slotPath, err = identity.DefaultPath()
		if err != nil {
			fatalUser(err)
		}
	}

	view := termview.New(os.Stdout)

	ctrl, err := session.New(session.Config{
		ServerURL:   *server,
		Room:        *room,
		DisplayName: displayName,
	}, session.Deps{
		Identity: identity.NewFileStore(slotPath),
		Renderer: view,
		Views:    view,
	})
	if err != nil {
		fatalUser(err)
	}

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ctrl.Connect(ctx); err != nil {
		fatalUser(err)
	}

	go func() {
		<-ctx.Done()
		ctrl.Close()
	}()

	go readInput(ctrl)

	// Run blocks until the connection ends or the session is closed. A dropped
	// connection is terminal; rejoining means starting the program again.
	ctrl.Run()

	logx.Info("Session ended.")
}

// fatalUser prints a user-facing message for fatal setup errors and exits.
func fatalUser(err error) {
	var customErr *errs.CustomError
	if errors.As(err, &customErr) {
		fmt.Fprintln(os.Stderr, customErr.Message)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

// promptDisplayName asks for a display name on the terminal, offering a random
// suggestion as the default. Without a terminal there is nobody to ask, so the
// missing name is a configuration error.
func promptDisplayName() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errs.NewError(errs.ErrDisplayNameRequired)
	}

	suggestion, err := randx.Nickname()
	if err != nil {
		suggestion = ""
	}

	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "Enter your username [%s]: ", suggestion)
	} else {
		fmt.Fprint(os.Stderr, "Enter your username: ")
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", errs.NewError(errs.ErrDisplayNameRequired)
	}

	displayName := strings.TrimSpace(line)
	if displayName == "" {
		displayName = suggestion
	}
	if displayName == "" {
		return "", errs.NewError(errs.ErrDisplayNameRequired)
	}

	return displayName, nil
}

// readInput feeds typed lines into the session until stdin or the session ends.
// Blank lines are suppressed by the controller itself.
func readInput(ctrl *session.Controller) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := ctrl.Send(scanner.Text()); err != nil {
			logx.Warn("Message not sent.", "error", err.Error())
			return
		}
	}
}
