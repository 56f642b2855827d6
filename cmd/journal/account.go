package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justestif/wellness-journal/internal/client"
	"github.com/justestif/wellness-journal/internal/journal"
)

var errNotLoggedIn = errors.New(`not logged in; run "journal login" first`)

// openSession builds a client for the configured server and restores any
// cached login.
func openSession(ctx context.Context, g *globals) (*client.Session, *client.Client, error) {
	cache := client.NewSessionCache(g.sessionPath)
	if g.sessionPath == "" {
		var err error
		if cache, err = client.DefaultSessionCache(); err != nil {
			return nil, nil, err
		}
	}

	c := client.New(g.serverURL)
	session := client.NewSession(c, cache)
	if _, err := session.Open(ctx); err != nil {
		return nil, nil, err
	}
	return session, c, nil
}

// requireSession is openSession for commands that need a logged-in user.
func requireSession(ctx context.Context, g *globals) (*client.Session, *client.Client, error) {
	session, c, err := openSession(ctx, g)
	if err != nil {
		return nil, nil, err
	}
	if !session.Authenticated() {
		return nil, nil, errNotLoggedIn
	}
	return session, c, nil
}

func registerCmd(g *globals) *cobra.Command {
	var in journal.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := openSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			if in.Password == "" {
				if in.Password, err = prompt(cmd, "Password: "); err != nil {
					return err
				}
			}

			user, err := session.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "Password (prompted when omitted)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}

func loginCmd(g *globals) *cobra.Command {
	var in journal.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := openSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			if in.Password == "" {
				if in.Password, err = prompt(cmd, "Password: "); err != nil {
					return err
				}
			}

			user, err := session.Login(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "Password (prompted when omitted)")
	cmd.MarkFlagRequired("email")

	return cmd
}

func logoutCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := openSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			if err := session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func whoamiCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			user := session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nMember since %s\n",
				user.Username, user.Email, user.CreatedAt.Local().Format("January 2, 2006"))
			return nil
		},
	}
}

// prompt reads one line from the command's input.
func prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
