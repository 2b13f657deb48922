package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addUserCommand() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "add-user",
		Short: "Create a user, or reset the password of an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = promptPassword(); err != nil {
					return err
				}
			}

			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			created, err := services.Users.CreateOrUpdate(ctx, username, password)
			if err != nil {
				return err
			}
			if created {
				fmt.Printf("User %s created\n", username)
			} else {
				fmt.Printf("Password for user %s updated\n", username)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username of the account")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func makeAdminCommand() *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "make-admin <username>",
		Short: "Grant or revoke admin rights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			if err := services.Users.SetAdmin(ctx, args[0], !remove); err != nil {
				return err
			}
			if remove {
				fmt.Printf("User %s is no longer an admin\n", args[0])
			} else {
				fmt.Printf("User %s is now an admin\n", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "revoke admin rights instead of granting them")
	return cmd
}

func setActiveCommand(use, short string, active bool, doneMsg string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			if err := services.Users.SetActive(ctx, args[0], active); err != nil {
				return err
			}
			fmt.Printf(doneMsg, args[0])
			return nil
		},
	}
}

func enableUserCommand() *cobra.Command {
	return setActiveCommand("enable-user <username>", "Enable a disabled account",
		true, "User %s enabled\n")
}

func disableUserCommand() *cobra.Command {
	return setActiveCommand("disable-user <username>", "Disable an account without deleting it",
		false, "User %s disabled\n")
}

func listUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-users",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			users, err := services.Users.List(ctx)
			if err != nil {
				return err
			}
			for _, u := range users {
				suffix := ""
				if u.Admin {
					suffix += " (admin)"
				}
				if !u.Active {
					suffix += " (disabled)"
				}
				fmt.Printf("%s%s\n", u.Username, suffix)
			}
			return nil
		},
	}
}

func grantUserCommand() *cobra.Command {
	var sketchID int
	cmd := &cobra.Command{
		Use:   "grant-user <username>",
		Short: "Give a user read and write access to a sketch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			if err := services.Users.GrantSketchAccess(ctx, args[0], sketchID); err != nil {
				return err
			}
			fmt.Printf("User %s granted access to sketch %d\n", args[0], sketchID)
			return nil
		},
	}
	cmd.Flags().IntVar(&sketchID, "sketch_id", 0, "sketch to grant access to")
	_ = cmd.MarkFlagRequired("sketch_id")
	return cmd
}
