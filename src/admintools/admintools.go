package admintools

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/inkwell-net/inkwell/src/auth"
	"github.com/inkwell-net/inkwell/src/db"
	"github.com/inkwell-net/inkwell/src/models"
	"github.com/inkwell-net/inkwell/src/website"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
)

func init() {
	adminCommand := &cobra.Command{
		Use:   "admin",
		Short: "Miscellaneous admin commands",
	}
	website.WebsiteCommand.AddCommand(adminCommand)

	setPasswordCommand := &cobra.Command{
		Use:   "setpassword [username] [new password]",
		Short: "Replace a user's password",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 2 {
				fmt.Printf("You must provide a username and a password.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			username := args[0]
			password := args[1]

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			id, canonicalUsername := mustLookUpUser(ctx, conn, username)

			err := auth.SetPassword(ctx, conn, id, password)
			if err != nil {
				panic(err)
			}

			fmt.Printf("Successfully updated password for '%s'\n", canonicalUsername)
		},
	}
	adminCommand.AddCommand(setPasswordCommand)

	makeStaffCommand := &cobra.Command{
		Use:   "makestaff [username]",
		Short: "Make a user a staff member",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Printf("You must provide a username.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			id, canonicalUsername := mustLookUpUser(ctx, conn, args[0])

			_, err := conn.Exec(ctx, "UPDATE inkwell_user SET is_staff = TRUE WHERE id = $1", id)
			if err != nil {
				panic(err)
			}

			fmt.Printf("'%s' is now staff\n", canonicalUsername)
		},
	}
	adminCommand.AddCommand(makeStaffCommand)

	userStatusCommand := &cobra.Command{
		Use:   "userstatus [username] [inactive|active|banned]",
		Short: "Set a user's status",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 2 {
				fmt.Printf("You must provide a username and a status.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			var status models.UserStatus
			switch args[1] {
			case "inactive":
				status = models.UserStatusInactive
			case "active":
				status = models.UserStatusActive
			case "banned":
				status = models.UserStatusBanned
			default:
				fmt.Printf("Unrecognized status '%s'.\n\n", args[1])
				cmd.Usage()
				os.Exit(1)
			}

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			id, canonicalUsername := mustLookUpUser(ctx, conn, args[0])

			_, err := conn.Exec(ctx, "UPDATE inkwell_user SET status = $1 WHERE id = $2", status, id)
			if err != nil {
				panic(err)
			}

			if status == models.UserStatusBanned {
				_, err = conn.Exec(ctx, "DELETE FROM session WHERE user_id = $1", id)
				if err != nil {
					panic(err)
				}
			}

			fmt.Printf("'%s' is now %s\n", canonicalUsername, args[1])
		},
	}
	adminCommand.AddCommand(userStatusCommand)
}

func mustLookUpUser(ctx context.Context, conn *pgx.Conn, username string) (int, string) {
	row := conn.QueryRow(ctx, "SELECT id, username FROM inkwell_user WHERE lower(username) = lower($1)", username)
	var id int
	var canonicalUsername string
	err := row.Scan(&id, &canonicalUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			fmt.Printf("User '%s' not found\n", username)
			os.Exit(1)
		} else {
			panic(err)
		}
	}
	return id, canonicalUsername
}
