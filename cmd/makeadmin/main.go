package main

import (
	"fmt"
	"os"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/config"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/store"
)

// makeadmin grants the admin flag to one user, identified by phone
// number or numeric id.
//
//	Usage: makeadmin <phone-or-id>
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Error: please provide a user phone number or id as the only argument")
		fmt.Println("Usage: makeadmin <phone-or-id>")
		fmt.Println("Example: makeadmin +919800000001")
		os.Exit(1)
	}
	identifier := os.Args[1]

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load config: %v\n", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.Database.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open database: %v\n", err)
		os.Exit(1)
	}
	st := store.New(db)

	user, err := st.FindUser(identifier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: no user found for %q\n", identifier)
		fmt.Println("Check the phone number or id and try again.")
		os.Exit(1)
	}

	fmt.Println("User found:")
	fmt.Printf("  ID:    %d\n", user.ID)
	fmt.Printf("  Name:  %s\n", user.DisplayName)
	fmt.Printf("  Phone: %s\n", user.Phone)
	fmt.Printf("  Admin: %v\n", user.Admin)

	if err := st.GrantAdmin(user); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not grant admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully granted admin to user %d\n", user.ID)
}
