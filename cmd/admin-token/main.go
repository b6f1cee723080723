// Command admin-token mints a signed admin cookie value for the settings routes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/makehaven/tasks-display/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id to embed in the token (random when empty)")
	role := flag.String("role", jwt.RoleAdmin, "role claim")
	expiry := flag.Int("expiry", 60, "token lifetime in minutes")
	flag.Parse()

	_ = godotenv.Load()

	if *userID == "" {
		*userID = uuid.NewString()
	}

	token, err := jwt.GenerateToken(*userID, *role, *expiry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
