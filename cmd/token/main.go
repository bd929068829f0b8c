// Command token mints an access token for local development and testing.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cmlabs-hris/presence-engine/internal/config"
	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/jwt"
)

func main() {
	employeeID := flag.String("employee", "", "employee id (required)")
	name := flag.String("name", "", "display name")
	role := flag.String("role", string(auth.RoleEmployee), "admin or employee")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	token, _, err := JWTService.GenerateAccessToken(auth.Caller{
		EmployeeID: *employeeID,
		Name:       *name,
		Role:       auth.ParseRole(*role),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
