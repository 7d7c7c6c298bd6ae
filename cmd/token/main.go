// Command token issues a bearer token for local testing against the API.
//
//	go run ./cmd/token -role CUSTOMER -user 100
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"fooddash/api/middleware"
	"fooddash/config"
	"fooddash/domain/shared"
)

func main() {
	var (
		configPath string
		role       string
		userID     int64
		ttl        time.Duration
	)
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&role, "role", string(shared.RoleCustomer), "ADMIN, RESTAURANT_OWNER, DELIVERY_PARTNER or CUSTOMER")
	flag.Int64Var(&userID, "user", 0, "User id placed in the sub claim")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	actor := shared.Actor{UserID: userID, Role: shared.Role(strings.ToUpper(role))}
	if !actor.Role.IsValid() || actor.UserID <= 0 {
		fmt.Fprintln(os.Stderr, "a known -role and a positive -user are required")
		os.Exit(2)
	}

	token, err := middleware.IssueToken(&cfg.Auth, actor, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
