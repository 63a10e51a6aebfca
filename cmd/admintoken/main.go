// admintoken печатает JWT для админских выгрузок API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/subosito/gotenv"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/api"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/config"
)

func main() {
	_ = gotenv.Load()

	cfgPath := flag.String("config", "config/example.yaml", "path to config file")
	subject := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "auth.jwt_secret is empty")
		os.Exit(1)
	}

	tok, err := api.IssueToken(cfg.Auth.JWTSecret, *subject, api.RoleAdmin, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "issue token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
