// Command devtoken prints a Bearer token for an organizer, signed with AUTH_JWT_SECRET.
// It is meant for local testing of the command endpoints.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"eventcatalog/config"
	"eventcatalog/internal/adapters/auth"
	"eventcatalog/internal/domain"
)

func main() {
	organizer := flag.String("organizer", "", "organizer id to put in the token subject (random when empty)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	organizerID := domain.NewOrganizerID()
	if *organizer != "" {
		if organizerID, err = domain.ParseOrganizerID(*organizer); err != nil {
			fmt.Fprintf(os.Stderr, "organizer: %v\n", err)
			os.Exit(2)
		}
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(organizerID, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("organizer: %s\ntoken: %s\n", organizerID, token)
}
