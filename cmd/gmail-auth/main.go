package main

// One-time Gmail OAuth bootstrap:
//   go run ./cmd/gmail-auth            prints the consent URL
//   go run ./cmd/gmail-auth <code>     exchanges the code and writes the token file

import (
	"context"
	"fmt"
	"log"
	"os"

	"hiretrack-backend/internal/gmail"
	"hiretrack-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	if len(os.Args) < 2 {
		url, err := gmail.AuthCodeURL(cfg.GmailCredentials)
		if err != nil {
			log.Fatalf("auth url: %v", err)
		}
		fmt.Printf("Visit the URL below, approve access, then re-run with the code:\n\n%s\n", url)
		return
	}

	code := os.Args[1]
	if err := gmail.Exchange(context.Background(), cfg.GmailCredentials, cfg.GmailToken, code); err != nil {
		log.Fatalf("exchange: %v", err)
	}
	fmt.Printf("Token saved to %s\n", cfg.GmailToken)
}
