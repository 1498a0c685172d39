package main

import (
	"fmt"
	"log"
	"os"

	"rewardsbot/internal/auth"
	"rewardsbot/internal/config"
)

// Mints a bearer token for the admin API. Usage: admintoken <operator-name>
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	operator := "ops"
	if len(os.Args) > 1 {
		operator = os.Args[1]
	}

	auth.InitJWT(cfg.Server.JWTSecret)
	token, err := auth.GenerateToken(operator)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
