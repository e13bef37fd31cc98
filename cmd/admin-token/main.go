package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/delta/codecharacter/api/pkg/jwt"
)

func main() {
	// Flags for customization
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "HMAC secret shared with the API (default: $JWT_SECRET)")
	userID := flag.Int("user", 1, "User ID for the token")
	username := flag.String("username", "executor", "Username for the token")
	issuer := flag.String("issuer", "codecharacter", "JWT issuer")
	expMins := flag.Int("exp", 60*24*7, "Token expiration in minutes (default: 7 days)")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         *secret,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nPass -secret or set JWT_SECRET to the value the API runs with\n")
		os.Exit(1)
	}

	// Admin claims let the match executor upload logs and results
	token, err := jwtService.Sign(jwt.Claims{
		UserID:   *userID,
		Username: *username,
		IsAdmin:  true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"user_id":      *userID,
			"username":     *username,
			"is_admin":     true,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
	} else {
		expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
		fmt.Println("Admin Token Generated")
		fmt.Println("=====================")
		fmt.Printf("User ID:  %d\n", *userID)
		fmt.Printf("Username: %s\n", *username)
		fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
		fmt.Println()
		fmt.Println("Token:")
		fmt.Println(token)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  curl -X PUT -H 'Authorization: Bearer %s' http://localhost:8080/game/log/game/1 -d @log.json\n", token[:20]+"...")
	}
}
