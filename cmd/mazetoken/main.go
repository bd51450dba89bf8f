// Command mazetoken issues a bearer token for the maze API, for local use
// and tests against a running server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "HMAC secret, defaults to $JWT_SECRET")
	issuer := flag.String("issuer", os.Getenv("JWT_ISSUER"), "token issuer, defaults to $JWT_ISSUER")
	user := flag.String("user", "", "user ID to issue the token for (random if empty)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	log, err := logger.New("info")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log = log.Named("MAZETOKEN")

	if *secret == "" {
		log.Fatal("no signing secret, set -secret or JWT_SECRET")
	}

	userID := uuid.New()
	if *user != "" {
		if userID, err = uuid.Parse(*user); err != nil {
			log.Fatal("invalid user id", zap.String("user", *user), zap.Error(err))
		}
	}

	bearer, err := token.NewJwtService(*secret, *issuer).Generate(userID, *ttl)
	if err != nil {
		log.Fatal("signing token", zap.Error(err))
	}

	log.Info("token issued", zap.Stringer("user", userID), zap.Duration("ttl", *ttl))
	fmt.Println(bearer)
}
