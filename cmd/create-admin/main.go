// Command create-admin seeds an administrator account so a fresh deployment
// has a user able to manage products and other users.
//
//	ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME override the defaults.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lortega/product-catalog-api/internal/config"
	"github.com/lortega/product-catalog-api/internal/database"
	"github.com/lortega/product-catalog-api/internal/model"
	"github.com/lortega/product-catalog-api/internal/repository"
	"github.com/lortega/product-catalog-api/internal/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := envOr("ADMIN_EMAIL", "admin@example.com")
	password := envOr("ADMIN_PASSWORD", "admin123")
	name := envOr("ADMIN_NAME", "Administrator")

	client, db, err := database.Open(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	hash, err := utils.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	users := repository.NewUserRepo(db)
	created, err := users.Create(ctx, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			log.Fatalf("admin account %s already exists", email)
		}
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("admin account created: email=%s id=%s", created.Email, created.ID.Hex())
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
