// Command seed creates the initial admin account. Registration has no
// path to an admin record, so the first one has to come from here.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"talenthub/internal/auth"
	"talenthub/internal/config"
	"talenthub/internal/db"
	apperrors "talenthub/internal/errors"
	"talenthub/internal/model"
	"talenthub/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := repository.NewUserRepository(gormDB)
	admin := &model.User{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		AccountType:  model.AccountTypeNone,
		Admin:        true,
	}

	if err := users.Create(context.Background(), admin); err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			log.Printf("Admin user %q already exists, nothing to do", username)
			return
		}
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Created admin user %q (id %s)", username, admin.ID)
}
