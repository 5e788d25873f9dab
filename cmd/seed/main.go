package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Deepak-Mahanta/Votify/internal/config"
	"github.com/Deepak-Mahanta/Votify/internal/db"
	"github.com/Deepak-Mahanta/Votify/internal/model"
	"github.com/Deepak-Mahanta/Votify/internal/repository"
)

// SeedCandidate is one roster entry from the seed file.
type SeedCandidate struct {
	Name  string `json:"name"`
	Party string `json:"party"`
	Age   int    `json:"age"`
}

func main() {
	candidatesFile := flag.String("candidates", "seed/candidates.json", "path to candidate roster JSON")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Candidate{}, &model.Ballot{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	if err := seedAdmin(ctx, repository.NewUserRepository(gormDB)); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	created, skipped, err := seedCandidates(ctx, gormDB, *candidatesFile)
	if err != nil {
		log.Fatalf("Failed to seed candidates: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New candidates created: %d", created)
	log.Printf("  - Existing candidates skipped: %d", skipped)
}

// seedAdmin ensures the single admin account exists, using ADMIN_AADHAR and
// ADMIN_PASSWORD from the environment.
func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	aadhar := os.Getenv("ADMIN_AADHAR")
	password := os.Getenv("ADMIN_PASSWORD")
	if aadhar == "" || password == "" {
		log.Println("ADMIN_AADHAR/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	exists, err := users.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("check admin existence: %w", err)
	}
	if exists {
		log.Println("Admin account already exists, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		Name:         "Election Admin",
		Age:          35,
		Address:      "Election Commission",
		AadharNumber: aadhar,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Println("Admin account created")
	return nil
}

// seedCandidates loads the roster file and creates any candidates not
// already present, matched by name and party.
func seedCandidates(ctx context.Context, gormDB *gorm.DB, path string) (created, skipped int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("read candidates file: %w", err)
	}

	var entries []SeedCandidate
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, 0, fmt.Errorf("parse candidates file: %w", err)
	}

	repo := repository.NewCandidateRepository(gormDB)
	for _, entry := range entries {
		var existing model.Candidate
		err := gormDB.WithContext(ctx).
			Where("name = ? AND party = ?", entry.Name, entry.Party).
			First(&existing).Error
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, fmt.Errorf("check candidate %q: %w", entry.Name, err)
		}

		candidate := &model.Candidate{
			Name:  entry.Name,
			Party: entry.Party,
			Age:   entry.Age,
		}
		if err := repo.Create(ctx, candidate); err != nil {
			return created, skipped, fmt.Errorf("create candidate %q: %w", entry.Name, err)
		}
		created++
	}

	return created, skipped, nil
}
