package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/finance-tracker/internal/auth"
)

// seededAlready interprets a SELECT 1 probe result: nil means the row exists,
// sql.ErrNoRows means it does not, and anything else is a real fault that must
// stop the seed instead of silently skipping rows.
func seededAlready(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, err
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with shared default categories and a demo user for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		// Shared defaults visible to every account. Registration copies the
		// same names as user-owned rows, so these only matter for accounts
		// created before the copy-on-register behavior shipped.
		for _, name := range auth.DefaultCategories {
			var one int
			row := db.Raw("SELECT 1 FROM categories WHERE user_id IS NULL AND name = ?", name).Row()
			exists, err := seededAlready(row.Scan(&one))
			if err != nil {
				log.Fatalf("failed to check default category %s: %v", name, err)
			}
			if exists {
				continue
			}

			if err := db.Exec("INSERT INTO categories (id, user_id, name, created_at, updated_at) VALUES (?, NULL, ?, now(), now())", uuid.NewString(), name).Error; err != nil {
				log.Fatalf("failed to insert default category %s: %v", name, err)
			}
			fmt.Printf("Seeded default category: %s\n", name)
		}

		demoEmail := "demo@mail.com"
		demoName := "Demo"
		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		var one int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", demoEmail).Row()
		exists, err := seededAlready(row.Scan(&one))
		if err != nil {
			log.Fatalf("failed to check demo user: %v", err)
		}
		if exists {
			fmt.Println("demo user already exists:", demoEmail)
			return
		}

		demoID := uuid.NewString()
		if err := db.Exec("INSERT INTO users (id, email, name, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())", demoID, demoEmail, demoName, string(hash)).Error; err != nil {
			log.Fatalf("failed to insert demo user: %v", err)
		}
		fmt.Println("Seeded demo user:", demoEmail)

		for _, name := range auth.DefaultCategories {
			if err := db.Exec("INSERT INTO categories (id, user_id, name, created_at, updated_at) VALUES (?, ?, ?, now(), now())", uuid.NewString(), demoID, name).Error; err != nil {
				log.Fatalf("failed to insert demo category %s: %v", name, err)
			}
		}
		fmt.Println("Seeded demo user categories")
	},
}
