package cmd

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"expenses", "categories", "app_users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		demoUsername := "demo"
		var exists int
		row := db.Raw("SELECT 1 FROM app_users WHERE username = ?", demoUsername).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("demo user already exists; skipping")
		} else {
			if err := db.Exec(
				"INSERT INTO app_users (username, password_hash, role, created_at, updated_at) VALUES (?, ?, 'ROLE_USER', now(), now())",
				demoUsername, string(hash),
			).Error; err != nil {
				log.Fatalf("failed to insert demo user: %v", err)
			}
			fmt.Println("Seeded demo user:", demoUsername)
		}

		categories := []struct {
			Name  string
			Limit decimal.Decimal
		}{
			{"Groceries", decimal.NewFromInt(600)},
			{"Transport", decimal.NewFromInt(150)},
			{"Entertainment", decimal.NewFromInt(200)},
		}

		for _, c := range categories {
			row := db.Raw("SELECT 1 FROM categories WHERE lower(name) = lower(?)", c.Name).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO categories (id, name, monthly_budget_limit, created_at, updated_at) VALUES (gen_random_uuid(), ?, ?, now(), now())",
				c.Name, c.Limit,
			).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", c.Name, err)
			}
			fmt.Println("Seeded category:", c.Name)
		}
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
