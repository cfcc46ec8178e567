package main

import (
	"fmt"
	"os"

	"dormly/config"
	"dormly/database"
	"dormly/database/seeders"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate - Run migrations, constraints and indexes")
		fmt.Println("  go run tools/migrate.go seed    - Migrate, then load the demo dorms")
		return
	}

	cfg, envErr := config.Load()
	if envErr != nil {
		fmt.Printf("⚠️  No .env file loaded: %v\n", envErr)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if _, err := database.InitDB(cfg); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "seed":
		db, err := database.InitDB(cfg)
		if err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("🌱 Seeding demo dorms...")
		if err := seeders.SeedDorms(db); err != nil {
			fmt.Printf("❌ Seeding failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Seeding completed successfully!")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, seed")
	}
}
