package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"alemsite/internal/config"
	"alemsite/internal/db"
	"alemsite/internal/model"
	"alemsite/internal/repository"
)

// Seeds the default admin user and the starter forum categories so a fresh
// deployment is usable immediately.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Reaction{},
		&model.Category{},
		&model.Opinion{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	if err := seedAdmin(ctx, gormDB); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seedCategories(ctx, gormDB); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	log.Println("Seed completed")
}

func seedAdmin(ctx context.Context, gormDB *gorm.DB) error {
	phone := getEnv("ADMIN_PHONE", "01000000000")
	password := getEnv("ADMIN_PASSWORD", "admin123")

	userRepo := repository.NewUserRepository(gormDB)
	if _, err := userRepo.FindByPhone(ctx, phone); err == nil {
		log.Printf("Admin user %s already exists, skipping", phone)
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	admin := &model.User{
		Phone:        phone,
		Name:         "Administrator",
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin user %s", phone)
	return nil
}

func seedCategories(ctx context.Context, gormDB *gorm.DB) error {
	categoryRepo := repository.NewCategoryRepository(gormDB)

	starters := []model.Category{
		{Name: "General", Description: "General discussion"},
		{Name: "Fiqh", Description: "Questions on jurisprudence"},
		{Name: "Aqeedah", Description: "Questions on creed"},
		{Name: "Books", Description: "Discussion around published books"},
	}

	created := 0
	for _, category := range starters {
		if _, err := categoryRepo.FindByName(ctx, category.Name); err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
		c := category
		if err := categoryRepo.Create(ctx, &c); err != nil {
			return err
		}
		created++
	}
	log.Printf("Created %d categories", created)
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
