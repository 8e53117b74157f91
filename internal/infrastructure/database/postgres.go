package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/config"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff entities
		&entity.Role{},
		&entity.Staff{},
		&entity.StaffPayment{},

		// Catalog entities
		&entity.Vehicle{},
		&entity.Modification{},
		&entity.Discount{},

		// Customer entities
		&entity.Customer{},

		// Transaction entities
		&entity.Order{},
		&entity.OrderLine{},
		&entity.RaffleSalesLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default roles and an optional
// admin staff account configured via environment variables.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	roles := []entity.Role{
		{Name: "admin", CommissionPercent: 10, HourlyRate: 2500},
		{Name: "manager", CommissionPercent: 8, HourlyRate: 2000},
		{Name: "mechanic", CommissionPercent: 5, HourlyRate: 1500},
	}

	for i := range roles {
		var existing entity.Role
		if err := db.Where("name = ?", roles[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&roles[i]).Error; err != nil {
				log.Printf("Warning: failed to create role %s: %v", roles[i].Name, err)
			}
		}
	}

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.Staff
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var adminRole entity.Role
				if err := db.Where("name = ?", "admin").First(&adminRole).Error; err == nil {
					if adminName == "" {
						adminName = "Shop Admin"
					}
					admin := entity.Staff{
						ID:       uuid.New(),
						Name:     adminName,
						Email:    adminEmail,
						Password: string(hashedPassword),
						Active:   true,
						RoleID:   adminRole.ID,
					}
					if err := db.Create(&admin).Error; err != nil {
						log.Printf("Warning: failed to create admin staff account: %v", err)
					} else {
						log.Printf("Admin staff account created: %s", adminEmail)
					}
				}
			}
		} else {
			log.Printf("Admin staff account already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
