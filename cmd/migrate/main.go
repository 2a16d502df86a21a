package main

import (
	"WorldCities/internal/app/ds"
	"WorldCities/internal/app/dsn"
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	seedFile := flag.String("seed", "", "path to a worldcities CSV file to import")
	adminLogin := flag.String("admin-login", "", "create or promote this user to admin")
	adminPassword := flag.String("admin-password", os.Getenv("ADMIN_PASSWORD"), "password for -admin-login")
	flag.Parse()

	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}

	startTime := time.Now()

	logrus.Info("Migrating schema...")
	if err := db.AutoMigrate(&ds.Country{}, &ds.City{}, &ds.User{}); err != nil {
		logrus.Fatal("Failed to migrate: ", err)
	}

	logrus.Info("Creating indexes...")
	if err := ds.CreateCityIndexes(db); err != nil {
		logrus.Fatal("Failed to create indexes: ", err)
	}

	if *seedFile != "" {
		file, err := os.Open(*seedFile)
		if err != nil {
			logrus.Fatal("Failed to open seed file: ", err)
		}
		stats, err := seed(context.Background(), db, file)
		file.Close()
		if err != nil {
			logrus.Fatal("Failed to seed: ", err)
		}
		logrus.Infof("Seeded %d countries and %d cities (%d rows skipped)", stats.Countries, stats.Cities, stats.Skipped)
	}

	if *adminLogin != "" {
		if err := ensureAdmin(db, *adminLogin, *adminPassword); err != nil {
			logrus.Fatal("Failed to create admin: ", err)
		}
		logrus.Infof("Admin %q is ready", *adminLogin)
	}

	logrus.Infof("Migration completed in %v", time.Since(startTime))
}

// ensureAdmin promotes an existing user or creates a new admin
func ensureAdmin(db *gorm.DB, login, password string) error {
	var user ds.User
	err := db.Where("login = ?", login).First(&user).Error
	if err == nil {
		return db.Model(&user).Update("is_admin", true).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if password == "" {
		return errors.New("-admin-password or ADMIN_PASSWORD is required to create a new admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&ds.User{Login: login, Password: string(hash), IsAdmin: true}).Error
}
