package repository

import (
	"WorldCities/internal/app/config"
	"WorldCities/internal/app/dsn"
	"WorldCities/internal/app/redis"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db          *gorm.DB
	redisClient *redis.Client
	City        *CityRepository
	Country     *CountryRepository
	User        *UserRepository
}

func NewRepository(cfg *config.Config) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		// token blacklist is skipped without Redis
		logrus.Warnf("Failed to initialize Redis client: %v", err)
		redisClient = nil
	}

	minioClient, err := InitMinIOClient(cfg)
	if err != nil {
		// flag uploads fail without MinIO, everything else keeps working
		logrus.Warnf("Failed to initialize MinIO client: %v", err)
		minioClient = nil
	}

	return New(db, redisClient, minioClient, cfg.MinioBucket, cfg.MinioPublicURL), nil
}

// New assembles a Repository from already opened connections. redisClient and
// minioClient may be nil.
func New(db *gorm.DB, redisClient *redis.Client, minioClient *minio.Client, bucket, publicURL string) *Repository {
	return &Repository{
		db:          db,
		redisClient: redisClient,
		City:        NewCityRepository(db),
		Country:     NewCountryRepository(db, newFlagStore(minioClient, bucket, publicURL)),
		User:        NewUserRepository(db),
	}
}

// GetRedisClient returns nil when Redis is not configured
func (r *Repository) GetRedisClient() *redis.Client {
	return r.redisClient
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) Close() {
	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			logrus.Errorf("Error closing Redis client: %v", err)
		}
	}
	if sqlDB, err := r.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logrus.Errorf("Error closing database: %v", err)
		}
	}
}

func InitMinIOClient(cfg *config.Config) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()

	exists, err := minioClient.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("minio connection test failed: %w", err)
	}

	if !exists {
		err = minioClient.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	logrus.Info("MinIO client initialized successfully")
	return minioClient, nil
}
