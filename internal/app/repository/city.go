package repository

import (
	"WorldCities/internal/app/ds"
	"WorldCities/internal/app/paging"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type CityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) *CityRepository {
	return &CityRepository{
		db: db,
	}
}

// GetCities returns one page of cities
func (r *CityRepository) GetCities(ctx context.Context, req PageRequest) (paging.Page[ds.City], error) {
	return listPage[ds.City](ctx, r.db, req)
}

func (r *CityRepository) GetCity(ctx context.Context, id uint) (ds.City, error) {
	city := ds.City{}
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&city).Error
	if err != nil {
		return ds.City{}, err
	}
	return city, nil
}

func (r *CityRepository) CreateCity(ctx context.Context, city *ds.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}

// UpdateCity applies column updates; gorm.ErrRecordNotFound when no such city
func (r *CityRepository) UpdateCity(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&ds.City{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("city with id %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *CityRepository) DeleteCity(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&ds.City{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("city with id %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// IsDupeCity reports whether another city has the same name, coordinates and country
func (r *CityRepository) IsDupeCity(ctx context.Context, city ds.City) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ds.City{}).
		Where("name = ? AND lat = ? AND lon = ? AND country_id = ? AND id <> ?",
			city.Name, city.Lat, city.Lon, city.CountryID, city.ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
