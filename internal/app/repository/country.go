package repository

import (
	"WorldCities/internal/app/ds"
	"WorldCities/internal/app/paging"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CountryRepository struct {
	db    *gorm.DB
	flags *flagStore
}

func NewCountryRepository(db *gorm.DB, flags *flagStore) *CountryRepository {
	return &CountryRepository{
		db:    db,
		flags: flags,
	}
}

func (r *CountryRepository) GetCountries(ctx context.Context, req PageRequest) (paging.Page[ds.Country], error) {
	return listPage[ds.Country](ctx, r.db, req)
}

func (r *CountryRepository) GetCountry(ctx context.Context, id uint) (ds.Country, error) {
	country := ds.Country{}
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&country).Error
	if err != nil {
		return ds.Country{}, err
	}
	return country, nil
}

func (r *CountryRepository) CreateCountry(ctx context.Context, country *ds.Country) error {
	return r.db.WithContext(ctx).Create(country).Error
}

func (r *CountryRepository) UpdateCountry(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&ds.Country{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("country with id %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// DeleteCountry removes the country and its cities (ON DELETE CASCADE). The flag
// image is removed once the delete has committed.
func (r *CountryRepository) DeleteCountry(ctx context.Context, id uint) error {
	var country ds.Country
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&country).Error; err != nil {
			return err
		}
		return tx.Delete(&ds.Country{}, id).Error
	})
	if err != nil {
		return err
	}

	if country.Flag != "" && r.flags != nil {
		r.flags.discard(ctx, country.Flag)
	}
	return nil
}

// IsDupeField reports whether a country other than countryID already has
// fieldValue in fieldName. fieldName must be a text field of ds.Country.
func (r *CountryRepository) IsDupeField(ctx context.Context, countryID uint, fieldName, fieldValue string) (bool, error) {
	field, err := paging.Property[ds.Country](fieldName)
	if err != nil {
		return false, err
	}
	// only text columns take a free-form value
	if field.Kind != reflect.String {
		return false, &paging.PropertyNotFoundError{Type: "Country", Property: fieldName}
	}

	var count int64
	err = r.db.WithContext(ctx).Model(&ds.Country{}).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: field.Column}, Value: fieldValue}).
		Where("id <> ?", countryID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateCountryFlag uploads a new flag image and points the country at it.
// The previous image is removed only after the row is updated.
func (r *CountryRepository) UpdateCountryFlag(ctx context.Context, id uint, fileHeader *multipart.FileHeader) (string, error) {
	if r.flags == nil {
		return "", ErrFlagStorageUnavailable
	}

	var country ds.Country
	if err := r.db.WithContext(ctx).First(&country, id).Error; err != nil {
		return "", err
	}

	fileName := strings.ToLower(fmt.Sprintf("country_%d_%d%s", id, time.Now().UnixNano(), filepath.Ext(fileHeader.Filename)))

	flagURL, err := r.flags.put(ctx, fileName, fileHeader)
	if err != nil {
		return "", fmt.Errorf("upload flag: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&country).Update("flag", flagURL).Error; err != nil {
		r.flags.discard(ctx, flagURL)
		return "", err
	}

	if country.Flag != "" && country.Flag != flagURL {
		r.flags.discard(ctx, country.Flag)
	}
	return flagURL, nil
}
