package ds

import "gorm.io/gorm"

type City struct {
	ID        uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string   `json:"name" gorm:"type:varchar(255) not null;index:idx_cities_name"`
	NameASCII string   `json:"nameAscii" gorm:"column:name_ascii;type:varchar(255) not null"`
	Lat       float64  `json:"lat" gorm:"type:numeric(7,4) not null"`
	Lon       float64  `json:"lon" gorm:"type:numeric(7,4) not null"`
	CountryID uint     `json:"countryId" gorm:"not null;index:idx_cities_country_id"`
	Country   *Country `json:"country,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// CreateCityIndexes creates composite indexes used by the paged listings.
func CreateCityIndexes(db *gorm.DB) error {
	indexes := []string{
		// default listing order
		`CREATE INDEX IF NOT EXISTS idx_cities_name_id
		 ON cities (name ASC, id ASC)`,

		// duplicate check
		`CREATE INDEX IF NOT EXISTS idx_cities_dupe
		 ON cities (name, lat, lon, country_id)`,
	}

	for _, sql := range indexes {
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}

	db.Exec("ANALYZE cities")

	return nil
}
