package ds

// Country is a country record. Flag holds the public URL of the uploaded
// flag image, empty when none was uploaded.
type Country struct {
	ID     uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name   string `json:"name" gorm:"type:varchar(255) not null;index:idx_countries_name"`
	ISO2   string `json:"iso2" gorm:"type:char(2) not null;uniqueIndex:idx_countries_iso2"`
	ISO3   string `json:"iso3" gorm:"type:char(3) not null;uniqueIndex:idx_countries_iso3"`
	Flag   string `json:"flag" gorm:"type:varchar(255)"`
	Cities []City `json:"cities,omitempty" gorm:"foreignKey:CountryID"`
}
