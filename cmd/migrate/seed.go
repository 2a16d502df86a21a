package main

import (
	"WorldCities/internal/app/ds"
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const seedBatchSize = 500

type seedStats struct {
	Countries int
	Cities    int
	Skipped   int
}

type seedRow struct {
	City      string
	CityASCII string
	Lat       float64
	Lon       float64
	Country   string
	ISO2      string
	ISO3      string
}

type cityKey struct {
	name      string
	lat, lon  float64
	countryID uint
}

var seedColumns = []string{"city", "city_ascii", "lat", "lng", "country", "iso2", "iso3"}

// readSeed parses a simplemaps style worldcities CSV. Rows with unparsable
// coordinates or missing names are counted as skipped.
func readSeed(r io.Reader) ([]seedRow, int, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, column := range seedColumns {
		if _, ok := index[column]; !ok {
			return nil, 0, fmt.Errorf("missing column %q", column)
		}
	}

	var (
		rows    []seedRow
		skipped int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		get := func(column string) string {
			i := index[column]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		lat, latErr := strconv.ParseFloat(get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(get("lng"), 64)
		row := seedRow{
			City:      get("city"),
			CityASCII: get("city_ascii"),
			Lat:       lat,
			Lon:       lon,
			Country:   get("country"),
			ISO2:      strings.ToUpper(get("iso2")),
			ISO3:      strings.ToUpper(get("iso3")),
		}
		if latErr != nil || lonErr != nil || row.City == "" || row.Country == "" || len(row.ISO2) != 2 || len(row.ISO3) != 3 {
			skipped++
			continue
		}
		if row.CityASCII == "" {
			row.CityASCII = row.City
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}

// seed imports countries then cities, leaving rows already in the database alone
func seed(ctx context.Context, db *gorm.DB, r io.Reader) (seedStats, error) {
	rows, skipped, err := readSeed(r)
	if err != nil {
		return seedStats{}, err
	}
	stats := seedStats{Skipped: skipped}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existingCountries []ds.Country
		if err := tx.Find(&existingCountries).Error; err != nil {
			return err
		}
		countries := make(map[string]uint, len(existingCountries))
		for _, c := range existingCountries {
			countries[c.ISO2] = c.ID
		}

		var newCountries []*ds.Country
		pending := make(map[string]bool)
		for _, row := range rows {
			if _, ok := countries[row.ISO2]; ok || pending[row.ISO2] {
				continue
			}
			pending[row.ISO2] = true
			newCountries = append(newCountries, &ds.Country{Name: row.Country, ISO2: row.ISO2, ISO3: row.ISO3})
		}
		if len(newCountries) > 0 {
			if err := tx.CreateInBatches(newCountries, seedBatchSize).Error; err != nil {
				return fmt.Errorf("insert countries: %w", err)
			}
		}
		for _, c := range newCountries {
			countries[c.ISO2] = c.ID
		}
		stats.Countries = len(newCountries)

		var existingCities []ds.City
		if err := tx.Select("name", "lat", "lon", "country_id").Find(&existingCities).Error; err != nil {
			return err
		}
		seen := make(map[cityKey]bool, len(existingCities))
		for _, c := range existingCities {
			seen[cityKey{c.Name, c.Lat, c.Lon, c.CountryID}] = true
		}

		var newCities []*ds.City
		for _, row := range rows {
			key := cityKey{row.City, row.Lat, row.Lon, countries[row.ISO2]}
			if seen[key] {
				continue
			}
			seen[key] = true
			newCities = append(newCities, &ds.City{
				Name:      row.City,
				NameASCII: row.CityASCII,
				Lat:       row.Lat,
				Lon:       row.Lon,
				CountryID: key.countryID,
			})
		}
		if len(newCities) > 0 {
			if err := tx.CreateInBatches(newCities, seedBatchSize).Error; err != nil {
				return fmt.Errorf("insert cities: %w", err)
			}
		}
		stats.Cities = len(newCities)

		return nil
	})
	return stats, err
}

// skipBOM drops a leading UTF-8 byte order mark, as written by spreadsheet exports
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(3); err == nil && string(head) == "\xef\xbb\xbf" {
		_, _ = br.Discard(3)
	}
	return br
}
