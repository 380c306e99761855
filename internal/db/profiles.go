package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/expert-finder/internal/types"
)

// UpsertProfile stores a processed profile, replacing any previous version
// with the same urn_id.
func (db *DB) UpsertProfile(ctx context.Context, profile *types.Profile) error {
	if profile.URNID == "" {
		return fmt.Errorf("profile is missing urn_id")
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile %s: %w", profile.URNID, err)
	}

	years := 0.0
	if profile.TotalYearsExperience != nil {
		years = *profile.TotalYearsExperience
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (urn_id, full_name, current_title, current_company,
		                       location, industry, education_level, career_level,
		                       years_experience, data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (urn_id) DO UPDATE SET
		   full_name = $2, current_title = $3, current_company = $4,
		   location = $5, industry = $6, education_level = $7,
		   career_level = $8, years_experience = $9, data = $10,
		   updated_at = NOW()`,
		profile.URNID, profile.FullName, profile.CurrentTitle, profile.CurrentCompany,
		profile.LocationName, profile.Industry, profile.EducationLevel, profile.CareerLevel,
		years, data,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", profile.URNID, err)
	}
	return nil
}

// UpsertProfiles stores a batch, returning how many rows were written.
// Individual failures abort the batch so callers can retry it whole.
func (db *DB) UpsertProfiles(ctx context.Context, profiles []*types.Profile) (int, error) {
	count := 0
	for _, p := range profiles {
		if err := db.UpsertProfile(ctx, p); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// GetProfile retrieves a stored profile by urn_id. Returns nil without an
// error when the profile does not exist.
func (db *DB) GetProfile(ctx context.Context, urnID string) (*types.Profile, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT data FROM profiles WHERE urn_id = $1`, urnID,
	).Scan(&data)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", urnID, err)
	}

	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", urnID, err)
	}
	return &profile, nil
}

// CountProfiles returns the number of stored profiles.
func (db *DB) CountProfiles(ctx context.Context) (int, error) {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// AllRecords returns the flat metadata rows for the entire stored
// population. This is the default population source for credibility stats
// refreshes; the row shape matches what the credibility resolvers expect.
func (db *DB) AllRecords(ctx context.Context) ([]map[string]any, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT urn_id, full_name, current_title, current_company, location,
		        industry, education_level, career_level, years_experience
		 FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile records: %w", err)
	}
	defer rows.Close()

	var records []map[string]any
	for rows.Next() {
		var r ProfileRow
		if err := rows.Scan(&r.URNID, &r.FullName, &r.CurrentTitle, &r.CurrentCompany,
			&r.Location, &r.Industry, &r.EducationLevel, &r.CareerLevel, &r.YearsExperience); err != nil {
			return nil, fmt.Errorf("failed to scan profile record: %w", err)
		}
		records = append(records, map[string]any{
			"urn_id":           r.URNID,
			"name":             r.FullName,
			"current_title":    r.CurrentTitle,
			"current_company":  r.CurrentCompany,
			"location":         r.Location,
			"industry":         r.Industry,
			"education_level":  r.EducationLevel,
			"career_level":     r.CareerLevel,
			"years_experience": r.YearsExperience,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profile records: %w", err)
	}
	return records, nil
}

// ListProfiles returns stored profiles ordered by most recently updated.
func (db *DB) ListProfiles(ctx context.Context, limit, offset int) ([]*types.Profile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT data FROM profiles ORDER BY updated_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*types.Profile
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		var p types.Profile
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}
