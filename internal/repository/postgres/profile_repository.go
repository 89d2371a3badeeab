package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/geo"
	"github.com/gdugdh24/covenant-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileReadWriter {
	return &profileRepository{db: db}
}

// profileRow mirrors the profiles table; nullable coordinates and the
// values array do not map onto domain.Profile directly.
type profileRow struct {
	Identity      string          `db:"identity"`
	Name          string          `db:"name"`
	Age           int             `db:"age"`
	Gender        string          `db:"gender"`
	LocationLabel string          `db:"location_label"`
	Latitude      sql.NullFloat64 `db:"latitude"`
	Longitude     sql.NullFloat64 `db:"longitude"`
	Faith         string          `db:"faith"`
	FaithLevel    string          `db:"faith_level"`
	Denomination  string          `db:"denomination"`
	Values        pq.StringArray  `db:"profile_values"`
	Intention     string          `db:"intention"`
	Lifestyle     string          `db:"lifestyle"`
	Bio           string          `db:"bio"`
	ProfileImage  string          `db:"profile_image"`
	IsVerified    bool            `db:"is_verified"`
	IsPremium     bool            `db:"is_premium"`
	CreatedAt     time.Time       `db:"created_at"`
}

func (row *profileRow) toDomain() *domain.Profile {
	p := &domain.Profile{
		Identity:      row.Identity,
		Name:          row.Name,
		Age:           row.Age,
		Gender:        row.Gender,
		LocationLabel: row.LocationLabel,
		Faith:         row.Faith,
		FaithLevel:    row.FaithLevel,
		Denomination:  row.Denomination,
		Values:        []string(row.Values),
		Intention:     row.Intention,
		Lifestyle:     row.Lifestyle,
		Bio:           row.Bio,
		ProfileImage:  row.ProfileImage,
		IsVerified:    row.IsVerified,
		IsPremium:     row.IsPremium,
		CreatedAt:     row.CreatedAt,
	}
	if row.Latitude.Valid && row.Longitude.Valid {
		p.Coordinates = &domain.Coordinate{Lat: row.Latitude.Float64, Lon: row.Longitude.Float64}
	}
	return p
}

func toDomainProfiles(rows []profileRow) []*domain.Profile {
	out := make([]*domain.Profile, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}

const profileColumns = `
	identity, name, age, gender, location_label, latitude, longitude,
	faith, faith_level, denomination, profile_values, intention, lifestyle,
	bio, profile_image, is_verified, is_premium, created_at
`

func (r *profileRepository) GetByIdentity(ctx context.Context, identity string) (*domain.Profile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE identity = $1`
	if err := r.db.GetContext(ctx, &row, query, identity); err != nil {
		return nil, mapError(err, domain.ErrProfileNotFound, nil)
	}
	return row.toDomain(), nil
}

// QueryByFilter keeps the store's natural order (creation time, then identity)
// so that rank ties are stable across calls.
func (r *profileRepository) QueryByFilter(ctx context.Context, filter repository.ProfileFilter) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE identity <> $1`
	args := []interface{}{filter.ExcludeIdentity}
	argCount := 2

	if filter.Gender != "" {
		query += fmt.Sprintf(" AND gender = $%d", argCount)
		args = append(args, filter.Gender)
		argCount++
	}
	if filter.MinAge > 0 {
		query += fmt.Sprintf(" AND age >= $%d", argCount)
		args = append(args, filter.MinAge)
		argCount++
	}
	if filter.MaxAge > 0 {
		query += fmt.Sprintf(" AND age <= $%d", argCount)
		args = append(args, filter.MaxAge)
		argCount++
	}

	query += " ORDER BY created_at, identity"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
	}

	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, mapError(err, nil, nil)
	}
	return toDomainProfiles(rows), nil
}

// QueryNearby evaluates the haversine distance in SQL. A latitude bounding
// box prunes rows before the trigonometry runs.
func (r *profileRepository) QueryNearby(ctx context.Context, q repository.NearbyQuery) ([]*domain.Profile, error) {
	maxKm := q.MaxDistanceMeters / 1000
	latDelta := maxKm / geo.EarthRadiusKm * (180 / math.Pi)

	query := `
		SELECT ` + profileColumns + ` FROM (
			SELECT p.*,
				2 * $3::float8 * atan2(sqrt(h.a), sqrt(1 - h.a)) AS distance_km
			FROM profiles p
			CROSS JOIN LATERAL (
				SELECT power(sin(radians(p.latitude - $1::float8) / 2), 2)
					+ cos(radians($1::float8)) * cos(radians(p.latitude))
					* power(sin(radians(p.longitude - $2::float8) / 2), 2) AS a
			) h
			WHERE p.latitude IS NOT NULL AND p.longitude IS NOT NULL
			  AND p.identity <> $4
			  AND p.latitude BETWEEN $1::float8 - $5::float8 AND $1::float8 + $5::float8
		) nearby
		WHERE distance_km <= $6::float8
		ORDER BY distance_km, identity
		LIMIT $7
	`
	var rows []profileRow
	err := r.db.SelectContext(ctx, &rows, query,
		q.Center.Lat, q.Center.Lon, geo.EarthRadiusKm, q.ExcludeIdentity, latDelta, maxKm, q.Limit,
	)
	if err != nil {
		return nil, mapError(err, nil, nil)
	}
	return toDomainProfiles(rows), nil
}

func (r *profileRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM profiles`); err != nil {
		return 0, mapError(err, nil, nil)
	}
	return n, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	var lat, lon sql.NullFloat64
	if profile.Coordinates != nil {
		lat = sql.NullFloat64{Float64: profile.Coordinates.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: profile.Coordinates.Lon, Valid: true}
	}
	createdAt := profile.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO profiles (
			identity, name, age, gender, location_label, latitude, longitude,
			faith, faith_level, denomination, profile_values, intention, lifestyle,
			bio, profile_image, is_verified, is_premium, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (identity) DO UPDATE SET
			name = EXCLUDED.name, age = EXCLUDED.age, gender = EXCLUDED.gender,
			location_label = EXCLUDED.location_label,
			latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude,
			faith = EXCLUDED.faith, faith_level = EXCLUDED.faith_level,
			denomination = EXCLUDED.denomination, profile_values = EXCLUDED.profile_values,
			intention = EXCLUDED.intention, lifestyle = EXCLUDED.lifestyle,
			bio = EXCLUDED.bio, profile_image = EXCLUDED.profile_image,
			is_verified = EXCLUDED.is_verified, is_premium = EXCLUDED.is_premium
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.Identity, profile.Name, profile.Age, profile.Gender, profile.LocationLabel, lat, lon,
		profile.Faith, profile.FaithLevel, profile.Denomination, pq.Array(profile.Values),
		profile.Intention, profile.Lifestyle, profile.Bio, profile.ProfileImage,
		profile.IsVerified, profile.IsPremium, createdAt,
	)
	return mapError(err, nil, nil)
}
