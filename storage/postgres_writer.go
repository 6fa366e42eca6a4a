package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"rental-radar/models"
)

// PostgresWriter persists listing snapshots to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS apartments (
			id             SERIAL PRIMARY KEY,
			collection     VARCHAR(50)  NOT NULL,
			source         VARCHAR(50)  NOT NULL DEFAULT '',
			title          TEXT         NOT NULL DEFAULT '',
			url            TEXT         UNIQUE NOT NULL,
			price          INTEGER      NOT NULL DEFAULT 0,
			neighborhood   TEXT         NOT NULL DEFAULT '',
			bedrooms       INTEGER,
			sqft           INTEGER,
			price_per_sqft NUMERIC(8,2),
			deal_score     INTEGER,
			discount_pct   NUMERIC(6,1),
			posted_date    TEXT         NOT NULL DEFAULT '',
			latitude       DOUBLE PRECISION,
			longitude      DOUBLE PRECISION,
			snapshotted_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_apartments_collection   ON apartments(collection);
		CREATE INDEX IF NOT EXISTS idx_apartments_price        ON apartments(price);
		CREATE INDEX IF NOT EXISTS idx_apartments_neighborhood ON apartments(neighborhood);
		CREATE INDEX IF NOT EXISTS idx_apartments_deal_score   ON apartments(deal_score);
	`)
	return err
}

// Clear deletes a collection's previous snapshot.
func (pw *PostgresWriter) Clear(collectionID string) error {
	_, err := pw.db.Exec("DELETE FROM apartments WHERE collection = $1", collectionID)
	if err != nil {
		return fmt.Errorf("postgres: clear %s: %w", collectionID, err)
	}
	return nil
}

// WriteSnapshot batch-inserts a collection's listings, replacing its
// previous snapshot. Listings without a URL are skipped because the
// table dedupes on it.
func (pw *PostgresWriter) WriteSnapshot(collectionID string, listings []*models.Listing) error {
	withURL := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.URL != "" {
			withURL = append(withURL, l)
		}
	}
	if len(withURL) == 0 {
		return nil
	}

	if err := pw.Clear(collectionID); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(withURL); i += batchSize {
		end := i + batchSize
		if end > len(withURL) {
			end = len(withURL)
		}
		if err := pw.insertBatch(collectionID, withURL[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(collectionID string, batch []*models.Listing) error {
	const cols = 14
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			collectionID, l.Source, l.Title, l.URL, l.Price, l.Neighborhood,
			l.Bedrooms, l.Sqft, l.PricePerSqft, l.DealScore, l.DiscountPct,
			l.PostedDate, l.Latitude, l.Longitude)
	}

	query := fmt.Sprintf(`
		INSERT INTO apartments (collection, source, title, url, price, neighborhood,
			bedrooms, sqft, price_per_sqft, deal_score, discount_pct,
			posted_date, latitude, longitude)
		VALUES %s
		ON CONFLICT (url) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchCollection retrieves a collection's stored snapshot.
func (pw *PostgresWriter) FetchCollection(collectionID string) ([]*models.Listing, error) {
	rows, err := pw.db.Query(`
		SELECT source, title, url, price, neighborhood,
			bedrooms, sqft, price_per_sqft, deal_score, discount_pct,
			posted_date, latitude, longitude
		FROM apartments
		WHERE collection = $1
		ORDER BY id
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch %s: %w", collectionID, err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l := &models.Listing{}
		var (
			bedrooms     sql.NullInt64
			sqft         sql.NullInt64
			pricePerSqft sql.NullFloat64
			dealScore    sql.NullInt64
			discountPct  sql.NullFloat64
			latitude     sql.NullFloat64
			longitude    sql.NullFloat64
		)
		if err := rows.Scan(
			&l.Source, &l.Title, &l.URL, &l.Price, &l.Neighborhood,
			&bedrooms, &sqft, &pricePerSqft, &dealScore, &discountPct,
			&l.PostedDate, &latitude, &longitude,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if bedrooms.Valid {
			l.Bedrooms = models.IntPtr(int(bedrooms.Int64))
		}
		if sqft.Valid {
			l.Sqft = models.IntPtr(int(sqft.Int64))
		}
		if pricePerSqft.Valid {
			l.PricePerSqft = models.FloatPtr(pricePerSqft.Float64)
		}
		if dealScore.Valid {
			l.DealScore = models.IntPtr(int(dealScore.Int64))
		}
		if discountPct.Valid {
			l.DiscountPct = models.FloatPtr(discountPct.Float64)
		}
		if latitude.Valid {
			l.Latitude = models.FloatPtr(latitude.Float64)
		}
		if longitude.Valid {
			l.Longitude = models.FloatPtr(longitude.Float64)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
