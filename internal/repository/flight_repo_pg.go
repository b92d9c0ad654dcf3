package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightdash/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Error kinds surfaced by the repository. The API boundary maps them all to
// the same generic HTTP 500 shape; logs keep the distinction.
var (
	ErrConnect = errors.New("database connection failed")
	ErrQuery   = errors.New("query failed")
	ErrConvert = errors.New("row conversion failed")
)

// isoDateTime renders timestamps without a zone offset, the form the
// dashboard expects for the date column.
const isoDateTime = "2006-01-02T15:04:05"

// "from" and "to" are reserved words, hence the quoting.
const listFlightsQuery = `SELECT id, date, "from", "to", price, duration FROM flights ORDER BY date ASC`

type FlightRepository interface {
	List(ctx context.Context) ([]domain.FlightRecord, error)
	ServerVersion(ctx context.Context) (string, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.FlightRecord, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, listFlightsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, 0, len(fields))
	for _, fd := range fields {
		columns = append(columns, fd.Name)
	}

	records := make([]domain.FlightRecord, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		record, err := rowToRecord(columns, values)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return records, nil
}

func (r *PGFlightRepository) ServerVersion(ctx context.Context) (string, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnect, err)
	}
	defer conn.Release()

	if err := conn.Ping(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnect, err)
	}

	var version string
	if err := conn.QueryRow(ctx, `SELECT version()`).Scan(&version); err != nil {
		return "", fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return version, nil
}

// rowToRecord zips column names with normalized values, keeping the query's
// column order.
func rowToRecord(columns []string, values []any) (domain.FlightRecord, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("%w: %d columns, %d values", ErrConvert, len(columns), len(values))
	}
	record := make(domain.FlightRecord, 0, len(columns))
	for i, col := range columns {
		v, err := normalizeValue(values[i])
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %v", ErrConvert, col, err)
		}
		record = append(record, domain.Field{Name: col, Value: v})
	}
	return record, nil
}

// normalizeValue converts a driver value into a JSON scalar: timestamps
// become ISO-8601 strings, decimals become float64, NULL stays null.
func normalizeValue(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return val.Format(isoDateTime), nil
	case pgtype.Numeric:
		if !val.Valid {
			return nil, nil
		}
		f, err := val.Float64Value()
		if err != nil {
			return nil, err
		}
		if !f.Valid {
			return nil, nil
		}
		return f.Float64, nil
	case []byte:
		return string(val), nil
	default:
		return val, nil
	}
}

var _ FlightRepository = (*PGFlightRepository)(nil)
