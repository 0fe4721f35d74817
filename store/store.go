// Package store persists hoods and houses in a SQL database.
//
// Postgres is used for postgres DSNs ("postgres://...", "host=..."), anything
// else is the path of a sqlite database file.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/etnz/happyhood"
	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a hood or a house does not exist.
var ErrNotFound = errors.New("not found")

// Store is the record store of hoods and houses.
type Store struct {
	db *gorm.DB
}

var _ happyhood.IdentifierStore = (*Store)(nil)

// Open connects to the database at dsn and migrates its schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(dialector(dsn), &gorm.Config{
		Logger: logger.New(log.New(os.Stderr, "", log.LstdFlags), logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return New(db)
}

// dialector selects the database driver for dsn.
func dialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return postgres.Open(dsn)
	default:
		return gormlite.Open(dsn)
	}
}

// New returns a store using an already opened database, after migrating its schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Hood{}, &House{}); err != nil {
		return nil, fmt.Errorf("cannot migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying connection.
func (s *Store) DB() *gorm.DB { return s.db }

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// houseOrder keeps houses in a stable order, so that hood totals are deterministic.
func houseOrder(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }

// CreateHood creates a new empty hood.
func (s *Store) CreateHood(ctx context.Context, name string) (*happyhood.Hood, error) {
	if name == "" {
		return nil, errors.New("a hood needs a name")
	}
	hood := happyhood.NewHood(name)
	if err := s.db.WithContext(ctx).Create(&Hood{ID: hood.ID, Name: hood.Name}).Error; err != nil {
		return nil, fmt.Errorf("cannot create hood %q: %w", name, err)
	}
	return hood, nil
}

// Hoods returns all hoods, by name, with their houses.
func (s *Store) Hoods(ctx context.Context) ([]*happyhood.Hood, error) {
	var records []Hood
	err := s.db.WithContext(ctx).Preload("Houses", houseOrder).Order("name").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("cannot load hoods: %w", err)
	}
	hoods := make([]*happyhood.Hood, 0, len(records))
	for i := range records {
		hood, err := records[i].toHood()
		if err != nil {
			return nil, err
		}
		hoods = append(hoods, hood)
	}
	return hoods, nil
}

// Hood returns the hood named name, with its houses.
func (s *Store) Hood(ctx context.Context, name string) (*happyhood.Hood, error) {
	var record Hood
	err := s.db.WithContext(ctx).Preload("Houses", houseOrder).First(&record, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("hood %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot load hood %q: %w", name, err)
	}
	return record.toHood()
}

// AddHouse creates a new house in hood.
func (s *Store) AddHouse(ctx context.Context, hood *happyhood.Hood, addr happyhood.Address) (*happyhood.House, error) {
	house := hood.AddHouse(happyhood.NewHouse(addr))
	if err := s.db.WithContext(ctx).Create(fromHouse(house)).Error; err != nil {
		hood.Houses = hood.Houses[:len(hood.Houses)-1]
		return nil, fmt.Errorf("cannot create house %q: %w", addr, err)
	}
	return house, nil
}

// House returns the house with the given ID.
func (s *Store) House(ctx context.Context, id uuid.UUID) (*happyhood.House, error) {
	var record House
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("house %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot load house %s: %w", id, err)
	}
	return record.toHouse()
}

// FindHouses returns the houses matching every non empty field of filter.
//
// A zero filter returns all houses.
func (s *Store) FindHouses(ctx context.Context, filter happyhood.Address) ([]*happyhood.House, error) {
	var records []House
	// struct conditions skip zero fields.
	err := houseOrder(s.db.WithContext(ctx)).Where(&House{Address: filter}).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("cannot find houses: %w", err)
	}
	return toHouses(records)
}

// HousesMissingExternalID returns the houses without a zpid.
func (s *Store) HousesMissingExternalID(ctx context.Context) ([]*happyhood.House, error) {
	var records []House
	err := houseOrder(s.db.WithContext(ctx)).Where("zpid IS NULL").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("cannot find houses without zpid: %w", err)
	}
	return toHouses(records)
}

// SaveValuations saves the whole valuation history of a house.
//
// It fails with happyhood.ErrCurrencyMismatch, and saves nothing, if the
// house is not valued in the currency of the other houses of its hood.
func (s *Store) SaveValuations(ctx context.Context, h *happyhood.House) error {
	if err := s.checkCurrency(ctx, h); err != nil {
		return err
	}
	return s.update(ctx, h, "price_history", fromHouse(h).PriceHistory)
}

// checkCurrency fails if h cannot be summed with the other houses of its hood.
func (s *Store) checkCurrency(ctx context.Context, h *happyhood.House) error {
	want, err := h.Currency()
	if err != nil || want == "" {
		return err
	}
	var records []House
	err = s.db.WithContext(ctx).Where("hood_id = ? AND id <> ?", h.HoodID, h.ID).Find(&records).Error
	if err != nil {
		return fmt.Errorf("cannot load the hood of house %s: %w", h.ID, err)
	}
	others, err := toHouses(records)
	if err != nil {
		return err
	}
	for _, other := range others {
		got, err := other.Currency()
		if err != nil {
			return err
		}
		if got != "" && got != want {
			return fmt.Errorf("%s valued in %s but its hood is in %s: %w", h, want, got, happyhood.ErrCurrencyMismatch)
		}
	}
	return nil
}

// SaveExternalID saves the zpid of a house.
func (s *Store) SaveExternalID(ctx context.Context, h *happyhood.House) error {
	return s.update(ctx, h, "zpid", fromHouse(h).Zpid)
}

func (s *Store) update(ctx context.Context, h *happyhood.House, column string, value any) error {
	res := s.db.WithContext(ctx).Model(&House{ID: h.ID}).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("cannot save %s of house %s: %w", column, h.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("house %s: %w", h.ID, ErrNotFound)
	}
	return nil
}

func toHouses(records []House) ([]*happyhood.House, error) {
	houses := make([]*happyhood.House, 0, len(records))
	for i := range records {
		h, err := records[i].toHouse()
		if err != nil {
			return nil, err
		}
		houses = append(houses, h)
	}
	return houses, nil
}
