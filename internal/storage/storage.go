// Package storage implements the label pipeline's persistence boundary on
// PostgreSQL. The parcel-number uniqueness invariant lives here, as unique
// indexes the orchestrator can probe by saving and watching for
// gls.ErrParcelNumberTaken.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tournevent/gls/pkg/gls"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgErrUniqueViolation is SQLSTATE class 23 unique_violation.
const pgErrUniqueViolation = "23505"

// Store is the GORM-backed implementation of gls.Store.
type Store struct {
	db     *gorm.DB
	logger *otelzap.Logger
}

// Open connects to PostgreSQL and runs migrations. Connection attempts are
// retried briefly so the service survives a database that is still coming
// up.
func Open(dsn string, logger *otelzap.Logger) (*Store, error) {
	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= 5; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		logger.Warn("Database connection failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	store := &Store{db: db, logger: logger}
	if err := store.migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

// NewWithDB wraps an existing GORM handle, for tests.
func NewWithDB(db *gorm.DB, logger *otelzap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) migrate() error {
	if err := s.db.AutoMigrate(&ShipmentRecord{}, &PackageRecord{}, &ParcelClaimRecord{}, &AttachmentRecord{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// FindShipment loads a shipment and its packages in code order.
func (s *Store) FindShipment(ctx context.Context, id string) (*gls.Shipment, error) {
	var rec ShipmentRecord
	err := s.db.WithContext(ctx).
		Preload("Packages", func(db *gorm.DB) *gorm.DB { return db.Order("code") }).
		First(&rec, "shipment_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", gls.ErrShipmentNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading shipment %s: %w", id, err)
	}
	return recordToShipment(&rec), nil
}

// SaveShipment upserts the shipment row in one transaction with its
// parcel-number claim. A number already claimed by another owner comes back
// as gls.ErrParcelNumberTaken.
func (s *Store) SaveShipment(ctx context.Context, shipment *gls.Shipment) error {
	rec := shipmentToRecord(shipment)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A shipment with packages only mirrors its first package's number;
		// the claim belongs to the package row.
		if len(shipment.Packages) == 0 {
			if err := claimParcelNumber(tx, rec.ParcelNumber, "shipment:"+shipment.ID); err != nil {
				return err
			}
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shipment_id"}},
			UpdateAll: true,
		}).
			Omit("Packages").
			Create(rec).Error
	})
	return s.mapSaveError(err, "shipment", shipment.ID)
}

// SavePackage upserts one package row, same collision contract as
// SaveShipment.
func (s *Store) SavePackage(ctx context.Context, pkg *gls.Package) error {
	rec := packageToRecord(pkg)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := claimParcelNumber(tx, rec.ParcelNumber, "package:"+pkg.ID); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "package_id"}},
			UpdateAll: true,
		}).
			Create(rec).Error
	})
	return s.mapSaveError(err, "package", pkg.ID)
}

// claimParcelNumber inserts the number into the global claims table. Every
// save path goes through here, so uniqueness holds across shipments and
// packages rather than per table. Re-claiming under the same owner is a
// no-op; a foreign owner surfaces as a duplicated key.
func claimParcelNumber(tx *gorm.DB, number *string, owner string) error {
	if number == nil {
		return nil
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "parcel_number"}},
		DoNothing: true,
	}).Create(&ParcelClaimRecord{Number: *number, OwnerID: owner})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var existing ParcelClaimRecord
	if err := tx.First(&existing, "parcel_number = ?", *number).Error; err != nil {
		return err
	}
	if existing.OwnerID != owner {
		return gorm.ErrDuplicatedKey
	}
	return nil
}

// Attach stores a rendered label artifact linked to a shipment. Attachments
// are immutable; a duplicate name means the artifact already exists and is
// kept as-is.
func (s *Store) Attach(ctx context.Context, name string, data []byte, shipmentID string) error {
	rec := &AttachmentRecord{
		ID:         uuid.New().String(),
		Name:       name,
		ShipmentID: shipmentID,
		Data:       data,
		CreatedAt:  time.Now(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(rec).Error
	if err != nil {
		return fmt.Errorf("storing attachment %s: %w", name, err)
	}
	return nil
}

func (s *Store) mapSaveError(err error, kind, id string) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s %s", gls.ErrParcelNumberTaken, kind, id)
	}
	return fmt.Errorf("saving %s %s: %w", kind, id, err)
}

// isUniqueViolation matches both GORM's translated error and the raw
// PostgreSQL SQLSTATE, since TranslateError does not cover every driver
// path.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

var _ gls.Store = (*Store)(nil)
