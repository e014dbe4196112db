package recordstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/models"
)

// PostgresStore persists records with GORM. SharedWith and the folder
// state are stored through the JSON serializer, so records round-trip with
// the same shape the JSON backend uses.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects and runs migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.FileRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Users() Users { return &pgUsers{db: s.db} }
func (s *PostgresStore) Files() Files { return &pgFiles{db: s.db} }

type pgUsers struct {
	db *gorm.DB
}

func (u *pgUsers) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := u.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (u *pgUsers) ByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &user, nil
}

func (u *pgUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &user, nil
}

func (u *pgUsers) Append(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

type pgFiles struct {
	db *gorm.DB
}

func (f *pgFiles) All(ctx context.Context) ([]models.FileRecord, error) {
	var recs []models.FileRecord
	if err := f.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (f *pgFiles) ByID(ctx context.Context, id string) (*models.FileRecord, error) {
	var rec models.FileRecord
	if err := f.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &rec, nil
}

func (f *pgFiles) ByOwner(ctx context.Context, ownerID string) ([]models.FileRecord, error) {
	var recs []models.FileRecord
	if err := f.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (f *pgFiles) SharedWith(ctx context.Context, email string) ([]models.FileRecord, error) {
	// SharedWith lives in a serialized JSON column; grant lists are tiny
	// for a personal deployment, so filter here instead of depending on
	// dialect-specific JSON operators.
	recs, err := f.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.FileRecord
	for _, r := range recs {
		if r.SharedWith.Contains(email) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *pgFiles) Append(ctx context.Context, rec *models.FileRecord) error {
	return f.db.WithContext(ctx).Create(rec).Error
}

func (f *pgFiles) Replace(ctx context.Context, id string, rec *models.FileRecord) error {
	res := f.db.WithContext(ctx).Model(&models.FileRecord{}).
		Where("id = ?", id).
		Select("*").Omit("id", "created_at").
		Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (f *pgFiles) Delete(ctx context.Context, id string) error {
	return f.db.WithContext(ctx).Delete(&models.FileRecord{}, "id = ?", id).Error
}

func mapGormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	return err
}
