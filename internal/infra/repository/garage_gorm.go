package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/pitstop-servix/internal/models"
)

type GarageGormRepository struct {
	db *gorm.DB
}

func NewGarageGormRepository(db *gorm.DB) *GarageGormRepository {
	return &GarageGormRepository{db: db}
}

// --------------------------------------------------
// Public listing (approved only)
// --------------------------------------------------

func (r *GarageGormRepository) ListApproved(ctx context.Context) ([]models.Garage, error) {
	var garages []models.Garage
	if err := r.approved(ctx).
		Order("garage_name ASC").
		Find(&garages).Error; err != nil {
		return nil, err
	}
	return garages, nil
}

// SearchApproved matches garage names containing name, ignoring case.
func (r *GarageGormRepository) SearchApproved(ctx context.Context, name string) ([]models.Garage, error) {
	like := "%" + escapeLike(strings.ToLower(strings.TrimSpace(name))) + "%"

	var garages []models.Garage
	if err := r.approved(ctx).
		Where("LOWER(garage_name) LIKE ?", like).
		Order("garage_name ASC").
		Find(&garages).Error; err != nil {
		return nil, err
	}
	return garages, nil
}

func (r *GarageGormRepository) GetApproved(ctx context.Context, id uint) (*models.Garage, error) {
	var g models.Garage
	if err := r.approved(ctx).First(&g, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

// --------------------------------------------------
// Management
// --------------------------------------------------

func (r *GarageGormRepository) Get(ctx context.Context, id uint) (*models.Garage, error) {
	var g models.Garage
	if err := r.db.WithContext(ctx).Preload("Owner").First(&g, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *GarageGormRepository) GetByOwner(ctx context.Context, ownerID uint) (*models.Garage, error) {
	var g models.Garage
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		First(&g).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *GarageGormRepository) ListPending(ctx context.Context) ([]models.Garage, error) {
	var garages []models.Garage
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("approved = ?", false).
		Order("created_at ASC").
		Find(&garages).Error; err != nil {
		return nil, err
	}
	return garages, nil
}

func (r *GarageGormRepository) Save(ctx context.Context, g *models.Garage) error {
	return r.db.WithContext(ctx).Omit("Owner").Save(g).Error
}

func (r *GarageGormRepository) approved(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Owner").
		Where("approved = ?", true)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
