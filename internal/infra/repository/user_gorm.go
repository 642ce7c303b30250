package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/pitstop-servix/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.withRelations(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserGormRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.withRelations(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserGormRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// CreateCustomer stores the user and its profile in one transaction.
func (r *UserGormRepository) CreateCustomer(
	ctx context.Context,
	u *models.User,
	profile *models.CustomerProfile,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("CustomerProfile", "Garage").Create(u).Error; err != nil {
			return err
		}
		profile.UserID = u.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		u.CustomerProfile = profile
		return nil
	})
}

// CreateGarageOwner stores the owner and the unapproved garage together.
func (r *UserGormRepository) CreateGarageOwner(
	ctx context.Context,
	u *models.User,
	garage *models.Garage,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("CustomerProfile", "Garage").Create(u).Error; err != nil {
			return err
		}
		garage.OwnerID = u.ID
		garage.Approved = false
		if err := tx.Omit("Owner").Create(garage).Error; err != nil {
			return err
		}
		u.Garage = garage
		return nil
	})
}

// ListGarageCustomers returns the customers who booked at garageID,
// optionally filtered by name or email.
func (r *UserGormRepository) ListGarageCustomers(
	ctx context.Context,
	garageID uint,
	query string,
) ([]models.User, error) {

	q := r.withRelations(ctx).
		Where("users.id IN (?)",
			r.db.Model(&models.Appointment{}).
				Select("customer_id").
				Where("garage_id = ?", garageID),
		)

	if query = strings.ToLower(strings.TrimSpace(query)); query != "" {
		like := "%" + escapeLike(query) + "%"
		q = q.Where(
			"LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ?",
			like, like,
		)
	}

	var users []models.User
	if err := q.Order("users.name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserGormRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("CustomerProfile").
		Preload("Garage")
}
