package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/pitstop-servix/internal/domain/appointment"
	"github.com/BruksfildServices01/pitstop-servix/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Garage
// --------------------------------------------------

func (r *AppointmentGormRepository) GetGarageByID(
	ctx context.Context,
	id uint,
) (*models.Garage, error) {

	var g models.Garage
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&g, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *AppointmentGormRepository) GetGarageByOwner(
	ctx context.Context,
	ownerID uint,
) (*models.Garage, error) {

	var g models.Garage
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&g).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCustomerByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("CustomerProfile").
		First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Garage", "Customer").Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withRelations(ctx).First(&ap, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Garage", "Customer").Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.withRelations(ctx)

	if filter.GarageID != nil {
		q = q.Where("garage_id = ?", *filter.GarageID)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}

	var apps []models.Appointment
	if err := q.
		Order("appointment_date ASC").
		Order("id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Garage").
		Preload("Garage.Owner").
		Preload("Customer").
		Preload("Customer.CustomerProfile")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
