package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/teakhata/backend/internal/domain/partner"
	"github.com/teakhata/backend/internal/domain/shared"
	"github.com/teakhata/backend/internal/infrastructure/persistence/models"
)

// GormCustomerRepository implements partner.CustomerRepository using GORM.
// The customers table belongs to the upstream bookkeeping schema, so every
// method is a read.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// List returns all customers, most recently created first
func (r *GormCustomerRepository) List(ctx context.Context) ([]partner.Customer, error) {
	var rows []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return customersToDomain(rows), nil
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id string) (*partner.Customer, error) {
	var row models.CustomerModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	customer := row.ToDomain()
	return &customer, nil
}

// Search filters customers by a name, shop name or phone fragment. An empty
// query matches everyone, so callers can reuse Search for bounded listings.
func (r *GormCustomerRepository) Search(ctx context.Context, query string, limit int) ([]partner.Customer, error) {
	q := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Order("created_at DESC")

	if s := strings.TrimSpace(query); s != "" {
		pattern := "%" + s + "%"
		q = q.Where("full_name ILIKE ? OR shop_name ILIKE ? OR phone ILIKE ? OR whatsapp_phone ILIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []models.CustomerModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return customersToDomain(rows), nil
}

func customersToDomain(rows []models.CustomerModel) []partner.Customer {
	customers := make([]partner.Customer, len(rows))
	for i := range rows {
		customers[i] = rows[i].ToDomain()
	}
	return customers
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
