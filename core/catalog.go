package core

import (
	"errors"

	"gorm.io/gorm"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// CatalogStore is the authoritative record store for parts and services.
// It has no side effects beyond its own tables; stock movement driven by
// orders goes through the StockLedger instead.
type CatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore creates a catalog store over the given database.
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func validatePart(part *models.Part) error {
	if part.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if part.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if part.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	return nil
}

func validateService(service *models.Service) error {
	if service.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if service.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if service.DurationHours <= 0 {
		return &ValidationError{Field: "duration", Reason: "must be positive"}
	}
	return nil
}

// CreatePart validates and persists a new part.
func (s *CatalogStore) CreatePart(part *models.Part) error {
	if err := validatePart(part); err != nil {
		return err
	}
	return s.db.Create(part).Error
}

// GetPart returns the part with the given id.
func (s *CatalogStore) GetPart(id uint) (*models.Part, error) {
	return getPart(s.db, id)
}

func getPart(tx *gorm.DB, id uint) (*models.Part, error) {
	var part models.Part
	if err := tx.First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "part", ID: id}
		}
		return nil, err
	}
	return &part, nil
}

// ListParts returns all parts ordered by name.
func (s *CatalogStore) ListParts() ([]models.Part, error) {
	var parts []models.Part
	if err := s.db.Order("name").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

// UpdatePart replaces the mutable fields of a part. The stock quantity is
// deliberately not touched here; restocks go through Restock so that the
// ledger's conservation law stays checkable.
func (s *CatalogStore) UpdatePart(id uint, upd *models.Part) (*models.Part, error) {
	if err := validatePart(upd); err != nil {
		return nil, err
	}
	part, err := getPart(s.db, id)
	if err != nil {
		return nil, err
	}
	part.Name = upd.Name
	part.Price = upd.Price
	part.Supplier = upd.Supplier
	if err := s.db.Model(part).Updates(map[string]interface{}{
		"name":     part.Name,
		"price":    part.Price,
		"supplier": part.Supplier,
	}).Error; err != nil {
		return nil, err
	}
	return part, nil
}

// Restock adds qty units to a part's stock.
func (s *CatalogStore) Restock(id uint, qty int) (*models.Part, error) {
	if qty <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	var part *models.Part
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if part, err = getPart(tx, id); err != nil {
			return err
		}
		res := tx.Model(&models.Part{}).
			Where("part_id = ?", id).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", qty))
		if res.Error != nil {
			return res.Error
		}
		part.Quantity += qty
		return nil
	})
	if err != nil {
		return nil, err
	}
	return part, nil
}

// DeletePart removes a part. Parts still held by active reservations
// cannot be deleted, otherwise cancelling those orders would credit stock
// back into a void.
func (s *CatalogStore) DeletePart(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := getPart(tx, id); err != nil {
			return err
		}
		var active int64
		err := tx.Model(&models.StockReservation{}).
			Where("part_id = ? AND status = ?", id, models.ReservationActive).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return &ConflictError{Reason: "part is reserved by open orders"}
		}
		return tx.Delete(&models.Part{}, id).Error
	})
}

// CreateService validates and persists a new service.
func (s *CatalogStore) CreateService(service *models.Service) error {
	if err := validateService(service); err != nil {
		return err
	}
	return s.db.Create(service).Error
}

// GetService returns the service with the given id.
func (s *CatalogStore) GetService(id uint) (*models.Service, error) {
	return getService(s.db, id)
}

func getService(tx *gorm.DB, id uint) (*models.Service, error) {
	var service models.Service
	if err := tx.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "service", ID: id}
		}
		return nil, err
	}
	return &service, nil
}

// ListServices returns all services ordered by name.
func (s *CatalogStore) ListServices() ([]models.Service, error) {
	var services []models.Service
	if err := s.db.Order("name").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// UpdateService replaces the mutable fields of a service.
func (s *CatalogStore) UpdateService(id uint, upd *models.Service) (*models.Service, error) {
	if err := validateService(upd); err != nil {
		return nil, err
	}
	service, err := getService(s.db, id)
	if err != nil {
		return nil, err
	}
	service.Name = upd.Name
	service.Price = upd.Price
	service.DurationHours = upd.DurationHours
	if err := s.db.Model(service).Updates(map[string]interface{}{
		"name":     service.Name,
		"price":    service.Price,
		"duration": service.DurationHours,
	}).Error; err != nil {
		return nil, err
	}
	return service, nil
}

// DeleteService removes a service.
func (s *CatalogStore) DeleteService(id uint) error {
	if _, err := getService(s.db, id); err != nil {
		return err
	}
	return s.db.Delete(&models.Service{}, id).Error
}
