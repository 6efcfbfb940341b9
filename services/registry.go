package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/kendall-kelly/table-orders-api/ledger"
	"github.com/kendall-kelly/table-orders-api/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RegistryService registers tables and menu items
type RegistryService struct {
	db     *gorm.DB
	images ImageService
	log    *logrus.Logger
}

// NewRegistryService creates a registry. images may be nil, in which case menu
// photos are disabled.
func NewRegistryService(db *gorm.DB, images ImageService, log *logrus.Logger) *RegistryService {
	return &RegistryService{db: db, images: images, log: log}
}

// ImagesEnabled reports whether menu photos can be attached
func (s *RegistryService) ImagesEnabled() bool {
	return s.images != nil
}

// RegisterTable returns the table with the given code, creating it when it does
// not exist yet. created is false when the code was already registered.
func (s *RegistryService) RegisterTable(ctx context.Context, code string) (*models.Table, bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, false, fmt.Errorf("%w: table code is required", ErrInvalidRequest)
	}

	table := models.Table{Code: code}
	created, err := findOrCreate(ctx, s.db, &table, "code", code)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.log.WithFields(logrus.Fields{"table_id": table.ID, "code": code}).Info("table registered")
	}
	return &table, created, nil
}

// RegisterMenuItem returns the menu item with the given name, creating it when
// it does not exist yet
func (s *RegistryService) RegisterMenuItem(ctx context.Context, name string) (*models.MenuItem, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, fmt.Errorf("%w: menu item name is required", ErrInvalidRequest)
	}

	item := models.MenuItem{Name: name}
	created, err := findOrCreate(ctx, s.db, &item, "name", name)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.log.WithFields(logrus.Fields{"menu_id": item.ID, "name": name}).Info("menu item registered")
	}
	return &item, created, nil
}

// findOrCreate loads the row whose column equals value into row, inserting row
// when there is none. An insert that loses a race re-reads the winner.
func findOrCreate[T any](ctx context.Context, db *gorm.DB, row *T, column, value string) (bool, error) {
	conn := db.WithContext(ctx)

	err := conn.Where(column+" = ?", value).First(row).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("%w: %w", ledger.ErrInternal, err)
	}

	err = conn.Create(row).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, fmt.Errorf("%w: %w", ledger.ErrInternal, err)
	}

	if err := conn.Where(column+" = ?", value).First(row).Error; err != nil {
		return false, fmt.Errorf("%w: %w", ledger.ErrInternal, err)
	}
	return false, nil
}

// ListTables returns every registered table
func (s *RegistryService) ListTables(ctx context.Context) ([]models.Table, error) {
	tables := []models.Table{}
	if err := s.db.WithContext(ctx).Order("id").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrInternal, err)
	}
	return tables, nil
}

// ListMenuItems returns every registered menu item with its photo URL, if any
func (s *RegistryService) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrInternal, err)
	}
	for i := range items {
		s.resolveImageURL(ctx, &items[i])
	}
	return items, nil
}

// AttachMenuImage uploads a photo for the menu item and replaces the previous one
func (s *RegistryService) AttachMenuImage(ctx context.Context, menuID uint, fileHeader *multipart.FileHeader) (*models.MenuItem, error) {
	if s.images == nil {
		return nil, ErrImagesDisabled
	}

	var item models.MenuItem
	err := s.db.WithContext(ctx).First(&item, menuID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: menu item %d does not exist", ErrNotFound, menuID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrInternal, err)
	}

	key, err := s.images.UploadMenuImage(ctx, menuID, fileHeader)
	if err != nil {
		return nil, err
	}

	var previous string
	if item.ImageS3Key != nil {
		previous = *item.ImageS3Key
	}
	if err := s.db.WithContext(ctx).Model(&item).Update("image_s3_key", key).Error; err != nil {
		// the new object is orphaned; remove it so the bucket matches the table
		if delErr := s.images.DeleteImage(ctx, key); delErr != nil {
			s.log.WithFields(logrus.Fields{"key": key, "error": delErr}).Warn("failed to delete orphaned menu image")
		}
		return nil, fmt.Errorf("%w: %w", ledger.ErrInternal, err)
	}
	item.ImageS3Key = &key

	if previous != "" && previous != key {
		if err := s.images.DeleteImage(ctx, previous); err != nil {
			s.log.WithFields(logrus.Fields{"key": previous, "error": err}).Warn("failed to delete previous menu image")
		}
	}

	s.log.WithFields(logrus.Fields{"menu_id": menuID, "key": key}).Info("menu image attached")
	s.resolveImageURL(ctx, &item)
	return &item, nil
}

func (s *RegistryService) resolveImageURL(ctx context.Context, item *models.MenuItem) {
	if s.images == nil || item.ImageS3Key == nil {
		return
	}
	url, err := s.images.GetImageURL(ctx, *item.ImageS3Key)
	if err != nil {
		s.log.WithFields(logrus.Fields{"menu_id": item.ID, "error": err}).Warn("failed to resolve menu image URL")
		return
	}
	item.ImageURL = &url
}
