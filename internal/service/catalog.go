package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mmeshcher/cafe-order-system/internal/model"
	"github.com/mmeshcher/cafe-order-system/internal/validation"
)

// ListMenu возвращает меню с агрегатами отзывов. Поиск по названию
// регистронезависимый; при userID > 0 проставляется признак избранного.
func (s *Service) ListMenu(ctx context.Context, search string, userID int64) ([]model.MenuItem, error) {
	return s.repo.ListMenuItems(ctx, search, userID)
}

// GetMenuItem возвращает позицию меню с агрегатами отзывов.
func (s *Service) GetMenuItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

// CreateMenuItem создаёт позицию меню. Если переданы байты изображения,
// оно сначала загружается в блоб-хранилище, а позиция получает публичный URL.
// Админская операция.
func (s *Service) CreateMenuItem(ctx context.Context, item model.MenuItem, image []byte, imageName string) (int64, error) {
	if err := validateMenuItem(item); err != nil {
		return 0, err
	}

	if len(image) > 0 {
		url, err := s.uploadImage(ctx, image, imageName)
		if err != nil {
			return 0, err
		}
		item.ImageURL = url
	}

	return s.repo.CreateMenuItem(ctx, item)
}

// UpdateMenuItem обновляет позицию меню, включая признак доступности.
// Новое изображение заменяет URL, пустое — оставляет прежний. Исторические
// заказы не меняются: их строки — снимок на момент оформления.
func (s *Service) UpdateMenuItem(ctx context.Context, item model.MenuItem, image []byte, imageName string) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}

	if len(image) > 0 {
		url, err := s.uploadImage(ctx, image, imageName)
		if err != nil {
			return err
		}
		item.ImageURL = url
	}

	return s.repo.UpdateMenuItem(ctx, item)
}

// DeleteMenuItem удаляет позицию меню. Админская операция.
func (s *Service) DeleteMenuItem(ctx context.Context, id int64) error {
	return s.repo.DeleteMenuItem(ctx, id)
}

func validateMenuItem(item model.MenuItem) error {
	if !validation.IsValidCategory(item.Category) {
		return ErrInvalidCategory
	}
	if item.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (s *Service) uploadImage(ctx context.Context, image []byte, imageName string) (string, error) {
	if s.uploads == nil {
		return "", ErrUploadsDisabled
	}

	filename := fmt.Sprintf("%d_%s", time.Now().Unix(), imageName)
	url, err := s.uploads.Upload(ctx, image, filename)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}
