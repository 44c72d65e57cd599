package service

import (
	"context"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

// OrderPaymentQR возвращает PNG с QR-кодом оплаты заказа. Доступно только
// для заказов со способом оплаты QRIS; код статический, без интеграции с
// платёжным шлюзом.
func (s *Service) OrderPaymentQR(ctx context.Context, orderID, userID int64, role model.Role) ([]byte, error) {
	order, err := s.GetOrder(ctx, orderID, userID, role)
	if err != nil {
		return nil, err
	}

	if order.PaymentMethod != model.PaymentQRIS {
		return nil, ErrQRNotAvailable
	}

	payload := fmt.Sprintf("CAFE-DEHH|order:%d|amount:%d", order.ID, order.Total)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	return png, nil
}
