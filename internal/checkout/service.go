package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xypherlux/storefront-backend/internal/cart"
	"github.com/xypherlux/storefront-backend/internal/mailer"
	"github.com/xypherlux/storefront-backend/internal/orders"
	"github.com/xypherlux/storefront-backend/pkg/db/models"
	"github.com/xypherlux/storefront-backend/pkg/enums"
	pkgerrors "github.com/xypherlux/storefront-backend/pkg/errors"
	"github.com/xypherlux/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

const orderNumberAttempts = 5

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service turns an active cart into an immutable order.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*orders.OrderDTO, error)
}

type service struct {
	tx         txRunner
	cartRepo   cart.CartRepository
	ordersRepo *orders.Repository
	users      userLoader
	pricer     *cart.Pricer
	mail       mailer.Sender
	logg       *logger.Logger
}

// NewService builds a checkout service backed by the provided stack.
func NewService(
	tx txRunner,
	cartRepo cart.CartRepository,
	ordersRepo *orders.Repository,
	users userLoader,
	pricer *cart.Pricer,
	mail mailer.Sender,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:         tx,
		cartRepo:   cartRepo,
		ordersRepo: ordersRepo,
		users:      users,
		pricer:     pricer,
		mail:       mail,
		logg:       logg,
	}, nil
}

// PlaceOrderInput carries the shipping details collected at checkout.
type PlaceOrderInput struct {
	ShippingAddress string
	City            string
	Country         string
}

// PlaceOrder snapshots the active cart into an order inside a single
// transaction. Stock is decremented conditionally per line; any line that
// cannot be covered fails the whole checkout and nothing is committed.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*orders.OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(input.ShippingAddress) == "" ||
		strings.TrimSpace(input.City) == "" ||
		strings.TrimSpace(input.Country) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address, city and country are required")
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		record, err := cartRepo.FindActiveByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(record.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		items := make([]models.OrderItem, 0, len(record.Items))
		for _, line := range record.Items {
			if line.Product == nil {
				return pkgerrors.New(pkgerrors.CodeConflict, "cart references a removed product")
			}
			if !line.Product.IsActive {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("%s is no longer available", line.Product.Name))
			}

			res := tx.WithContext(ctx).Exec(
				"UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?",
				line.Quantity, line.ProductID, line.Quantity,
			)
			if res.Error != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "reserve stock")
			}
			if res.RowsAffected == 0 {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("insufficient stock for %s", line.Product.Name)).
					WithDetails(map[string]any{"product_id": line.ProductID})
			}

			productID := line.ProductID
			items = append(items, models.OrderItem{
				ProductID:   &productID,
				ProductName: line.Product.Name,
				Price:       line.Product.Price,
				Quantity:    line.Quantity,
				Size:        line.Size,
				Color:       line.Color,
			})
		}

		number, err := s.freshOrderNumber(ctx, ordersRepo)
		if err != nil {
			return err
		}

		totals := s.pricer.Compute(record.Items)
		order := &models.Order{
			UserID:          userID,
			OrderNumber:     number,
			Status:          enums.OrderStatusPending,
			Subtotal:        totals.Subtotal,
			ShippingCost:    totals.Shipping,
			Tax:             totals.Tax,
			Total:           totals.Total,
			ShippingAddress: strings.TrimSpace(input.ShippingAddress),
			City:            strings.TrimSpace(input.City),
			Country:         strings.TrimSpace(input.Country),
			Items:           items,
		}
		if _, err := ordersRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if err := cartRepo.ClearItems(ctx, record.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		if err := cartRepo.Deactivate(ctx, record.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close cart")
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, userID, placed)

	dto := orders.ToOrderDTO(*placed)
	return &dto, nil
}

func (s *service) freshOrderNumber(ctx context.Context, repo *orders.Repository) (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		candidate := orders.NewOrderNumber()
		taken, err := repo.OrderNumberExists(ctx, candidate)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check order number")
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "could not allocate order number")
}

// sendConfirmation emails the receipt after commit. Delivery failures are
// logged, never surfaced to the buyer.
func (s *service) sendConfirmation(ctx context.Context, userID uuid.UUID, order *models.Order) {
	if s.mail == nil {
		return
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logg.Error(ctx, "load user for order confirmation", err)
		return
	}
	msg := mailer.Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Order confirmation %s", order.OrderNumber),
		Body: fmt.Sprintf(
			"Hi %s,\n\nThanks for your order %s. Total charged: %s.\n\nWe will let you know once it ships.",
			user.FirstName, order.OrderNumber, order.Total.StringFixed(2),
		),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		s.logg.Error(ctx, "send order confirmation email", err)
	}
}
