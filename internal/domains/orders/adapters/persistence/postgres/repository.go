package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/programthis/order-cart-service/internal/domains/orders/domain"
	"github.com/programthis/order-cart-service/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists order aggregates in PostgreSQL using GORM. Lines are
// written with the order in one transaction and deleted explicitly when the
// order is deleted.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID              int64           `gorm:"primaryKey;column:id"`
	UserID          int64           `gorm:"column:user_id;index:idx_orders_user_date"`
	OrderDate       time.Time       `gorm:"column:order_date;index:idx_orders_user_date"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(10,2)"`
	Status          string          `gorm:"column:status;type:varchar(32)"`
	ShippingAddress string          `gorm:"column:shipping_address"`
	PaymentMethod   string          `gorm:"column:payment_method"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderLineRecord struct {
	OrderID     int64           `gorm:"primaryKey;column:order_id"`
	Position    int32           `gorm:"primaryKey;column:position"`
	ProductID   int64           `gorm:"column:product_id"`
	ProductName string          `gorm:"column:product_name"`
	Quantity    int32           `gorm:"column:quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2)"`
	Subtotal    decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

func (orderLineRecord) TableName() string { return "order_items" }

// Save inserts a new order with its lines, or updates the mutable columns of
// an existing one. Lines are immutable once the order exists.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if record.ID == 0 {
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			for i, line := range order.Lines {
				lineRecord := orderLineRecord{
					OrderID:     record.ID,
					Position:    int32(i + 1),
					ProductID:   line.ProductID,
					ProductName: line.ProductName,
					Quantity:    line.Quantity,
					UnitPrice:   line.UnitPrice,
					Subtotal:    line.Subtotal,
				}
				if err := tx.Create(&lineRecord).Error; err != nil {
					return err
				}
			}
			return nil
		}
		result := tx.Model(&orderRecord{}).
			Where("id = ?", record.ID).
			Updates(map[string]any{
				"status":     record.Status,
				"updated_at": gorm.Expr("NOW()"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order with its lines in creation order.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var lines []orderLineRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("position").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return record.toDomain(lines), nil
}

// FindByUser returns the user's orders, most recent order date first.
func (r *Repository) FindByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []*domain.Order{}, nil
	}
	ids := make([]int64, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	var lines []orderLineRecord
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", ids).
		Order("order_id, position").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[int64][]orderLineRecord, len(records))
	for _, line := range lines {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
	}
	orders := make([]*domain.Order, 0, len(records))
	for _, record := range records {
		orders = append(orders, record.toDomain(byOrder[record.ID]))
	}
	return orders, nil
}

// Delete removes an order and cascades to its lines in one transaction.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&orderLineRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&orderRecord{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:              order.ID,
		UserID:          order.UserID,
		OrderDate:       order.OrderDate,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
	}
}

func (r orderRecord) toDomain(lines []orderLineRecord) *domain.Order {
	order := &domain.Order{
		ID:              r.ID,
		UserID:          r.UserID,
		OrderDate:       r.OrderDate,
		TotalAmount:     r.TotalAmount,
		Status:          domain.Status(r.Status),
		ShippingAddress: r.ShippingAddress,
		PaymentMethod:   r.PaymentMethod,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for _, line := range lines {
		order.Lines = append(order.Lines, domain.Line{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	return order
}
