package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/programthis/order-cart-service/internal/domains/cart/domain"
	"github.com/programthis/order-cart-service/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists cart aggregates in PostgreSQL using GORM. A cart line
// is addressed by (cart_id, product_id); the unique index on user_id keeps
// concurrent first accesses from creating duplicate carts.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type cartRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:idx_shopping_carts_user"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartRecord) TableName() string { return "shopping_carts" }

type cartLineRecord struct {
	CartID          int64           `gorm:"primaryKey;column:cart_id"`
	ProductID       int64           `gorm:"primaryKey;column:product_id"`
	Quantity        int32           `gorm:"column:quantity"`
	PriceAtAddition decimal.Decimal `gorm:"column:price_at_addition;type:numeric(10,2)"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (cartLineRecord) TableName() string { return "cart_items" }

// FindByUser loads the user's cart with its lines.
func (r *Repository) FindByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartRecord
	if err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var lines []cartLineRecord
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", record.ID).
		Order("created_at, product_id").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return record.toDomain(lines), nil
}

// GetOrCreate returns the user's cart, inserting an empty one when absent.
// A duplicate-key failure means another request created the cart first, so
// the insert falls back to a re-read.
func (r *Repository) GetOrCreate(ctx context.Context, userID int64) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if _, err := domain.NewCart(userID); err != nil {
		return nil, err
	}
	cart, err := r.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	record := cartRecord{UserID: userID}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByUser(ctx, userID)
		}
		return nil, err
	}
	return record.toDomain(nil), nil
}

// Save writes the full aggregate in one transaction: the cart row is touched
// to advance updated_at, removed lines are deleted, and remaining lines are
// upserted keyed on (cart_id, product_id).
func (r *Repository) Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	if cart.ID == 0 {
		return nil, errors.New("cart has no id; load it through GetOrCreate first")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&cartRecord{}).
			Where("id = ?", cart.ID).
			Update("updated_at", gorm.Expr("NOW()")).Error; err != nil {
			return err
		}
		del := tx.Where("cart_id = ?", cart.ID)
		if len(cart.Lines) > 0 {
			keep := make([]int64, 0, len(cart.Lines))
			for _, line := range cart.Lines {
				keep = append(keep, line.ProductID)
			}
			del = del.Where("product_id NOT IN ?", keep)
		}
		if err := del.Delete(&cartLineRecord{}).Error; err != nil {
			return err
		}
		for _, line := range cart.Lines {
			record := cartLineRecord{
				CartID:          cart.ID,
				ProductID:       line.ProductID,
				Quantity:        line.Quantity,
				PriceAtAddition: line.PriceAtAddition,
				CreatedAt:       line.CreatedAt,
				UpdatedAt:       line.UpdatedAt,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"quantity":          record.Quantity,
					"price_at_addition": record.PriceAtAddition,
					"updated_at":        gorm.Expr("NOW()"),
				}),
			}).Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByUser(ctx, cart.UserID)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}

func (r cartRecord) toDomain(lines []cartLineRecord) *domain.Cart {
	cart := &domain.Cart{
		ID:        r.ID,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	for _, line := range lines {
		cart.Lines = append(cart.Lines, domain.Line{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtAddition: line.PriceAtAddition,
			CreatedAt:       line.CreatedAt,
			UpdatedAt:       line.UpdatedAt,
		})
	}
	return cart
}
