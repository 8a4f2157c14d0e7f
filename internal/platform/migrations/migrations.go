package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the cart and orders bounded contexts. Intended
// to replace adapter-level automigrate. Child tables carry ON DELETE CASCADE
// foreign keys so deleting an aggregate root removes its lines.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&cartRecord{},
		&cartItemRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Cart schema mirrors the cart Postgres adapter. The unique index on user_id
// enforces one cart per user at the store level.
type cartRecord struct {
	ID        int64            `gorm:"primaryKey;column:id"`
	UserID    int64            `gorm:"column:user_id;uniqueIndex:idx_shopping_carts_user"`
	Items     []cartItemRecord `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at"`
}

func (cartRecord) TableName() string { return "shopping_carts" }

type cartItemRecord struct {
	CartID          int64           `gorm:"primaryKey;column:cart_id"`
	ProductID       int64           `gorm:"primaryKey;column:product_id"`
	Quantity        int32           `gorm:"column:quantity"`
	PriceAtAddition decimal.Decimal `gorm:"column:price_at_addition;type:numeric(10,2)"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID              int64             `gorm:"primaryKey;column:id"`
	UserID          int64             `gorm:"column:user_id;index:idx_orders_user_date"`
	OrderDate       time.Time         `gorm:"column:order_date;index:idx_orders_user_date"`
	TotalAmount     decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2)"`
	Status          string            `gorm:"column:status;type:varchar(32)"`
	ShippingAddress string            `gorm:"column:shipping_address"`
	PaymentMethod   string            `gorm:"column:payment_method"`
	Items           []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	OrderID     int64           `gorm:"primaryKey;column:order_id"`
	Position    int32           `gorm:"primaryKey;column:position"`
	ProductID   int64           `gorm:"column:product_id"`
	ProductName string          `gorm:"column:product_name"`
	Quantity    int32           `gorm:"column:quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2)"`
	Subtotal    decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

func (orderItemRecord) TableName() string { return "order_items" }
