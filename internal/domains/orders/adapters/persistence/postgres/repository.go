package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-commerce-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their lines in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderLineRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate root to a relational table.
type orderRecord struct {
	ID         uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;index"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// orderLineRecord maps one immutable order line. Position preserves the
// insertion order of lines for display.
type orderLineRecord struct {
	ID        int64           `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;index:idx_order_lines_order_product"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;index:idx_order_lines_order_product"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity  int64           `gorm:"column:quantity"`
	Position  int             `gorm:"column:position"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

// Create inserts a new order with its lines, assigning identity and
// timestamps. Inside a transaction both inserts join the surrounding unit
// of work.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	conn := r.conn(ctx)
	record := orderRecord{ID: uuid.New(), CustomerID: order.CustomerID}
	if err := conn.Create(&record).Error; err != nil {
		return nil, err
	}
	lines := make([]orderLineRecord, 0, len(order.Lines))
	for i, line := range order.Lines {
		lines = append(lines, orderLineRecord{
			OrderID:   record.ID,
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Position:  i,
		})
	}
	if err := conn.Create(&lines).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order and its lines by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	conn := r.conn(ctx)
	var record orderRecord
	if err := conn.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	lines, err := r.linesFor(conn, record.ID)
	if err != nil {
		return nil, err
	}
	return record.toDomain(lines), nil
}

// ListByCustomer returns the orders placed by one customer, oldest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	conn := r.conn(ctx)
	var records []orderRecord
	if err := conn.Where("customer_id = ?", customerID).Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		lines, err := r.linesFor(conn, records[i].ID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, records[i].toDomain(lines))
	}
	return orders, nil
}

func (r *Repository) linesFor(conn *gorm.DB, orderID uuid.UUID) ([]orderLineRecord, error) {
	var lines []orderLineRecord
	if err := conn.Where("order_id = ?", orderID).Order("position").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return platformpostgres.FromContext(ctx, r.db).WithContext(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func (r orderRecord) toDomain(lines []orderLineRecord) *domain.Order {
	order := &domain.Order{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		CreatedAt:  r.CreatedAt,
		Lines:      make([]domain.OrderLine, 0, len(lines)),
	}
	for _, line := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return order
}
