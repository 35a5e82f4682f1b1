// Package store holds the Meu Bentin domain state: products, categories,
// vendors, customers, sales and loss records. All mutations go through a
// single Store instance which mirrors every collection into the durable
// key-value layer on each change.
package store

import (
	"errors"
	"time"
)

// PaymentMethod enumerates the accepted payment methods.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "dinheiro"
	PaymentDebit    PaymentMethod = "debito"
	PaymentCredit   PaymentMethod = "credito"
	PaymentPix      PaymentMethod = "pix"
	PaymentTransfer PaymentMethod = "transferencia"
)

// Valid reports whether the payment method is one of the known values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentPix, PaymentTransfer:
		return true
	}
	return false
}

// SaleStatus enumerates sale lifecycle states.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pendente"
	SaleStatusCompleted SaleStatus = "concluida"
	SaleStatusCancelled SaleStatus = "cancelada"
)

// Product is a catalog item with on-hand stock.
type Product struct {
	ID         string     `json:"id"`
	Name       string     `json:"nome"`
	CategoryID string     `json:"categoriaId"`
	Price      float64    `json:"preco"`
	PromoPrice *float64   `json:"precoPromocional,omitempty"`
	OnPromo    bool       `json:"emPromocao"`
	Quantity   int        `json:"quantidade"`
	MinStock   int        `json:"estoqueMinimo"`
	CreatedAt  time.Time  `json:"criadoEm"`
	UpdatedAt  time.Time  `json:"atualizadoEm"`
}

// EffectivePrice is the price actually charged: the promotional price when a
// promotion is active and a positive promotional price is set, the regular
// price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.OnPromo && p.PromoPrice != nil && *p.PromoPrice > 0 {
		return *p.PromoPrice
	}
	return p.Price
}

// LowStock reports whether on-hand quantity is at or below the minimum.
func (p Product) LowStock() bool {
	return p.Quantity <= p.MinStock
}

// Category groups products. Products reference categories by ID, so renaming
// a category never breaks the link.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	CreatedAt time.Time `json:"criadoEm"`
}

// Vendor is a salesperson earning commission on sales.
type Vendor struct {
	ID            string    `json:"id"`
	Name          string    `json:"nome"`
	Email         string    `json:"email"`
	Phone         string    `json:"telefone"`
	CommissionPct float64   `json:"percentualComissao"`
	Active        bool      `json:"ativo"`
	CreatedAt     time.Time `json:"cadastradoEm"`
}

// Customer is an optional registered buyer. Sales may reference a customer
// or carry only a free-text name.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Phone     string    `json:"telefone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"cadastradoEm"`
}

// SaleItem captures one product line within a sale, with the quantity and
// the unit price charged at the time of sale.
type SaleItem struct {
	ProductID   string  `json:"produtoId"`
	ProductName string  `json:"nomeProduto"`
	Quantity    int     `json:"quantidade"`
	UnitPrice   float64 `json:"precoUnitario"`
	Subtotal    float64 `json:"subtotal"`
}

// Sale is an immutable sales record except for its status, which may move
// pending -> completed and pending/completed -> cancelled.
type Sale struct {
	ID            string        `json:"id"`
	Number        string        `json:"numero"`
	Date          time.Time     `json:"data"`
	CustomerID    *string       `json:"clienteId,omitempty"`
	CustomerName  string        `json:"nomeCliente"`
	VendorID      string        `json:"vendedorId"`
	VendorName    string        `json:"nomeVendedor"`
	Items         []SaleItem    `json:"itens"`
	Subtotal      float64       `json:"subtotal"`
	Discount      float64       `json:"desconto"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"formaPagamento"`
	Status        SaleStatus    `json:"status"`
	Notes         string        `json:"observacoes,omitempty"`
}

// LossRecord documents stock written off outside a sale (damage, theft,
// donation and the like).
type LossRecord struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"produtoId"`
	ProductName string    `json:"nomeProduto"`
	Quantity    int       `json:"quantidade"`
	Reason      string    `json:"motivo"`
	Date        time.Time `json:"data"`
}

var (
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrInvalidQuantity indicates a zero or negative quantity.
	ErrInvalidQuantity = errors.New("store: quantity must be positive")
	// ErrInsufficientStock triggered when a movement would leave stock negative.
	ErrInsufficientStock = errors.New("store: insufficient stock")
	// ErrEmptyCart indicates a sale with no line items.
	ErrEmptyCart = errors.New("store: sale must have at least one item")
	// ErrInvalidDiscount indicates a negative discount.
	ErrInvalidDiscount = errors.New("store: discount must be >= 0")
	// ErrDiscountExceedsSubtotal indicates a discount larger than the subtotal.
	ErrDiscountExceedsSubtotal = errors.New("store: discount exceeds subtotal")
	// ErrDuplicateCategory indicates a category with the same name already exists.
	ErrDuplicateCategory = errors.New("store: category already exists")
	// ErrCategoryInUse indicates the category is still referenced by products.
	ErrCategoryInUse = errors.New("store: category referenced by products")
	// ErrInvalidStatus indicates an unsupported sale status transition.
	ErrInvalidStatus = errors.New("store: invalid status transition")
	// ErrInvalidPayment indicates an unknown payment method.
	ErrInvalidPayment = errors.New("store: invalid payment method")
	// ErrNameRequired indicates a missing required name field.
	ErrNameRequired = errors.New("store: name is required")
	// ErrInvalidPrice indicates a negative price.
	ErrInvalidPrice = errors.New("store: price must be >= 0")
)
