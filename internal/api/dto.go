package api

// Request DTOs. JSON field names follow the store's Portuguese vocabulary;
// validation runs before anything reaches the store.

type createProductRequest struct {
	Name       string   `json:"nome" validate:"required"`
	CategoryID string   `json:"categoriaId" validate:"required"`
	Price      float64  `json:"preco" validate:"gte=0"`
	PromoPrice *float64 `json:"precoPromocional,omitempty" validate:"omitempty,gte=0"`
	OnPromo    bool     `json:"emPromocao"`
	Quantity   int      `json:"quantidade" validate:"gte=0"`
	MinStock   int      `json:"estoqueMinimo" validate:"gte=0"`
}

type updateProductRequest struct {
	Name       *string  `json:"nome,omitempty"`
	CategoryID *string  `json:"categoriaId,omitempty"`
	Price      *float64 `json:"preco,omitempty" validate:"omitempty,gte=0"`
	PromoPrice *float64 `json:"precoPromocional,omitempty" validate:"omitempty,gte=0"`
	OnPromo    *bool    `json:"emPromocao,omitempty"`
	MinStock   *int     `json:"estoqueMinimo,omitempty" validate:"omitempty,gte=0"`
}

type addStockRequest struct {
	Quantity int `json:"quantidade" validate:"required,gt=0"`
}

type registerLossRequest struct {
	Quantity int    `json:"quantidade" validate:"required,gt=0"`
	Reason   string `json:"motivo" validate:"required"`
}

type categoryRequest struct {
	Name string `json:"nome" validate:"required"`
}

type createVendorRequest struct {
	Name          string  `json:"nome" validate:"required"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Phone         string  `json:"telefone"`
	CommissionPct float64 `json:"percentualComissao" validate:"gte=0,lte=100"`
}

type updateVendorRequest struct {
	Name          *string  `json:"nome,omitempty"`
	Email         *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string  `json:"telefone,omitempty"`
	CommissionPct *float64 `json:"percentualComissao,omitempty" validate:"omitempty,gte=0,lte=100"`
	Active        *bool    `json:"ativo,omitempty"`
}

type createCustomerRequest struct {
	Name  string `json:"nome" validate:"required"`
	Phone string `json:"telefone"`
	Email string `json:"email" validate:"omitempty,email"`
}

type updateCustomerRequest struct {
	Name  *string `json:"nome,omitempty"`
	Phone *string `json:"telefone,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type saleItemRequest struct {
	ProductID string `json:"produtoId" validate:"required"`
	Quantity  int    `json:"quantidade" validate:"required,gt=0"`
}

type createSaleRequest struct {
	CustomerID    *string           `json:"clienteId,omitempty"`
	CustomerName  string            `json:"nomeCliente"`
	VendorID      string            `json:"vendedorId" validate:"required"`
	Items         []saleItemRequest `json:"itens" validate:"required,min=1,dive"`
	Discount      float64           `json:"desconto" validate:"gte=0"`
	PaymentMethod string            `json:"formaPagamento" validate:"required"`
	Status        string            `json:"status" validate:"omitempty,oneof=pendente concluida"`
	Notes         string            `json:"observacoes"`
}
