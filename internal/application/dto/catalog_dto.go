package dto

import (
	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/catalog"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/discount"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

// ProductDTO producto vendible.
type ProductDTO struct {
	CodigoBarras string          `json:"codigoBarras"`
	SKU          string          `json:"sku"`
	Nombre       string          `json:"nombre"`
	Precio       decimal.Decimal `json:"precio"`
	Categoria    string          `json:"categoria"`
	Stock        decimal.Decimal `json:"stock"`
	Imagen       *string         `json:"imagen"`
}

// ProductListResponse respuesta de GET /api/productos.
type ProductListResponse struct {
	Success   bool         `json:"success"`
	Productos []ProductDTO `json:"productos"`
}

func NewProductList(ps []entity.Product) ProductListResponse {
	out := make([]ProductDTO, 0, len(ps))
	for _, p := range ps {
		d := ProductDTO{
			CodigoBarras: p.Barcode,
			SKU:          p.SKU,
			Nombre:       p.Name,
			Precio:       p.Price,
			Categoria:    p.Category,
			Stock:        p.Stock,
		}
		if p.Image != "" {
			img := p.Image
			d.Imagen = &img
		}
		out = append(out, d)
	}
	return ProductListResponse{Success: true, Productos: out}
}

// ClientDTO cliente.
type ClientDTO struct {
	Codigo   string `json:"codigo"`
	Nombre   string `json:"nombre"`
	Correo   string `json:"correo"`
	Telefono string `json:"telefono"`
	Grupo    string `json:"grupo"`
}

// ClientListResponse respuesta de GET /api/clientes.
type ClientListResponse struct {
	Success  bool        `json:"success"`
	Clientes []ClientDTO `json:"clientes"`
}

func NewClientList(cs []entity.Client) ClientListResponse {
	out := make([]ClientDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, ClientDTO{Codigo: c.Code, Nombre: c.Name, Correo: c.Email, Telefono: c.Phone, Grupo: c.Group})
	}
	return ClientListResponse{Success: true, Clientes: out}
}

// CreateClientRequest body para POST /api/clientes.
type CreateClientRequest struct {
	Codigo   Text   `json:"codigo"`
	Nombre   string `json:"nombre" validate:"required,max=200"`
	Correo   string `json:"correo" validate:"omitempty,email"`
	Telefono Text   `json:"telefono"`
	Grupo    string `json:"grupo"`
}

func (r CreateClientRequest) ToEntity() entity.Client {
	return entity.Client{Code: r.Codigo.String(), Name: r.Nombre, Email: r.Correo, Phone: r.Telefono.String(), Group: r.Grupo}
}

// CreateClientResponse código asignado.
type CreateClientResponse struct {
	Success bool   `json:"success"`
	Codigo  string `json:"codigo"`
}

// PaymentMethodListResponse respuesta de GET /api/metodos-pago.
type PaymentMethodListResponse struct {
	Success bool     `json:"success"`
	Metodos []string `json:"metodos"`
}

// DiscountDTO renglón de la tabla de descuentos con su etiqueta.
type DiscountDTO struct {
	ID         string          `json:"id"`
	Nombre     string          `json:"nombre"`
	Grupo      string          `json:"grupo"`
	MetodoPago string          `json:"metodoPago"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
	Etiqueta   string          `json:"etiqueta"`
}

// DiscountListResponse respuesta de GET /api/descuentos.
type DiscountListResponse struct {
	Success    bool          `json:"success"`
	Descuentos []DiscountDTO `json:"descuentos"`
}

func NewDiscountList(rules []entity.DiscountRule) DiscountListResponse {
	out := make([]DiscountDTO, 0, len(rules))
	for _, r := range rules {
		out = append(out, DiscountDTO{
			ID:         r.ID,
			Nombre:     r.Name,
			Grupo:      r.Group,
			MetodoPago: r.Method,
			Porcentaje: r.Percentage,
			Etiqueta:   discount.Label(r),
		})
	}
	return DiscountListResponse{Success: true, Descuentos: out}
}

// CalculateDiscountRequest body para POST /api/descuentos/calcular.
type CalculateDiscountRequest struct {
	GrupoCliente string `json:"grupoCliente"`
	MetodoPago   string `json:"metodoPago"`
}

// CalculateDiscountResponse descuento aplicable; id null si ninguna regla aplica.
type CalculateDiscountResponse struct {
	Success     bool            `json:"success"`
	Porcentaje  decimal.Decimal `json:"porcentaje"`
	Descripcion string          `json:"descripcion"`
	ID          *string         `json:"id"`
}

func NewCalculateDiscountResponse(r discount.Resolution) CalculateDiscountResponse {
	out := CalculateDiscountResponse{Success: true, Porcentaje: r.Percentage, Descripcion: r.Description}
	if r.Found() {
		id := r.RuleID
		out.ID = &id
	}
	return out
}

// PromotionDTO promoción activa.
type PromotionDTO struct {
	ID             string          `json:"id"`
	BasadaEn       string          `json:"basadaEn"`
	Forma          string          `json:"forma"`
	Categoria      string          `json:"categoria"`
	Productos      []string        `json:"productos"`
	DiasPromocion  string          `json:"diasPromocion"`
	FechaInicio    string          `json:"fechaInicio"`
	FechaFin       string          `json:"fechaFin"`
	Porcentaje     decimal.Decimal `json:"porcentaje"`
	Precio         decimal.Decimal `json:"precio"`
	CantidadPagada int             `json:"cantidadPagada"`
	CantidadLlevar int             `json:"cantidadLlevar"`
	Etiqueta       string          `json:"etiqueta"`
}

// PromotionListResponse respuesta de GET /api/promociones.
type PromotionListResponse struct {
	Success     bool           `json:"success"`
	Promociones []PromotionDTO `json:"promociones"`
}

func NewPromotionList(ps []entity.Promotion) PromotionListResponse {
	out := make([]PromotionDTO, 0, len(ps))
	for _, p := range ps {
		products := p.Products
		if products == nil {
			products = []string{}
		}
		out = append(out, PromotionDTO{
			ID:             p.ID,
			BasadaEn:       p.BasedOn,
			Forma:          p.Form,
			Categoria:      p.Category,
			Productos:      products,
			DiasPromocion:  p.Days,
			FechaInicio:    p.StartDate,
			FechaFin:       p.EndDate,
			Porcentaje:     p.Percentage,
			Precio:         p.Price,
			CantidadPagada: p.PaidQuantity,
			CantidadLlevar: p.TakenQuantity,
			Etiqueta:       p.Label,
		})
	}
	return PromotionListResponse{Success: true, Promociones: out}
}

// CategoryDTO categoría.
type CategoryDTO struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo"`
}

// CategoryListResponse respuesta de GET /api/categorias.
type CategoryListResponse struct {
	Success    bool          `json:"success"`
	Categorias []CategoryDTO `json:"categorias"`
}

func NewCategoryList(cs []entity.Category) CategoryListResponse {
	out := make([]CategoryDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, CategoryDTO{ID: c.ID, Nombre: c.Name, Tipo: c.Type})
	}
	return CategoryListResponse{Success: true, Categorias: out}
}

// ConceptDTO concepto de movimiento.
type ConceptDTO struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Tipo      string `json:"tipo"`
	Categoria string `json:"categoria"`
}

// ConceptListResponse respuesta de GET /api/conceptos.
type ConceptListResponse struct {
	Success   bool         `json:"success"`
	Conceptos []ConceptDTO `json:"conceptos"`
}

func NewConceptList(cs []entity.Concept) ConceptListResponse {
	out := make([]ConceptDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, ConceptDTO{ID: c.ID, Nombre: c.Name, Tipo: c.Type, Categoria: c.Category})
	}
	return ConceptListResponse{Success: true, Conceptos: out}
}

// BankDTO cuenta bancaria.
type BankDTO struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Cuenta   string `json:"cuenta"`
	Sucursal string `json:"sucursal"`
}

// BankListResponse respuesta de GET /api/bancos.
type BankListResponse struct {
	Success bool      `json:"success"`
	Bancos  []BankDTO `json:"bancos"`
}

func NewBankList(bs []entity.Bank) BankListResponse {
	out := make([]BankDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, BankDTO{ID: b.ID, Nombre: b.Name, Cuenta: b.Account, Sucursal: b.Branch})
	}
	return BankListResponse{Success: true, Bancos: out}
}

// SyncResponse respuesta de POST /api/sync y GET /api/sync/status.
type SyncResponse struct {
	Success bool                  `json:"success"`
	Tablas  []catalog.TableStatus `json:"tablas"`
}
