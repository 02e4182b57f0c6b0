package appsheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/repository"
	"github.com/diegoleonuniline/umo-pos-api/pkg/textfold"
)

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository tablas de referencia. Cada método trae la tabla completa y
// la normaliza; el filtrado de negocio (vendibles, promociones activas) es del caché.
type CatalogRepository struct {
	c *Client
}

// NewCatalogRepository construye el repositorio.
func NewCatalogRepository(c *Client) *CatalogRepository { return &CatalogRepository{c: c} }

func (r *CatalogRepository) all(ctx context.Context, table string) ([]Row, error) {
	rows, err := r.c.Find(ctx, table, nil)
	if err != nil {
		return nil, fmt.Errorf("catálogo %s: %w", table, err)
	}
	return rows, nil
}

func (r *CatalogRepository) Users(ctx context.Context) ([]entity.User, error) {
	rows, err := r.all(ctx, TableUsers)
	if err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(rows))
	for _, row := range rows {
		// sin valor por defecto: un nombre vacío no debe coincidir con ningún turno
		name := row.Str("Nombre")
		full := row.Str("Nombre Completo")
		if full == "" {
			full = strings.Join(strings.Fields(strings.Join([]string{
				row.Str("Nombre"), row.Str("Apellido Paterno"), row.Str("Apellido Materno"),
			}, " ")), " ")
		}
		out = append(out, entity.User{
			ID:       row.Str("ID Empleado"),
			PIN:      row.Str("Pin de Acceso a Sistema"),
			Name:     name,
			FullName: full,
			Branch:   row.StrOr("Principal", "Sucursal"),
			Role:     row.StrOr("Vendedor", "Puesto", "Rol"),
		})
	}
	return out, nil
}

func (r *CatalogRepository) Products(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.all(ctx, TableProducts)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		barcode := row.Str("Codigo De Barras")
		out = append(out, entity.Product{
			Barcode:  barcode,
			SKU:      row.StrOr(barcode, "SKU"),
			Name:     row.StrOr("Sin nombre", "Nombre"),
			Price:    row.Dec("Precio"),
			Category: row.StrOr("Sin categoría", "Categorias"),
			Stock:    row.Dec("Stock"),
			Image:    row.Str("IMAGEN"),
			Sellable: sellable(row.Str("SE PUEDE VENDER")),
		})
	}
	return out, nil
}

// sellable vacío o ausente es vendible; solo un falso explícito lo excluye.
func sellable(flag string) bool {
	switch textfold.Fold(flag) {
	case "false", "falso", "no", "n", "0":
		return false
	}
	return true
}

func (r *CatalogRepository) Clients(ctx context.Context) ([]entity.Client, error) {
	rows, err := r.all(ctx, TableClients)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, toClient(row))
	}
	return out, nil
}

func toClient(row Row) entity.Client {
	return entity.Client{
		Code:  row.Str("Codigo", "Id"),
		Name:  row.StrOr("Sin nombre", "Nombre"),
		Email: row.Str("Correo"),
		Phone: row.Str("Telefono"),
		Group: row.Str("Grupo"),
	}
}

// CreateClient agrega el cliente. El código debe venir asignado.
func (r *CatalogRepository) CreateClient(ctx context.Context, cl *entity.Client) error {
	row := Row{
		"Codigo":   cl.Code,
		"Nombre":   cl.Name,
		"Correo":   cl.Email,
		"Telefono": cl.Phone,
	}
	if cl.Group != "" {
		row["Grupo"] = cl.Group
	}
	if _, err := r.c.Add(ctx, TableClients, row); err != nil {
		return fmt.Errorf("clientes: registrar %s: %w", cl.Code, err)
	}
	return nil
}

func (r *CatalogRepository) PaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	rows, err := r.all(ctx, TablePaymentMethods)
	if err != nil {
		return nil, err
	}
	out := make([]entity.PaymentMethod, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.PaymentMethod{Name: row.StrOr("Sin nombre", "Metodo de pago")})
	}
	return out, nil
}

func (r *CatalogRepository) Discounts(ctx context.Context) ([]entity.DiscountRule, error) {
	rows, err := r.all(ctx, TableDiscounts)
	if err != nil {
		return nil, err
	}
	out := make([]entity.DiscountRule, 0, len(rows))
	for i, row := range rows {
		out = append(out, entity.DiscountRule{
			ID:         row.StrOr(fmt.Sprintf("DES-%d", i+1), "Id"),
			Name:       row.Str("Nombre"),
			Group:      row.Str("Grupo"),
			Method:     row.Str("Metodo de Pago"),
			Percentage: money.PercentNormalize(row.Str("Porcentaje", "%", "PCT")),
		})
	}
	return out, nil
}

func (r *CatalogRepository) Promotions(ctx context.Context) ([]entity.Promotion, error) {
	rows, err := r.all(ctx, TablePromotions)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Promotion, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Promotion{
			ID:            row.Str("Id"),
			BasedOn:       row.Str("Basada en"),
			Form:          row.Str("Forma"),
			Category:      row.Str("Categoria"),
			Products:      splitList(row.Str("Productos")),
			Days:          row.Str("Dias de Promocion"),
			StartDate:     row.Str("Fecha Inicio"),
			EndDate:       row.Str("Fecha Fin"),
			Percentage:    money.PercentNormalize(row.Str("PorCentaje de Descuento")),
			Price:         row.Dec("Precio"),
			PaidQuantity:  row.Int("Cantidad Pagada"),
			TakenQuantity: row.Int("Cantidad a Llevar"),
			Label:         row.Str("Etiqueta"),
			State:         row.Str("Estado"),
		})
	}
	return out, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (r *CatalogRepository) Categories(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.all(ctx, TableCategories)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Category{
			ID:   row.Str("ID", "Id"),
			Name: row.StrOr("Sin nombre", "Nombre", "Categoria"),
			Type: row.Str("Tipo"),
		})
	}
	return out, nil
}

func (r *CatalogRepository) Concepts(ctx context.Context) ([]entity.Concept, error) {
	rows, err := r.all(ctx, TableConcepts)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Concept, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Concept{
			ID:       row.Str("ID", "Id"),
			Name:     row.StrOr("Sin nombre", "Nombre", "Concepto"),
			Type:     row.Str("Tipo"),
			Category: row.Str("Categoria"),
		})
	}
	return out, nil
}

func (r *CatalogRepository) Banks(ctx context.Context) ([]entity.Bank, error) {
	rows, err := r.all(ctx, TableBanks)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Bank, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Bank{
			ID:      row.Str("ID", "Id"),
			Name:    row.StrOr("Sin nombre", "Nombre", "Banco"),
			Account: row.Str("Cuenta", "Numero de Cuenta"),
			Branch:  row.Str("Sucursal"),
		})
	}
	return out, nil
}
