package repository

import (
	"context"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

// CatalogRepository tablas de referencia. Cada lectura trae la tabla completa ya normalizada.
type CatalogRepository interface {
	Users(ctx context.Context) ([]entity.User, error)
	Products(ctx context.Context) ([]entity.Product, error)
	Clients(ctx context.Context) ([]entity.Client, error)
	PaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error)
	Discounts(ctx context.Context) ([]entity.DiscountRule, error)
	Promotions(ctx context.Context) ([]entity.Promotion, error)
	Categories(ctx context.Context) ([]entity.Category, error)
	Concepts(ctx context.Context) ([]entity.Concept, error)
	Banks(ctx context.Context) ([]entity.Bank, error)

	CreateClient(ctx context.Context, c *entity.Client) error
}
