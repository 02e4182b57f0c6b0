package memory

import (
	"context"
	"sync"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*Catalog)(nil)

// Catalog tablas de referencia en memoria. Err, si no es nil, lo devuelven todas las lecturas.
type Catalog struct {
	mu sync.Mutex

	UserList     []entity.User
	ProductList  []entity.Product
	ClientList   []entity.Client
	MethodList   []entity.PaymentMethod
	DiscountList []entity.DiscountRule
	PromoList    []entity.Promotion
	CategoryList []entity.Category
	ConceptList  []entity.Concept
	BankList     []entity.Bank
	Err          error
}

func (c *Catalog) Users(context.Context) ([]entity.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.User(nil), c.UserList...), c.Err
}

func (c *Catalog) Products(context.Context) ([]entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Product(nil), c.ProductList...), c.Err
}

func (c *Catalog) Clients(context.Context) ([]entity.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Client(nil), c.ClientList...), c.Err
}

func (c *Catalog) PaymentMethods(context.Context) ([]entity.PaymentMethod, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.PaymentMethod(nil), c.MethodList...), c.Err
}

func (c *Catalog) Discounts(context.Context) ([]entity.DiscountRule, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.DiscountRule(nil), c.DiscountList...), c.Err
}

func (c *Catalog) Promotions(context.Context) ([]entity.Promotion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Promotion(nil), c.PromoList...), c.Err
}

func (c *Catalog) Categories(context.Context) ([]entity.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Category(nil), c.CategoryList...), c.Err
}

func (c *Catalog) Concepts(context.Context) ([]entity.Concept, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Concept(nil), c.ConceptList...), c.Err
}

func (c *Catalog) Banks(context.Context) ([]entity.Bank, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Bank(nil), c.BankList...), c.Err
}

func (c *Catalog) CreateClient(_ context.Context, cl *entity.Client) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.ClientList = append(c.ClientList, *cl)
	return nil
}
