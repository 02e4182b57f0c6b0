// Package catalog mantiene en memoria las tablas de referencia del punto de
// venta (productos, clientes, usuarios, métodos de pago, descuentos,
// promociones, categorías, conceptos y bancos).
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/ports"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/discount"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/repository"
	"github.com/diegoleonuniline/umo-pos-api/pkg/logger"
	"github.com/diegoleonuniline/umo-pos-api/pkg/textfold"
)

// Nombres de tabla tal como aparecen en el estado de sincronización.
const (
	TableProducts       = "productos"
	TableClients        = "clientes"
	TableUsers          = "usuarios"
	TablePaymentMethods = "metodos"
	TableDiscounts      = "descuentos"
	TablePromotions     = "promociones"
	TableCategories     = "categorias"
	TableConcepts       = "conceptos"
	TableBanks          = "bancos"
)

// DefaultPaymentMethods lista que se ofrece cuando la tabla no responde o está vacía.
var DefaultPaymentMethods = []string{"Efectivo", "Tarjeta", "Transferencia"}

// Cache caché de lectura de las tablas de referencia. Una sola instancia por
// proceso, inyectada en los casos de uso y handlers.
type Cache struct {
	repo  repository.CatalogRepository
	snaps ports.SnapshotStore
	log   *logger.Logger
	now   func() time.Time

	products    *table[entity.Product]
	clients     *table[entity.Client]
	users       *table[entity.User]
	methods     *table[entity.PaymentMethod]
	discounts   *table[entity.DiscountRule]
	promotions  *table[entity.Promotion]
	categories  *table[entity.Category]
	concepts    *table[entity.Concept]
	banks       *table[entity.Bank]
	refreshable []refresher
}

type refresher struct {
	name   string
	reload func(ctx context.Context) error
	status func() TableStatus
}

// New construye el caché. snaps y log pueden ser nil.
func New(repo repository.CatalogRepository, snaps ports.SnapshotStore, log *logger.Logger) *Cache {
	if snaps == nil {
		snaps = noSnapshots{}
	}
	if log == nil {
		log = logger.Nop()
	}
	c := &Cache{
		repo:  repo,
		snaps: snaps,
		log:   log.Component("catalog"),
		now:   time.Now,
	}

	c.products = newTable(TableProducts, func(ctx context.Context) ([]entity.Product, error) {
		all, err := repo.Products(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]entity.Product, 0, len(all))
		for _, p := range all {
			if p.Sellable {
				out = append(out, p)
			}
		}
		return out, nil
	})
	c.clients = newTable(TableClients, repo.Clients)
	c.users = newTable(TableUsers, repo.Users)
	c.methods = newTable(TablePaymentMethods, repo.PaymentMethods)
	c.discounts = newTable(TableDiscounts, repo.Discounts)
	c.promotions = newTable(TablePromotions, func(ctx context.Context) ([]entity.Promotion, error) {
		all, err := repo.Promotions(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]entity.Promotion, 0, len(all))
		for _, p := range all {
			if textfold.Equal(p.State, "Activa") {
				out = append(out, p)
			}
		}
		return out, nil
	})
	c.categories = newTable(TableCategories, repo.Categories)
	c.concepts = newTable(TableConcepts, repo.Concepts)
	c.banks = newTable(TableBanks, repo.Banks)

	c.refreshable = []refresher{
		register(c, c.products), register(c, c.clients), register(c, c.users),
		register(c, c.methods), register(c, c.discounts), register(c, c.promotions),
		register(c, c.categories), register(c, c.concepts), register(c, c.banks),
	}
	return c
}

func register[T any](c *Cache, t *table[T]) refresher {
	return refresher{
		name: t.name,
		reload: func(ctx context.Context) error {
			_, err := t.reload(ctx, c.snaps, c.log)
			return err
		},
		status: t.status,
	}
}

func (c *Cache) Products(ctx context.Context) ([]entity.Product, error) {
	return c.products.get(ctx, c.snaps, c.log)
}

func (c *Cache) Clients(ctx context.Context) ([]entity.Client, error) {
	return c.clients.get(ctx, c.snaps, c.log)
}

func (c *Cache) Users(ctx context.Context) ([]entity.User, error) {
	return c.users.get(ctx, c.snaps, c.log)
}

// ReloadUsers fuerza la recarga de usuarios (alta reciente de un empleado).
func (c *Cache) ReloadUsers(ctx context.Context) ([]entity.User, error) {
	return c.users.reload(ctx, c.snaps, c.log)
}

func (c *Cache) Discounts(ctx context.Context) ([]entity.DiscountRule, error) {
	return c.discounts.get(ctx, c.snaps, c.log)
}

// ResolveDiscount aplica las reglas en caché al grupo y método dados.
// Sin regla que coincida el resultado es "Sin descuento", no un error.
func (c *Cache) ResolveDiscount(ctx context.Context, group, method string) (discount.Resolution, error) {
	rules, err := c.Discounts(ctx)
	if err != nil {
		return discount.Resolution{}, err
	}
	return discount.Resolve(rules, group, method), nil
}

func (c *Cache) Promotions(ctx context.Context) ([]entity.Promotion, error) {
	return c.promotions.get(ctx, c.snaps, c.log)
}

func (c *Cache) Categories(ctx context.Context) ([]entity.Category, error) {
	return c.categories.get(ctx, c.snaps, c.log)
}

func (c *Cache) Concepts(ctx context.Context) ([]entity.Concept, error) {
	return c.concepts.get(ctx, c.snaps, c.log)
}

func (c *Cache) Banks(ctx context.Context) ([]entity.Bank, error) {
	return c.banks.get(ctx, c.snaps, c.log)
}

// PaymentMethods nunca falla: sin respuesta o sin registros se usa la lista por defecto.
func (c *Cache) PaymentMethods(ctx context.Context) []string {
	methods, err := c.methods.get(ctx, c.snaps, c.log)
	if err != nil {
		c.log.Warn().Err(err).Msg("métodos de pago no disponibles, se usa la lista por defecto")
	}
	if len(methods) == 0 {
		return append([]string(nil), DefaultPaymentMethods...)
	}
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, m.Name)
	}
	return out
}

// CreateClient registra el cliente en el almacén y, si la lista ya está en
// memoria, lo agrega sin recargar. Sin código se asigna CLI-<milisegundos>.
func (c *Cache) CreateClient(ctx context.Context, cl entity.Client) (entity.Client, error) {
	cl.Name = strings.TrimSpace(cl.Name)
	if cl.Name == "" {
		return entity.Client{}, fmt.Errorf("nombre requerido: %w", domain.ErrInvalidInput)
	}
	cl.Code = strings.TrimSpace(cl.Code)
	if cl.Code == "" {
		cl.Code = "CLI-" + strconv.FormatInt(c.now().UnixMilli(), 10)
	}
	if err := c.repo.CreateClient(ctx, &cl); err != nil {
		return entity.Client{}, err
	}
	c.clients.appendIfWarm(cl)
	return cl, nil
}

// RefreshAll recarga todas las tablas en paralelo. Cada tabla falla por su
// cuenta; el resultado trae el estado de todas.
func (c *Cache) RefreshAll(ctx context.Context) []TableStatus {
	var g errgroup.Group
	for _, r := range c.refreshable {
		g.Go(func() error {
			if err := r.reload(ctx); err != nil {
				c.log.Error().Err(err).Str("table", r.name).Msg("no se pudo recargar la tabla")
			}
			return nil
		})
	}
	_ = g.Wait()
	return c.Status()
}

// Status estado de cada tabla, en orden fijo.
func (c *Cache) Status() []TableStatus {
	out := make([]TableStatus, 0, len(c.refreshable))
	for _, r := range c.refreshable {
		out = append(out, r.status())
	}
	return out
}

type noSnapshots struct{}

func (noSnapshots) Save(context.Context, string, []byte) error { return nil }

func (noSnapshots) Load(_ context.Context, table string) ([]byte, time.Time, error) {
	return nil, time.Time{}, fmt.Errorf("snapshot %s: %w", table, domain.ErrNotFound)
}
