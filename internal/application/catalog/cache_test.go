package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

// fakeRepo CatalogRepository en memoria con fallas configurables por tabla.
type fakeRepo struct {
	mu       sync.Mutex
	products []entity.Product
	clients  []entity.Client
	users    []entity.User
	methods  []entity.PaymentMethod
	rules    []entity.DiscountRule
	promos   []entity.Promotion
	fail     map[string]error
	calls    map[string]*atomic.Int32
	created  []entity.Client
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{fail: map[string]error{}, calls: map[string]*atomic.Int32{}}
}

func (f *fakeRepo) hit(table string) error {
	f.mu.Lock()
	c, ok := f.calls[table]
	if !ok {
		c = &atomic.Int32{}
		f.calls[table] = c
	}
	err := f.fail[table]
	f.mu.Unlock()
	c.Add(1)
	return err
}

func (f *fakeRepo) count(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.calls[table]; ok {
		return int(c.Load())
	}
	return 0
}

func (f *fakeRepo) setFail(table string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[table] = err
}

func (f *fakeRepo) Users(context.Context) ([]entity.User, error) {
	return f.users, f.hit(TableUsers)
}
func (f *fakeRepo) Products(context.Context) ([]entity.Product, error) {
	return f.products, f.hit(TableProducts)
}
func (f *fakeRepo) Clients(context.Context) ([]entity.Client, error) {
	return f.clients, f.hit(TableClients)
}
func (f *fakeRepo) PaymentMethods(context.Context) ([]entity.PaymentMethod, error) {
	return f.methods, f.hit(TablePaymentMethods)
}
func (f *fakeRepo) Discounts(context.Context) ([]entity.DiscountRule, error) {
	return f.rules, f.hit(TableDiscounts)
}
func (f *fakeRepo) Promotions(context.Context) ([]entity.Promotion, error) {
	return f.promos, f.hit(TablePromotions)
}
func (f *fakeRepo) Categories(context.Context) ([]entity.Category, error) {
	return nil, f.hit(TableCategories)
}
func (f *fakeRepo) Concepts(context.Context) ([]entity.Concept, error) {
	return nil, f.hit(TableConcepts)
}
func (f *fakeRepo) Banks(context.Context) ([]entity.Bank, error) {
	return []entity.Bank{{ID: "B1", Name: "BBVA"}}, f.hit(TableBanks)
}
func (f *fakeRepo) CreateClient(_ context.Context, c *entity.Client) error {
	if err := f.hit("crear-cliente"); err != nil {
		return err
	}
	f.mu.Lock()
	f.created = append(f.created, *c)
	f.mu.Unlock()
	return nil
}

// memSnapshots SnapshotStore en memoria.
type memSnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memSnapshots) Save(_ context.Context, table string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[table] = payload
	return nil
}

func (m *memSnapshots) Load(_ context.Context, table string) ([]byte, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.data[table]; ok {
		return b, time.Now(), nil
	}
	return nil, time.Time{}, domain.ErrNotFound
}

func TestCache_ReadThroughLoadsOnce(t *testing.T) {
	repo := newFakeRepo()
	repo.products = []entity.Product{
		{Name: "Agua", Sellable: true},
		{Name: "Oculto", Sellable: false},
	}
	c := New(repo, nil, nil)

	for range 3 {
		got, err := c.Products(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Agua", got[0].Name)
	}
	assert.Equal(t, 1, repo.count(TableProducts))
}

func TestCache_PromotionsOnlyActive(t *testing.T) {
	repo := newFakeRepo()
	repo.promos = []entity.Promotion{{ID: "1", State: "Activa"}, {ID: "2", State: "Inactiva"}, {ID: "3", State: " ACTIVA "}}
	c := New(repo, nil, nil)

	got, err := c.Promotions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestCache_MalformedResponseIsEmptyList(t *testing.T) {
	repo := newFakeRepo()
	repo.setFail(TableClients, fmt.Errorf("clientes: %w", domain.ErrMalformedResponse))
	c := New(repo, nil, nil)

	got, err := c.Clients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestCache_PaymentMethodsFallback(t *testing.T) {
	repo := newFakeRepo()
	repo.setFail(TablePaymentMethods, domain.ErrUpstream)
	c := New(repo, nil, nil)
	assert.Equal(t, []string{"Efectivo", "Tarjeta", "Transferencia"}, c.PaymentMethods(context.Background()))

	repo.setFail(TablePaymentMethods, nil)
	repo.methods = []entity.PaymentMethod{{Name: "Clip Nacional"}}
	assert.Equal(t, []string{"Clip Nacional"}, c.PaymentMethods(context.Background()))
}

func TestCache_RefreshAllIndependentFailures(t *testing.T) {
	repo := newFakeRepo()
	repo.setFail(TableProducts, domain.ErrUpstream)
	repo.users = []entity.User{{ID: "E1"}}
	c := New(repo, nil, nil)

	status := c.RefreshAll(context.Background())
	require.Len(t, status, 9)

	byName := map[string]TableStatus{}
	for _, s := range status {
		byName[s.Name] = s
	}
	assert.False(t, byName[TableProducts].Loaded)
	assert.NotEmpty(t, byName[TableProducts].Error)
	assert.True(t, byName[TableUsers].Loaded)
	assert.Equal(t, 1, byName[TableUsers].Count)
	assert.True(t, byName[TableBanks].Loaded)
	assert.Equal(t, SourceStore, byName[TableBanks].Source)
}

func TestCache_RefreshKeepsWarmDataOnFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.users = []entity.User{{ID: "E1"}}
	c := New(repo, nil, nil)
	_, err := c.Users(context.Background())
	require.NoError(t, err)

	repo.setFail(TableUsers, domain.ErrUpstream)
	users, err := c.ReloadUsers(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Len(t, users, 1)

	users, err = c.Users(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCache_ColdTableServedFromSnapshot(t *testing.T) {
	repo := newFakeRepo()
	repo.rules = []entity.DiscountRule{{ID: "D1", Group: "VIP", Percentage: decimal.NewFromInt(10)}}
	snaps := &memSnapshots{}

	warm := New(repo, snaps, nil)
	_, err := warm.Discounts(context.Background())
	require.NoError(t, err)

	repo.setFail(TableDiscounts, domain.ErrUpstream)
	cold := New(repo, snaps, nil)
	got, err := cold.Discounts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Percentage.Equal(decimal.NewFromInt(10)))

	st := cold.Status()
	for _, s := range st {
		if s.Name == TableDiscounts {
			assert.False(t, s.Loaded)
			assert.Equal(t, SourceSnapshot, s.Source)
		}
	}
}

func TestCache_ColdTableWithoutSnapshotFails(t *testing.T) {
	repo := newFakeRepo()
	repo.setFail(TableBanks, domain.ErrUpstream)
	_, err := New(repo, nil, nil).Banks(context.Background())
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}

func TestCache_CreateClient(t *testing.T) {
	repo := newFakeRepo()
	repo.clients = []entity.Client{{Code: "C1", Name: "Ana"}}
	c := New(repo, nil, nil)
	c.now = func() time.Time { return time.UnixMilli(1700000000123) }

	_, err := c.CreateClient(context.Background(), entity.Client{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Frío: solo se escribe en el almacén.
	cl, err := c.CreateClient(context.Background(), entity.Client{Name: "Luis"})
	require.NoError(t, err)
	assert.Equal(t, "CLI-1700000000123", cl.Code)

	list, err := c.Clients(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Caliente: se agrega sin recargar.
	_, err = c.CreateClient(context.Background(), entity.Client{Code: "C9", Name: "Eva"})
	require.NoError(t, err)
	list, err = c.Clients(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C9", list[1].Code)
	assert.Equal(t, 1, repo.count(TableClients))
	assert.Len(t, repo.created, 2)
}

func TestCache_ResolveDiscount(t *testing.T) {
	repo := newFakeRepo()
	repo.rules = []entity.DiscountRule{
		{ID: "D1", Group: "VIP", Method: "Efectivo", Percentage: decimal.NewFromInt(10)},
		{ID: "D2", Group: "VIP", Percentage: decimal.NewFromInt(5)},
	}
	c := New(repo, nil, nil)

	r, err := c.ResolveDiscount(context.Background(), "vip", "EFECTIVO")
	require.NoError(t, err)
	assert.Equal(t, "D1", r.RuleID)

	r, err = c.ResolveDiscount(context.Background(), "Otro", "Efectivo")
	require.NoError(t, err)
	assert.False(t, r.Found())
}
