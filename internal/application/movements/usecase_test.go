package movements

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/infrastructure/memory"
)

type shiftsFromStore struct{ store *memory.Store }

func (s shiftsFromStore) Get(ctx context.Context, id string) (*entity.Shift, error) {
	return s.store.Shifts().GetByID(ctx, id)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase(store *memory.Store) *MovementsUseCase {
	uc := NewMovementsUseCase(store.Movements(), shiftsFromStore{store}, time.UTC, nil)
	uc.now = func() time.Time { return time.Date(2026, 10, 16, 18, 45, 0, 0, time.UTC) }
	return uc
}

func TestCreate_FillsFromShift(t *testing.T) {
	store := memory.NewStore().Seed(&entity.Shift{ID: "TRN-1", Branch: "Centro", Date: "10/16/2026", State: entity.ShiftOpen})
	uc := newUseCase(store)

	id, err := uc.Create(context.Background(), &entity.CashMovement{Type: "Gasto", Amount: d("80"), ShiftID: "TRN-1", Concept: "Garrafones"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	sum, err := uc.ListForShift(context.Background(), "TRN-1")
	require.NoError(t, err)
	require.Len(t, sum.Movements, 1)
	m := sum.Movements[0]
	assert.Equal(t, "Centro", m.Branch)
	assert.Equal(t, "10/16/2026", m.Date)
	assert.Equal(t, "6:45 PM", m.Time)
	assert.True(t, sum.Expense.Equal(d("80")))
	assert.True(t, sum.Net.Equal(d("-80")))
}

func TestCreate_Validation(t *testing.T) {
	uc := newUseCase(memory.NewStore())
	cases := []*entity.CashMovement{
		{Type: "", Amount: d("10"), Branch: "Centro"},
		{Type: "Ingreso", Amount: d("0"), Branch: "Centro"},
		{Type: "Ingreso", Amount: d("-5"), Branch: "Centro"},
		{Type: "Ingreso", Amount: d("10")},
	}
	for _, m := range cases {
		_, err := uc.Create(context.Background(), m)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	_, err := uc.Create(context.Background(), &entity.CashMovement{Type: "Ingreso", Amount: d("10"), ShiftID: "TRN-X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListForShift_OnlyBranchAndDay(t *testing.T) {
	store := memory.NewStore().Seed(
		&entity.Shift{ID: "TRN-1", Branch: "Centro", Date: "10/16/2026"},
		&entity.CashMovement{ID: "M1", Type: "Ingreso", Amount: d("200"), Branch: "Centro", Date: "10/16/2026"},
		&entity.CashMovement{ID: "M2", Type: "Retiro a banco", Amount: d("100"), Branch: "Centro", Date: "10/16/2026"},
		&entity.CashMovement{ID: "M3", Type: "Propina", Amount: d("30"), Branch: "Centro", Date: "10/16/2026"},
		&entity.CashMovement{ID: "M4", Type: "Ingreso", Amount: d("500"), Branch: "Centro", Date: "10/15/2026"},
	)
	uc := newUseCase(store)

	sum, err := uc.ListForShift(context.Background(), "TRN-1")
	require.NoError(t, err)
	assert.Len(t, sum.Movements, 3)
	assert.True(t, sum.Income.Equal(d("200")))
	assert.True(t, sum.Outcome.Equal(d("100")))
	assert.Equal(t, 1, sum.Unclassified)
	assert.True(t, sum.Net.Equal(d("100")))
}

func TestListForShift_Empty(t *testing.T) {
	store := memory.NewStore().Seed(&entity.Shift{ID: "TRN-1", Branch: "Centro", Date: "10/16/2026"})
	sum, err := newUseCase(store).ListForShift(context.Background(), "TRN-1")
	require.NoError(t, err)
	assert.NotNil(t, sum.Movements)
	assert.Empty(t, sum.Movements)
}
