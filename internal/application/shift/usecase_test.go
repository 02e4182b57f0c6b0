package shift

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/auth"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/ports"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
	"github.com/diegoleonuniline/umo-pos-api/internal/infrastructure/memory"
)

type staticUsers []entity.User

func (s staticUsers) Users(context.Context) ([]entity.User, error)       { return s, nil }
func (s staticUsers) ReloadUsers(context.Context) ([]entity.User, error) { return s, nil }

var testUsers = staticUsers{
	{ID: "E1", PIN: "1111", Name: "Ana", Role: "Vendedor"},
	{ID: "ADM", PIN: "9999", Name: "Jefa", Role: "Gerente"},
	{ID: "E7", PIN: "7777", Role: "Vendedor"},
}

var fixedNow = time.Date(2026, 10, 16, 9, 5, 0, 0, time.UTC)

func newUseCase(store *memory.Store, archive ports.ClosureArchive) *ShiftUseCase {
	uc := NewShiftUseCase(store.Shifts(), auth.NewAuthUseCase(testUsers), archive,
		entity.ExchangeRates{USD: decimal.NewFromFloat(17.5), CAD: decimal.NewFromInt(13), EUR: decimal.NewFromInt(19)},
		time.UTC, nil)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestOpen_DefaultsAndID(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, nil)

	id, err := uc.Open(context.Background(), OpenInput{
		Operator: "E1", Branch: "Centro",
		Opening: entity.Balances{CashMXN: d("1000")},
		Rates:   entity.ExchangeRates{USD: d("18")},
	})
	require.NoError(t, err)
	assert.Equal(t, "TRN-1792141500000", id)

	s, err := uc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, s.IsOpen())
	assert.Equal(t, "10/16/2026", s.Date)
	assert.Equal(t, "9:05 AM", s.OpenedAt)
	assert.True(t, s.Rates.USD.Equal(d("18")))
	assert.True(t, s.Rates.CAD.Equal(d("13")))
	assert.True(t, s.Rates.EUR.Equal(d("19")))
}

func TestOpen_DenominationsReplaceCash(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, nil)

	id, err := uc.Open(context.Background(), OpenInput{
		Operator: "E1", Branch: "Centro",
		Opening:       entity.Balances{CashMXN: d("1")},
		Denominations: money.Counts{"billetes500": d("2")},
	})
	require.NoError(t, err)
	s, _ := uc.Get(context.Background(), id)
	assert.True(t, s.Opening.CashMXN.Equal(d("1000")))
}

func TestOpen_RequiresOperatorAndBranch(t *testing.T) {
	_, err := newUseCase(memory.NewStore(), nil).Open(context.Background(), OpenInput{Operator: "E1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClose(t *testing.T) {
	store := memory.NewStore().Seed(&entity.Shift{ID: "T1", State: entity.ShiftOpen, Branch: "Centro"})
	uc := newUseCase(store, nil)

	total, err := uc.Close(context.Background(), CloseInput{
		ShiftID:       "T1",
		Denominations: money.Counts{"billetes1000": d("1"), "billetes500": d("1"), "monedas5": d("10")},
		Foreign:       entity.ForeignCounts{USD: d("20")},
	})
	require.NoError(t, err)
	assert.True(t, total.Equal(d("1550")))

	s, _ := uc.Get(context.Background(), "T1")
	assert.Equal(t, entity.ShiftClosed, s.State)
	assert.Equal(t, "9:05 AM", s.ClosedAt)

	_, err = uc.Close(context.Background(), CloseInput{ShiftID: "T1"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Close(context.Background(), CloseInput{ShiftID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCloseWithReconciliation_Authorization(t *testing.T) {
	store := memory.NewStore().Seed(&entity.Shift{ID: "T1", State: entity.ShiftOpen})
	uc := newUseCase(store, nil)
	closing := entity.ShiftClosing{Denominations: money.Counts{"billetes500": d("3")}}
	figures := entity.ReconciliationFigures{Variance: entity.Balances{CashMXN: d("-50")}}

	_, err := uc.CloseWithReconciliation(context.Background(), "T1", closing, figures, &entity.Credential{UserID: "E1", PIN: "1111"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	s, _ := uc.Get(context.Background(), "T1")
	assert.True(t, s.IsOpen(), "un rechazo no modifica el turno")

	by, err := uc.CloseWithReconciliation(context.Background(), "T1", closing, figures, &entity.Credential{UserID: "ADM", PIN: "9999"})
	require.NoError(t, err)
	assert.Equal(t, "ADM", by)

	s, _ = uc.Get(context.Background(), "T1")
	assert.Equal(t, entity.ShiftClosed, s.State)
	assert.True(t, s.Closing.TotalMXN.Equal(d("1500")))
	assert.Equal(t, "ADM", s.Figures.AuthorizedBy)

	// Sin credencial no hay revisión, también sobre un turno ya cerrado.
	by, err = uc.CloseWithReconciliation(context.Background(), "T1", closing, figures, nil)
	require.NoError(t, err)
	assert.Empty(t, by)
}

func TestReopen(t *testing.T) {
	store := memory.NewStore().Seed(&entity.Shift{
		ID: "T1", State: entity.ShiftClosed, ClosedAt: "6:00 PM",
		Closing: entity.ShiftClosing{ClosedAt: "6:00 PM", TotalMXN: d("1650")},
	})
	archive := &memory.Archive{}
	uc := newUseCase(store, archive)

	for _, cred := range []*entity.Credential{nil, {UserID: "E1", PIN: "1111"}, {UserID: "ADM", PIN: "0"}} {
		err := uc.Reopen(context.Background(), "T1", cred)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		s, _ := uc.Get(context.Background(), "T1")
		assert.Equal(t, entity.ShiftClosed, s.State)
		assert.Equal(t, "6:00 PM", s.ClosedAt)
	}
	assert.Equal(t, 0, store.Calls("turnos.Reopen"))

	require.NoError(t, uc.Reopen(context.Background(), "T1", &entity.Credential{UserID: "ADM", PIN: "9999"}))
	s, _ := uc.Get(context.Background(), "T1")
	assert.True(t, s.IsOpen())
	assert.Empty(t, s.ClosedAt)
	assert.True(t, s.Closing.TotalMXN.Equal(d("1650")), "el cierre previo se conserva")

	hist, err := archive.ListClosures(context.Background(), "T1")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, ports.EventReopened, hist[0].Event)
	assert.Equal(t, "ADM", hist[0].By)

	err = uc.Reopen(context.Background(), "T1", &entity.Credential{UserID: "ADM", PIN: "9999"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestActiveFor(t *testing.T) {
	store := memory.NewStore().Seed(
		&entity.Shift{ID: "T1", State: entity.ShiftOpen, Operator: "Ana", Branch: "Centro"},
		&entity.Shift{ID: "T2", State: entity.ShiftOpen, Operator: "E1", Branch: "Norte"},
		&entity.Shift{ID: "T3", State: entity.ShiftClosed, Operator: "E1", Branch: "Sur"},
	)
	uc := newUseCase(store, nil)

	s, err := uc.ActiveFor(context.Background(), "E1", "centro")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "T1", s.ID, "coincide por nombre")

	s, err = uc.ActiveFor(context.Background(), "e1", "Norte")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "T2", s.ID, "coincide por ID")

	s, err = uc.ActiveFor(context.Background(), "E1", "Sur")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestActiveFor_EmpleadoSinNombre(t *testing.T) {
	store := memory.NewStore().Seed(
		&entity.Shift{ID: "T9", State: entity.ShiftOpen, Operator: "usuario", Branch: "Centro"},
		&entity.Shift{ID: "T10", State: entity.ShiftOpen, Operator: "", Branch: "Centro"},
	)
	uc := newUseCase(store, nil)

	s, err := uc.ActiveFor(context.Background(), "E7", "Centro")
	require.NoError(t, err)
	assert.Nil(t, s, "sin nombre solo coincide por ID")

	store.Seed(&entity.Shift{ID: "T11", State: entity.ShiftOpen, Operator: "E7", Branch: "Centro"})
	s, err = uc.ActiveFor(context.Background(), "E7", "Centro")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "T11", s.ID)
}
