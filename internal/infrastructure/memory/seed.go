package memory

import "github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"

// Seed agrega registros tal cual, sin contar llamadas.
func (s *Store) Seed(records ...any) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		switch v := rec.(type) {
		case *entity.Shift:
			s.shifts = append(s.shifts, v)
		case *entity.Sale:
			s.sales = append(s.sales, v)
		case *entity.SaleItem:
			s.items = append(s.items, v)
		case *entity.Payment:
			s.payments = append(s.payments, v)
		case *entity.CashMovement:
			s.movements = append(s.movements, v)
		default:
			panic("memory: registro no soportado")
		}
	}
	return s
}
