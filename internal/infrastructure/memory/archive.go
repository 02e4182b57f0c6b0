package memory

import (
	"context"
	"sync"
	"time"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/ports"
)

var _ ports.ClosureArchive = (*Archive)(nil)

// Archive historial de cortes en memoria.
type Archive struct {
	mu      sync.Mutex
	records []ports.ClosureRecord
	Err     error
}

func (a *Archive) SaveClosure(_ context.Context, rec ports.ClosureRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	rec.Event = ports.EventClosed
	a.records = append(a.records, rec)
	return nil
}

func (a *Archive) RecordReopen(_ context.Context, shiftID, by string, at time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.records = append(a.records, ports.ClosureRecord{ShiftID: shiftID, Event: ports.EventReopened, By: by, At: at})
	return nil
}

func (a *Archive) ListClosures(_ context.Context, shiftID string) ([]ports.ClosureRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	var out []ports.ClosureRecord
	for _, r := range a.records {
		if r.ShiftID == shiftID {
			out = append(out, r)
		}
	}
	return out, nil
}
