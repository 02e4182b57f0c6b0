package ports

import "github.com/diegoleonuniline/umo-pos-api/internal/domain/reconciliation"

// ReportRenderer genera el ticket imprimible de un corte.
type ReportRenderer interface {
	RenderReport(r *reconciliation.Report) ([]byte, error)
}
