package reconciliation

import (
	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
	"github.com/diegoleonuniline/umo-pos-api/pkg/textfold"
)

// Bucket destino de un pago dentro del corte.
type Bucket string

const (
	BucketCashMXN           Bucket = "efectivoMXN"
	BucketCashUSD           Bucket = "efectivoUSD"
	BucketCashCAD           Bucket = "efectivoCAD"
	BucketCashEUR           Bucket = "efectivoEUR"
	BucketBBVANacional      Bucket = "bbvaNacional"
	BucketBBVAInternacional Bucket = "bbvaInternacional"
	BucketClipNacional      Bucket = "clipNacional"
	BucketClipInternacional Bucket = "clipInternacional"
	BucketTransfer          Bucket = "transferencia"
	BucketOtherCard         Bucket = "otrasTarjetas"
)

// IsCash los cubos de efectivo se quedan en su divisa: son billetes en el cajón.
func (b Bucket) IsCash() bool {
	switch b {
	case BucketCashMXN, BucketCashUSD, BucketCashCAD, BucketCashEUR:
		return true
	}
	return false
}

// ClassifyPayment ubica un pago por subcadenas del método (sin distinguir
// mayúsculas ni acentos). Lo que no se reconoce cae en otras tarjetas.
func ClassifyPayment(method, currency string) Bucket {
	m := textfold.Fold(method)
	intl := textfold.ContainsAny(m, "internacional", "international", "intl")

	switch {
	case m == "" || textfold.ContainsAny(m, "efectivo", "cash", "contado"):
		switch money.NormalizeCurrency(currency) {
		case money.USD:
			return BucketCashUSD
		case money.CAD:
			return BucketCashCAD
		case money.EUR:
			return BucketCashEUR
		default:
			return BucketCashMXN
		}
	case textfold.ContainsAny(m, "bbva"):
		if intl {
			return BucketBBVAInternacional
		}
		return BucketBBVANacional
	case textfold.ContainsAny(m, "clip"):
		if intl {
			return BucketClipInternacional
		}
		return BucketClipNacional
	case textfold.ContainsAny(m, "transfer", "spei"):
		return BucketTransfer
	default:
		return BucketOtherCard
	}
}

// PaymentBreakdown acumulado por cubo. TotalMXN suma todo convertido a pesos.
type PaymentBreakdown struct {
	CashMXN           decimal.Decimal
	CashUSD           decimal.Decimal
	CashCAD           decimal.Decimal
	CashEUR           decimal.Decimal
	BBVANacional      decimal.Decimal
	BBVAInternacional decimal.Decimal
	ClipNacional      decimal.Decimal
	ClipInternacional decimal.Decimal
	Transfer          decimal.Decimal
	OtherCard         decimal.Decimal
	TotalMXN          decimal.Decimal
	Count             int
}

// add acumula amount en el cubo b. Los cubos que no son efectivo reciben el
// monto ya convertido; los de efectivo el monto en su divisa.
func (p *PaymentBreakdown) add(b Bucket, native, base decimal.Decimal) {
	p.Count++
	p.TotalMXN = p.TotalMXN.Add(base)
	switch b {
	case BucketCashMXN:
		p.CashMXN = p.CashMXN.Add(native)
	case BucketCashUSD:
		p.CashUSD = p.CashUSD.Add(native)
	case BucketCashCAD:
		p.CashCAD = p.CashCAD.Add(native)
	case BucketCashEUR:
		p.CashEUR = p.CashEUR.Add(native)
	case BucketBBVANacional:
		p.BBVANacional = p.BBVANacional.Add(base)
	case BucketBBVAInternacional:
		p.BBVAInternacional = p.BBVAInternacional.Add(base)
	case BucketClipNacional:
		p.ClipNacional = p.ClipNacional.Add(base)
	case BucketClipInternacional:
		p.ClipInternacional = p.ClipInternacional.Add(base)
	case BucketTransfer:
		p.Transfer = p.Transfer.Add(base)
	default:
		p.OtherCard = p.OtherCard.Add(base)
	}
}
