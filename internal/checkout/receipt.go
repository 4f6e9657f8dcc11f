package checkout

import (
	"html/template"
	"io"

	"petspa/internal/domain"
)

// The receipt is a self-contained document styled for the browser's print
// dialog. It is a convenience copy only; the server-issued invoice record
// stays authoritative.
var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>PetSPA Receipt {{.Number}}</title>
<style>
body { font-family: Georgia, serif; margin: 2rem auto; max-width: 640px; color: #222; }
h1 { font-size: 1.4rem; border-bottom: 2px solid #222; padding-bottom: .4rem; }
table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
th, td { text-align: left; padding: .35rem .5rem; border-bottom: 1px solid #ccc; }
td.num, th.num { text-align: right; }
tfoot td { font-weight: bold; border-top: 2px solid #222; }
.meta { color: #555; font-size: .9rem; }
@media print { body { margin: 0; } }
</style>
</head>
<body onload="window.print()">
<h1>PetSPA &mdash; Receipt {{.Number}}</h1>
<p class="meta">Date: {{.Date}} &middot; Status: {{.Status}}<br>
Client: {{.Client.Name}} &lt;{{.Client.Email}}&gt;
{{- if .PaymentMethod}}<br>Payment: {{.PaymentMethod}}{{end}}
{{- if .DeliveryAddress}}<br>Delivery: {{.DeliveryAddress}}{{end}}</p>
<table>
<thead><tr><th>Item</th><th class="num">Qty</th><th class="num">Unit</th><th class="num">Subtotal</th></tr></thead>
<tbody>
{{- range .LineItems}}
<tr><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{printf "%.2f" .UnitPrice}}</td><td class="num">{{printf "%.2f" .Subtotal}}</td></tr>
{{- end}}
</tbody>
<tfoot><tr><td colspan="3">Total</td><td class="num">{{printf "%.2f" .Total}}</td></tr></tfoot>
</table>
<p class="meta">This is a courtesy receipt. The invoice on file at PetSPA is the official record.</p>
</body>
</html>
`))

// WriteReceipt renders the printable receipt for an invoice.
func WriteReceipt(w io.Writer, inv domain.Invoice) error {
	return receiptTmpl.Execute(w, inv)
}
