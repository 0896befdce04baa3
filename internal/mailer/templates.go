package mailer

type templateDef struct {
	subject string
	body    string
}

var templates = map[string]templateDef{
	"orderConfirmation": {
		subject: "E-Jardin - Confirmation de commande #{{.order.Number}}",
		body: `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #16a34a; text-align: center;">Merci pour votre commande !</h1>

  <p>Cher(e) client(e),</p>

  <p>Nous avons bien re&ccedil;u votre commande #{{.order.Number}}. Voici un r&eacute;capitulatif :</p>

  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    {{range .order.Items}}
    <div style="margin-bottom: 10px;">
      <strong>{{.Product.Name}}</strong><br>
      Quantit&eacute;: {{.Quantity}}<br>
      Prix: {{printf "%.2f" .Price}}&euro;
    </div>
    {{end}}
    <div style="border-top: 1px solid #d1d5db; margin-top: 15px; padding-top: 15px;">
      <strong>Total: {{printf "%.2f" .order.TotalPrice}}&euro;</strong>
    </div>
  </div>

  <p>Nous vous tiendrons inform&eacute;(e) de l'avancement de votre commande.</p>

  <p>Cordialement,<br>L'&eacute;quipe E-Jardin</p>
</div>`,
	},

	"orderStatusUpdate": {
		subject: "E-Jardin - Mise à jour de votre commande #{{.order.Number}}",
		body: `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #16a34a; text-align: center;">Mise &agrave; jour de votre commande</h1>

  <p>Cher(e) client(e),</p>

  <p>Le statut de votre commande #{{.order.Number}} a &eacute;t&eacute; mis &agrave; jour :</p>

  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0; text-align: center;">
    <h2 style="color: #16a34a; margin: 0;">
      {{if eq .order.Status "processing"}}En cours de pr&eacute;paration{{else if eq .order.Status "shipped"}}Exp&eacute;di&eacute;e{{else if eq .order.Status "delivered"}}Livr&eacute;e{{else}}En attente{{end}}
    </h2>
  </div>

  {{if eq .order.Status "shipped"}}
  <p>Votre commande a &eacute;t&eacute; exp&eacute;di&eacute;e. Num&eacute;ro de suivi :</p>
  <p style="text-align: center; font-size: 1.2em; font-weight: bold;">{{.order.TrackingNumber}}</p>
  {{end}}

  <p>Vous pouvez suivre votre commande &agrave; tout moment sur votre compte E-Jardin.</p>

  <p>Cordialement,<br>L'&eacute;quipe E-Jardin</p>
</div>`,
	},

	"stockAlert": {
		subject: "E-Jardin - Alerte stock faible : {{.product.Name}}",
		body: `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #dc2626; text-align: center;">Alerte Stock</h1>

  <p>Le produit suivant a un stock faible :</p>

  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h2 style="margin: 0 0 10px 0;">{{.product.Name}}</h2>
    <p>Stock actuel : <strong>{{.product.Stock}}</strong></p>
  </div>

  <p>Veuillez r&eacute;approvisionner ce produit d&egrave;s que possible.</p>
</div>`,
	},

	"scheduledReport": {
		subject: "E-Jardin - Rapport {{.kind}} ({{.cadence}})",
		body: `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #16a34a; text-align: center;">Rapport p&eacute;riodique E-Jardin</h1>

  <p>Type : <strong>{{.kind}}</strong> &mdash; Fr&eacute;quence : <strong>{{.cadence}}</strong></p>

  {{with .report.Sales}}
  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p>P&eacute;riode : {{.PeriodStart.Format "02/01/2006"}} &ndash; {{.PeriodEnd.Format "02/01/2006"}}</p>
    <p>Chiffre d'affaires : <strong>{{printf "%.2f" .TotalSales}}&euro;</strong></p>
    <p>Nombre de commandes : <strong>{{.OrderCount}}</strong></p>
  </div>
  {{if .TopProducts}}
  <h2>Meilleures ventes</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr style="text-align: left; border-bottom: 1px solid #d1d5db;">
      <th>Produit</th><th>Vendus</th><th>Revenu</th>
    </tr>
    {{range .TopProducts}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{.TotalSold}}</td>
      <td>{{printf "%.2f" .Revenue}}&euro;</td>
    </tr>
    {{end}}
  </table>
  {{end}}
  {{end}}

  {{with .report.Inventory}}
  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p>Produits au catalogue : <strong>{{.TotalProducts}}</strong></p>
    <p>Produits en stock faible : <strong>{{.LowStockCount}}</strong></p>
  </div>
  {{if .LowStock}}
  <h2>Stock faible</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr style="text-align: left; border-bottom: 1px solid #d1d5db;">
      <th>Produit</th><th>Stock</th>
    </tr>
    {{range .LowStock}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{.Stock}}</td>
    </tr>
    {{end}}
  </table>
  {{end}}
  {{end}}

  <p>Cordialement,<br>L'&eacute;quipe E-Jardin</p>
</div>`,
	},
}
