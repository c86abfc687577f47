// Package listing renders marketplace-ready HTML for a parcel. The financing
// table in the output comes from the same calculator the site quotes from, so
// a listing never advertises a different number than checkout shows.
package listing

import (
	"bytes"
	"html/template"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/internal/pkg/financing"
)

const listingTemplate = `<div style="font-family:Arial,Helvetica,sans-serif;max-width:900px;margin:0 auto;">
  <h1 style="color:#2d5a27;">{{.Property.Title}}</h1>
  <p><strong>{{.Property.Acreage}} acres</strong> in {{.Property.County}} County, {{.Property.State}}{{if .Property.APN}} &middot; APN {{.Property.APN}}{{end}}</p>
  {{if .PrimaryImage}}<img src="{{.PrimaryImage}}" alt="{{.Property.Title}}" style="max-width:100%;border-radius:6px;" />{{end}}
  <div>{{.Description}}</div>
  <h2 style="color:#2d5a27;">Cash Price: ${{.Price}}</h2>
  <h3>Owner Financing Available &mdash; No Credit Check</h3>
  <table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse;">
    <tr style="background:#2d5a27;color:#fff;">
      <th>Down Payment</th><th>Rate (APR)</th><th>Term</th><th>Monthly Payment</th>
    </tr>
    {{range .Plans}}
    <tr>
      <td>${{.DownPayment.StringFixed 2}}</td>
      <td>{{.AnnualRate}}%</td>
      <td>{{.TermMonths}} months</td>
      <td>${{.MonthlyPayment.StringFixed 2}}</td>
    </tr>
    {{end}}
  </table>
  <p><em>All financed plans include a one-time ${{.ProcessingFee}} document processing fee.</em></p>
  {{if .Footer}}<div>{{.Footer}}</div>{{end}}
</div>`

var tmpl = template.Must(template.New("listing").Parse(listingTemplate))

type templateData struct {
	Property      *models.Property
	Description   template.HTML
	Price         string
	Plans         []financing.PaymentPlan
	ProcessingFee string
	PrimaryImage  string
	Footer        template.HTML
}

// Generate renders the listing HTML for a property using the given term.
func Generate(property *models.Property, termMonths int, footer string) (string, error) {
	plans, err := financing.AllPlans(property.Price, termMonths)
	if err != nil {
		return "", err
	}

	primary := ""
	for _, img := range property.Images {
		if img.IsPrimary {
			primary = img.PublicURL
			break
		}
	}
	if primary == "" && len(property.Images) > 0 {
		primary = property.Images[0].PublicURL
	}

	data := templateData{
		Property:      property,
		Description:   template.HTML(property.Description),
		Price:         property.Price.StringFixed(2),
		Plans:         plans,
		ProcessingFee: financing.StandardPolicy.ProcessingFee.StringFixed(2),
		PrimaryImage:  primary,
		Footer:        template.HTML(footer),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
