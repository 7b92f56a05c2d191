package app

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	texttemplate "text/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/printologia/printshop/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html.tmpl"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt.tmpl"))
)

var moneyPrinter = message.NewPrinter(language.MustParse("es-MX"))

// emailData is the view both the HTML and plain-text bodies render.
type emailData struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Details string
	Quote   *quoteView
}

type quoteView struct {
	Material  string
	Width     string
	Height    string
	Area      string
	UnitPrice string
	Subtotal  string
	TaxRate   string
	Tax       string
	Total     string
	Savings   string
	Discount  bool
}

func newQuoteView(q domain.Quote) *quoteView {
	return &quoteView{
		Material:  q.Material.DisplayName(),
		Width:     strconv.FormatFloat(q.Width, 'f', -1, 64),
		Height:    strconv.FormatFloat(q.Height, 'f', -1, 64),
		Area:      q.Area.StringFixed(2),
		UnitPrice: formatMoney(q.UnitPrice, q.Currency),
		Subtotal:  formatMoney(q.Subtotal, q.Currency),
		TaxRate:   q.TaxRate.Shift(2).String() + "%",
		Tax:       formatMoney(q.Tax, q.Currency),
		Total:     formatMoney(q.Total, q.Currency),
		Savings:   formatMoney(q.Savings(), q.Currency),
		Discount:  q.HasBulkDiscount,
	}
}

// formatMoney renders an amount with thousands separators, e.g. "$1,948.80 MXN".
func formatMoney(d decimal.Decimal, currency string) string {
	f, _ := d.Round(2).Float64()
	return moneyPrinter.Sprintf("$%.2f %s", f, currency)
}

// render executes the named template pair into a notification body.
func render(name string, data emailData) (html, text string, err error) {
	var hb, tb bytes.Buffer

	if err := htmlTemplates.ExecuteTemplate(&hb, name+".html.tmpl", data); err != nil {
		return "", "", fmt.Errorf("rendering %s html: %w", name, err)
	}

	if err := textTemplates.ExecuteTemplate(&tb, name+".txt.tmpl", data); err != nil {
		return "", "", fmt.Errorf("rendering %s text: %w", name, err)
	}

	return hb.String(), tb.String(), nil
}
