package report

import (
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/ovenlight/toastctl/internal/menu"
	"github.com/ovenlight/toastctl/internal/models"
)

// MenuLayout drives both the text and HTML menu renderings.
type MenuLayout struct {
	Restaurant models.Config
	GroupOrder []string
	Groups     map[string][]menu.GroupedItem
	ShowPrices bool
}

// MenuText renders a plain-text takeout menu.
func MenuText(layout MenuLayout) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString(centered(layout.Restaurant.RestaurantName, 50) + "\n")
	if layout.Restaurant.RestaurantTagline != "" {
		b.WriteString(centered(layout.Restaurant.RestaurantTagline, 50) + "\n")
	}
	b.WriteString(strings.Repeat("=", 50) + "\n")

	for _, groupName := range layout.GroupOrder {
		items := layout.Groups[groupName]
		if len(items) == 0 {
			continue
		}
		b.WriteString("\n" + strings.ToUpper(groupName) + "\n")
		b.WriteString(strings.Repeat("-", len(groupName)) + "\n")
		for _, item := range items {
			if layout.ShowPrices && item.FormattedPrice != "" {
				fmt.Fprintf(&b, "  %-38s %8s\n", item.Name, item.FormattedPrice)
			} else {
				fmt.Fprintf(&b, "  %s\n", item.Name)
			}
		}
	}

	b.WriteString("\n" + strings.Repeat("=", 50) + "\n")
	for _, line := range []string{
		layout.Restaurant.RestaurantAddress,
		layout.Restaurant.RestaurantPhone,
		layout.Restaurant.RestaurantWebsite,
	} {
		if line != "" {
			b.WriteString(centered(line, 50) + "\n")
		}
	}
	return b.String()
}

func centered(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	pad := (width - n) / 2
	return strings.Repeat(" ", pad) + s
}

var menuHTMLTemplate = template.Must(template.New("menu").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Restaurant.RestaurantName}} Menu</title>
<style>
body { font-family: Georgia, serif; max-width: 720px; margin: 2em auto; color: #222; }
header { text-align: center; border-bottom: 3px double #333; padding-bottom: 1em; }
h1 { margin-bottom: 0.1em; }
.tagline { font-style: italic; color: #666; }
h2 { border-bottom: 1px solid #999; padding-bottom: 0.2em; margin-top: 1.6em; }
.item { display: flex; justify-content: space-between; padding: 0.25em 0; }
.price { white-space: nowrap; padding-left: 1em; }
footer { text-align: center; margin-top: 2.5em; border-top: 1px solid #999; padding-top: 1em; color: #555; }
</style>
</head>
<body>
<header>
<h1>{{.Restaurant.RestaurantName}}</h1>
{{if .Restaurant.RestaurantTagline}}<div class="tagline">{{.Restaurant.RestaurantTagline}}</div>{{end}}
</header>
{{range $group := .GroupOrder}}{{with index $.Groups $group}}
<h2>{{$group}}</h2>
{{range .}}<div class="item"><span>{{.Name}}</span>{{if and $.ShowPrices .FormattedPrice}}<span class="price">{{.FormattedPrice}}</span>{{end}}</div>
{{end}}{{end}}{{end}}
<footer>
{{if .Restaurant.RestaurantAddress}}<div>{{.Restaurant.RestaurantAddress}}</div>{{end}}
{{if .Restaurant.RestaurantPhone}}<div>{{.Restaurant.RestaurantPhone}}</div>{{end}}
{{if .Restaurant.RestaurantWebsite}}<div>{{.Restaurant.RestaurantWebsite}}</div>{{end}}
</footer>
</body>
</html>
`))

// MenuHTML renders the preview menu page.
func MenuHTML(layout MenuLayout) (string, error) {
	var b strings.Builder
	if err := menuHTMLTemplate.Execute(&b, layout); err != nil {
		return "", fmt.Errorf("rendering menu html: %w", err)
	}
	return b.String(), nil
}
