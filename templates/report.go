package templates

import (
	"fmt"
	"html/template"
	"sort"
	"strings"

	"farewatch-service/internal/domain/entity"
)

// Renderer renders a run report to the HTML body delivered by the sinks.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer parses the report template.
func NewRenderer() (*Renderer, error) {
	tpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render builds the HTML report: one section per destination, cheapest trips
// first. The names map resolves IATA codes to display names; codes without
// an entry render as-is.
func (r *Renderer) Render(report *entity.RunReport, names map[string]string) (string, error) {
	view := buildView(report, names)
	var out strings.Builder
	if err := r.tpl.Execute(&out, view); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out.String(), nil
}

type reportView struct {
	Mode         string
	GeneratedAt  string
	Origins      string
	PriceLimit   float64
	FromCache    bool
	Observations int
	Destinations []destinationView
}

type destinationView struct {
	Name        string
	IATA        string
	LowestPrice float64
	Trips       []tripView
}

type tripView struct {
	Price         float64
	DurationDays  int
	OriginName    string
	OriginCode    string
	DepartureDate string
	DepartureTime string
	ReturnDate    string
	ReturnTime    string
}

func buildView(report *entity.RunReport, names map[string]string) reportView {
	byDestination := make(map[string][]entity.TripCandidate)
	for _, trip := range report.Trips {
		byDestination[trip.Destination] = append(byDestination[trip.Destination], trip)
	}

	destinations := make([]destinationView, 0, len(byDestination))
	for iata, trips := range byDestination {
		view := destinationView{
			Name:        displayName(iata, names),
			IATA:        iata,
			LowestPrice: trips[0].Price, // trips arrive ranked, head is cheapest
		}
		for _, trip := range trips {
			view.Trips = append(view.Trips, tripView{
				Price:         trip.Price,
				DurationDays:  trip.TripDays(),
				OriginName:    displayName(trip.Origin, names),
				OriginCode:    trip.Origin,
				DepartureDate: trip.Departure.Format("2006-01-02 (Monday)"),
				DepartureTime: clockOrNA(trip.DepartureTime),
				ReturnDate:    trip.Return.Format("2006-01-02 (Monday)"),
				ReturnTime:    clockOrNA(trip.ArrivalTime),
			})
		}
		destinations = append(destinations, view)
	}
	sort.Slice(destinations, func(i, j int) bool {
		if destinations[i].Name != destinations[j].Name {
			return destinations[i].Name < destinations[j].Name
		}
		return destinations[i].IATA < destinations[j].IATA
	})

	return reportView{
		Mode:         string(report.Mode),
		GeneratedAt:  report.GeneratedAt.Format("2006-01-02 15:04"),
		Origins:      strings.Join(report.Origins, ", "),
		PriceLimit:   report.PriceLimit,
		FromCache:    report.FromCache,
		Observations: report.Observations,
		Destinations: destinations,
	}
}

func displayName(iata string, names map[string]string) string {
	if name, ok := names[iata]; ok && name != "" {
		return name
	}
	return iata
}

func clockOrNA(c *entity.ClockTime) string {
	if c == nil {
		return "N/A"
	}
	return c.String()
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Farewatch report</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; color: #222; }
h1 { font-size: 20px; }
h2 { font-size: 16px; margin-bottom: 4px; }
table { border-collapse: collapse; margin-bottom: 18px; }
th, td { border: 1px solid #ccc; padding: 4px 10px; font-size: 13px; text-align: left; }
th { background: #f0f0f0; }
.meta { color: #666; font-size: 12px; }
.lowest { color: #0a7d32; font-weight: bold; }
</style>
</head>
<body>
<h1>Flight deals ({{.Mode}} mode)</h1>
<p class="meta">
Generated {{.GeneratedAt}} from {{.Origins}}.
Price limit {{printf "%.0f" .PriceLimit}} PLN.
{{if .FromCache}}Cached data, {{end}}{{.Observations}} observations considered.
</p>
{{if not .Destinations}}
<p>No qualifying trips found.</p>
{{end}}
{{range .Destinations}}
<h2>{{.Name}} ({{.IATA}}) <span class="lowest">from {{printf "%.0f" .LowestPrice}} PLN</span></h2>
<table>
<tr><th>Price (PLN)</th><th>Days</th><th>From</th><th>Departure</th><th>Take-off</th><th>Return</th><th>Landing</th></tr>
{{range .Trips}}
<tr>
<td>{{printf "%.0f" .Price}}</td>
<td>{{.DurationDays}}</td>
<td>{{.OriginName}} ({{.OriginCode}})</td>
<td>{{.DepartureDate}}</td>
<td>{{.DepartureTime}}</td>
<td>{{.ReturnDate}}</td>
<td>{{.ReturnTime}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`
