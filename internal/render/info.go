package render

import (
	"bytes"
	"fmt"
	"html/template"
	"meetup-point-service/internal/domain"
	"strconv"
)

var infoTemplate = template.Must(template.New("info").Funcs(template.FuncMap{
	"rating": func(r float64) string { return strconv.FormatFloat(r, 'f', -1, 64) },
}).Parse(`<div class="info">` +
	`<h3>{{.Name}}</h3>` +
	`{{if .Rating}}<h6>{{rating .Rating}} / 5</h6>{{end}}` +
	`{{if .Website}}<p><a href="{{.Website}}" target="_blank" rel="noopener">{{.Website}}</a></p>{{end}}` +
	`{{if .Address}}<p>{{.Address}}</p>{{end}}` +
	`{{range .Travel}}<p>Travel duration from {{.Origin}}: {{.Text}}</p>{{end}}` +
	`</div>`))

type travelLine struct {
	Origin string
	Text   string
}

type infoData struct {
	Name    string
	Rating  float64
	Website string
	Address string
	Travel  []travelLine
}

// CandidateInfo renders the info-window HTML for a scored candidate.
// origins are the two origin addresses as typed by the user.
func CandidateInfo(c *domain.Candidate, origins [2]string) (string, error) {
	data := infoData{
		Name:    c.Name,
		Rating:  c.Rating,
		Address: c.ResolvedAddress(),
	}
	if c.Details != nil {
		data.Website = c.Details.Website
	}
	for i, d := range c.Durations {
		if d.Text == "" {
			continue
		}
		data.Travel = append(data.Travel, travelLine{Origin: origins[i], Text: d.Text})
	}

	return execute(data)
}

// OriginInfo renders the info-window HTML for an origin marker.
func OriginInfo(o domain.Origin) (string, error) {
	return execute(infoData{Name: o.Address, Address: o.Location.String()})
}

func execute(data infoData) (string, error) {
	var buf bytes.Buffer
	if err := infoTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render info: %w", err)
	}
	return buf.String(), nil
}
