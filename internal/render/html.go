package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"datavista/internal/chart"
)

// pageTemplate is a self-contained chart page: the option document is
// embedded as JSON and handed to ECharts loaded from the CDN.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="https://cdn.jsdelivr.net/npm/echarts@5/dist/echarts.min.js"></script>
</head>
<body>
  <div id="chart" style="width: 960px; height: 600px; margin: 0 auto;"></div>
  <script>
    var option = {{.Option}};
    echarts.init(document.getElementById("chart")).setOption(option);
  </script>
</body>
</html>
`

var page = template.Must(template.New("chart").Parse(pageTemplate))

// WriteHTML renders the spec to a standalone HTML document under dir,
// creating the directory if it does not exist, and returns the written path.
func WriteHTML(spec *chart.Spec, dir, filename string) (string, error) {
	optionJSON, err := OptionsJSON(spec)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", chart.NewCollaboratorError("renderer", fmt.Errorf("failed to create output dir %q: %w", dir, err))
	}

	if filename == "" {
		filename = defaultFilename(spec, ".html")
	}
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", chart.NewCollaboratorError("renderer", err)
	}
	defer f.Close()

	data := struct {
		Title  string
		Option template.JS
	}{
		Title:  spec.Title,
		Option: template.JS(optionJSON),
	}
	if err := page.Execute(f, data); err != nil {
		return "", chart.NewCollaboratorError("renderer", err)
	}
	return path, nil
}

// defaultFilename derives a file name from the chart kind and dataset name.
func defaultFilename(spec *chart.Spec, ext string) string {
	base := strings.TrimSuffix(filepath.Base(spec.Dataset), filepath.Ext(spec.Dataset))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	if base == "" {
		base = "visualization"
	}
	return fmt.Sprintf("%s_%s%s", base, spec.Kind, ext)
}
