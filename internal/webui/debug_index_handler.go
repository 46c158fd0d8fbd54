package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"transitboard.org/internal/app"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type WebUI struct {
	*app.Application
}

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   content,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "config":
		data = webUI.Config
		title = "Runtime configuration"
	case "stops":
		data = webUI.Aggregator.Stops()
		title = "Configured stops"
	case "snapshots":
		data = webUI.Aggregator.Snapshots()
		title = "Latest snapshots"
	default:
		data = map[string]string{
			"error": "Please use one of the following: config, stops, snapshots.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
