package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"transitboard.org/internal/app"
)

func SetWebUIRoutes(router *httprouter.Router, application *app.Application) {
	webUI := &WebUI{Application: application}
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
}
