package handler

import (
	"net/http"

	"github.com/vasapolrittideah/course-catalog-api/shared/httpx"
)

func Dashboard(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteMessage(w, http.StatusOK, "Welcome to your dashboard!")
}

func Healthz(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteMessage(w, http.StatusOK, "ok")
}
