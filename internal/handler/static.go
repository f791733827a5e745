package handler

import "net/http"

const indexPath = "/static/index.html"

// RedirectToIndex handles GET / by sending the browser to the frontend
func RedirectToIndex() http.Handler {
	return http.RedirectHandler(indexPath, http.StatusTemporaryRedirect)
}

// StaticFiles serves dir under /static/
func StaticFiles(dir string) http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))
}
