package router

import "net/http"

type AccountRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, customerContext func(http.Handler) http.Handler)
}

func New(
	accountController AccountRouteRegistrar,
	customerContext func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	if accountController != nil {
		accountController.RegisterRoutes(mux, customerContext)
	}

	return mux
}
