package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const unknownRoute = "unmatched"

// Metrics собирает количество и длительность HTTP запросов.
// В метку пути попадает шаблон маршрута (/api/v1/bookings/{bookingId}), а не фактический URL
func Metrics(collector HTTPMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			writer := newStatusWriter(w)

			next.ServeHTTP(writer, r)

			collector.ObserveHTTPRequest(r.Method, routeTemplate(r), writer.status, time.Since(start))
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unknownRoute
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unknownRoute
	}
	return tpl
}
