package server

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/parceltrack/internal/apiclient"
)

// newUpstreamProxy forwards image-proxy and static image requests to the tracker.
func newUpstreamProxy(target *url.URL, logger *slog.Logger) gin.HandlerFunc {
	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("upstream request failed",
			"path", r.URL.Path,
			"request_id", r.Header.Get(apiclient.HeaderRequestID),
			"err", err,
		)
		w.WriteHeader(http.StatusBadGateway)
	}

	return func(c *gin.Context) {
		c.Request.Header.Set(apiclient.HeaderRequestID, GetRequestID(c))
		proxy.ServeHTTP(c.Writer, c.Request)
	}
}
