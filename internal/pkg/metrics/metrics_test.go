package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRender(t *testing.T) {
	okBefore := testutil.ToFloat64(RendersTotal.WithLabelValues("ad", "ok"))
	errBefore := testutil.ToFloat64(RendersTotal.WithLabelValues("ad", "error"))

	ObserveRender("ad", time.Now(), nil)
	ObserveRender("ad", time.Now(), errors.New("boom"))
	ObserveRender("ad", time.Now(), nil)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(RendersTotal.WithLabelValues("ad", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(RendersTotal.WithLabelValues("ad", "error")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveGenerator(time.Now())

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "adstudio_generator_duration_seconds"))
}
