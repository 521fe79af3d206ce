package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/practice-booking/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/practice-booking/internal/http/middleware"
	"github.com/wolfman30/practice-booking/internal/observability/metrics"
	"github.com/wolfman30/practice-booking/internal/session"
	"github.com/wolfman30/practice-booking/internal/timeslots"
	"github.com/wolfman30/practice-booking/internal/web"
	"github.com/wolfman30/practice-booking/pkg/logging"
)

func newTestRouter(t *testing.T, limiter *httpmiddleware.RateLimiter) http.Handler {
	t.Helper()

	logger := logging.Default()
	renderer, err := web.NewRenderer(web.Site{
		PracticeName:      "SampurnaManovikas",
		PractitionerName:  "Dr. Kiran S. Sawekar",
		PractitionerTitle: "Consultant Psychiatrist",
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.NewBookingMetrics(reg)
	store := session.NewMemoryStore(time.Hour)
	slots := timeslots.NewMockProvider(0)

	return New(&Config{
		Logger: logger,
		Booking: handlers.NewBookingHandler(handlers.BookingConfig{
			Store:    store,
			Slots:    slots,
			Renderer: renderer,
			Metrics:  m,
			Logger:   logger,
		}),
		Pages:              handlers.NewPagesHandler(store, renderer, logger),
		Slots:              handlers.NewSlotsHandler(slots, m, logger),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: []string{"https://book.example.com"},
		RateLimiter:        limiter,
	})
}

// browser replays the session cookie like a real client would.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	return &browser{t: t, handler: h, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
	return rec
}

func TestRouterHealthEndpoint(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestRouterBookingFlow(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, nil))

	rec := b.do(http.MethodGet, "/book", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, b.cookies, httpmiddleware.SessionCookieName)

	steps := []struct {
		path string
		form url.Values
	}{
		{"/book/date", url.Values{"date": {time.Now().AddDate(0, 0, 3).Format("2006-01-02")}}},
		{"/book/next", url.Values{}},
		{"/book/time", url.Values{"time": {"2:00 PM"}}},
		{"/book/session-type", url.Values{"sessionType": {"phone"}}},
		{"/book/next", url.Values{}},
	}
	for _, s := range steps {
		rec = b.do(http.MethodPost, s.path, s.form)
		require.Equal(t, http.StatusSeeOther, rec.Code, s.path)
		require.Equal(t, "/book", rec.Header().Get("Location"), s.path)
	}

	rec = b.do(http.MethodPost, "/book/next", url.Values{
		"clientName":  {"John Doe"},
		"clientPhone": {"5551234567"},
		"clientEmail": {"john@example.com"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/confirmation/"), location)

	rec = b.do(http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Phone Call Appointment")
	assert.Contains(t, body, "2:00 PM")
	assert.Contains(t, body, "John Doe")

	rec = b.do(http.MethodGet, "/book", nil)
	assert.Contains(t, rec.Body.String(), "Select a Date", "a new booking starts after submission")
}

func TestRouterFlashShownOnce(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, nil))
	b.do(http.MethodGet, "/book", nil)

	b.do(http.MethodPost, "/book/next", url.Values{})
	assert.Contains(t, b.do(http.MethodGet, "/book", nil).Body.String(), "Please select a date")
	assert.NotContains(t, b.do(http.MethodGet, "/book", nil).Body.String(), "Please select a date")
}

func TestRouterConfirmationWithoutRecord(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/confirmation", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `class="spinner"`)
}

func TestRouterSlotsCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/slots?date="+time.Now().AddDate(0, 0, 1).Format("2006-01-02"), nil)
	req.Header.Set("Origin", "https://book.example.com")
	rr := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://book.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Body.String(), `"slots"`)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, nil)
	b := newBrowser(t, h)
	b.do(http.MethodGet, "/book", nil)
	b.do(http.MethodPost, "/book/next", url.Values{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `practice_booking_blocked_transitions_total{reason="date_required",step="date"} 1`)
}

func TestRouterRateLimitsFormPosts(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, httpmiddleware.NewRateLimiter(0, 1)))

	assert.Equal(t, http.StatusSeeOther, b.do(http.MethodPost, "/book/next", url.Values{}).Code)
	assert.Equal(t, http.StatusTooManyRequests, b.do(http.MethodPost, "/book/next", url.Values{}).Code)
	assert.Equal(t, http.StatusOK, b.do(http.MethodGet, "/book", nil).Code, "page loads are not throttled")
}

func TestRouterNotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page not found")
}

func TestRouterStaticAssets(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
