package httpserver_test

import (
	"bechdel/dataset"
	"bechdel/film"
	"bechdel/httpserver"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFilmService struct {
	mock.Mock
}

func (m *MockFilmService) LoadAll(ctx context.Context, p film.Pagination) (film.FilmResult, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(film.FilmResult), args.Error(1)
}

func (m *MockFilmService) LoadByYear(ctx context.Context, year int, p film.Pagination) (film.FilmResult, error) {
	args := m.Called(ctx, year, p)
	return args.Get(0).(film.FilmResult), args.Error(1)
}

func (m *MockFilmService) LoadYears(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int), args.Error(1)
}

var (
	alien = film.Film{Year: 1979, IMDB: "tt0078748", Title: "Alien", Test: "ok", CleanTest: "ok", Binary: film.OutcomePass}
	et    = film.Film{Year: 1982, IMDB: "tt0083866", Title: "E.T. the Extra-Terrestrial", Test: "notalk", CleanTest: "notalk", Binary: film.OutcomeFail}
)

func newFilmServer(svc film.Service) *httpserver.Server {
	server := httpserver.Default(testConfig())
	server.FilmService = svc
	return server
}

func TestListFilms(t *testing.T) {
	svc := new(MockFilmService)
	server := newFilmServer(svc)

	t.Run("should return 200 with every film when unpaginated", func(t *testing.T) {
		expected := film.FilmResult{TotalCount: 2, Results: []film.Film{alien, et}}
		svc.On("LoadAll", mock.Anything, film.Pagination{}).Return(expected, nil).Once()

		recorder := makeRequest(server, http.MethodGet, "/api/films", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "200", resp.Code)
		assert.Equal(t, "OK", resp.Message)
		var result film.FilmResult
		decodeAPIResult(t, resp.Result, &result)
		assert.Equal(t, expected, result)
		svc.AssertExpectations(t)
	})

	t.Run("should forward page and pageSize", func(t *testing.T) {
		expected := film.FilmResult{TotalCount: 2, Results: []film.Film{et}}
		svc.On("LoadAll", mock.Anything, film.Pagination{Page: 2, PageSize: 1}).Return(expected, nil).Once()

		recorder := makeRequest(server, http.MethodGet, "/api/films?page=2&pageSize=1", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var result film.FilmResult
		decodeAPIResult(t, decodeAPIResponse(t, recorder).Result, &result)
		assert.Equal(t, 2, result.TotalCount)
		assert.Equal(t, []film.Film{et}, result.Results)
		svc.AssertExpectations(t)
	})

	t.Run("should serialize an empty page as an empty array", func(t *testing.T) {
		svc.On("LoadAll", mock.Anything, film.Pagination{Page: 9, PageSize: 10}).
			Return(film.FilmResult{TotalCount: 2, Results: []film.Film{}}, nil).Once()

		recorder := makeRequest(server, http.MethodGet, "/api/films?page=9&pageSize=10", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"results":[]`)
		assert.Contains(t, recorder.Body.String(), `"totalCount":2`)
		svc.AssertExpectations(t)
	})

	t.Run("should return 400 when pagination is invalid", func(t *testing.T) {
		svc := new(MockFilmService)
		server := newFilmServer(svc)
		for _, query := range []string{"?page=-1", "?pageSize=-5", "?pageSize=10001", "?page=abc"} {
			recorder := makeRequest(server, http.MethodGet, "/api/films"+query, nil)

			assert.Equal(t, http.StatusBadRequest, recorder.Code, query)
		}
		svc.AssertNotCalled(t, "LoadAll", mock.Anything, mock.Anything)
	})

	t.Run("should return 503 when the dataset is not loaded", func(t *testing.T) {
		svc.On("LoadAll", mock.Anything, film.Pagination{}).Return(film.FilmResult{}, dataset.ErrUnavailable).Once()

		recorder := makeRequest(server, http.MethodGet, "/api/films", nil)

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100503", resp.Code)
		assert.Empty(t, recorder.Header().Get("Cache-Control"), "errors must not be cached")
		svc.AssertExpectations(t)
	})
}

func TestListFilmsByYear(t *testing.T) {
	svc := new(MockFilmService)
	server := newFilmServer(svc)

	t.Run("should return 200 with films of the year", func(t *testing.T) {
		expected := film.FilmResult{TotalCount: 1, Results: []film.Film{alien}}
		svc.On("LoadByYear", mock.Anything, 1979, film.Pagination{}).Return(expected, nil).Once()

		recorder := makeRequest(server, http.MethodGet, "/api/films/1979", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var result film.FilmResult
		decodeAPIResult(t, decodeAPIResponse(t, recorder).Result, &result)
		assert.Equal(t, expected, result)
		svc.AssertExpectations(t)
	})

	t.Run("should return 404 when no film matches the year", func(t *testing.T) {
		svc.On("LoadByYear", mock.Anything, 1800, film.Pagination{}).Return(film.FilmResult{}, film.ErrNoFilmsForYear).Once()

		recorder := makeRequest(server, http.MethodGet, "/api/films/1800", nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100404", resp.Code)
		assert.Equal(t, "film: no films for year", resp.Message)
		assert.Empty(t, recorder.Header().Get("Cache-Control"))
		svc.AssertExpectations(t)
	})

	t.Run("should return 400 when the year is not a number", func(t *testing.T) {
		svc := new(MockFilmService)
		server := newFilmServer(svc)
		recorder := makeRequest(server, http.MethodGet, "/api/films/nineteen", nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		svc.AssertNotCalled(t, "LoadByYear", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListYears(t *testing.T) {
	svc := new(MockFilmService)
	server := newFilmServer(svc)

	t.Run("should return 200 with the years list", func(t *testing.T) {
		svc.On("LoadYears", mock.Anything).Return([]int{1979, 1982}, nil).Once()

		recorder := makeRequest(server, http.MethodGet, "/api/years", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var result struct {
			Data []int `json:"data"`
		}
		decodeAPIResult(t, decodeAPIResponse(t, recorder).Result, &result)
		assert.Equal(t, []int{1979, 1982}, result.Data)
		svc.AssertExpectations(t)
	})

	t.Run("should return an empty list for an empty dataset", func(t *testing.T) {
		svc.On("LoadYears", mock.Anything).Return([]int{}, nil).Once()

		recorder := makeRequest(server, http.MethodGet, "/api/years", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"data":[]`)
		svc.AssertExpectations(t)
	})
}

func TestFilmRoutesWithoutService(t *testing.T) {
	server := httpserver.Default(testConfig())

	recorder := makeRequest(server, http.MethodGet, "/api/years", nil)

	assert.Equal(t, http.StatusNotImplemented, recorder.Code)
}

func TestFilmRoutesSetCacheControl(t *testing.T) {
	svc := new(MockFilmService)
	cfg := testConfig()
	cfg.HTTP.CacheMaxAge = 120
	server := httpserver.Default(cfg)
	server.FilmService = svc
	svc.On("LoadYears", mock.Anything).Return([]int{1979}, nil).Once()

	recorder := makeRequest(server, http.MethodGet, "/api/years", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "public, max-age=120", recorder.Header().Get("Cache-Control"))
	assert.Contains(t, recorder.Header().Values("Vary"), "Accept-Encoding")
}

func TestFilmRoutesCompressResponses(t *testing.T) {
	svc := new(MockFilmService)
	server := newFilmServer(svc)
	svc.On("LoadAll", mock.Anything, film.Pagination{}).
		Return(film.FilmResult{TotalCount: 2, Results: []film.Film{alien, et}}, nil).Once()

	recorder := makeRequest(server, http.MethodGet, "/api/films", map[string]string{"Accept-Encoding": "gzip"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))
}

func TestFilmQueriesAreCounted(t *testing.T) {
	svc := new(MockFilmService)
	server := newFilmServer(svc)
	svc.On("LoadYears", mock.Anything).Return([]int{1979}, nil).Once()
	svc.On("LoadByYear", mock.Anything, 1800, film.Pagination{}).Return(film.FilmResult{}, film.ErrNoFilmsForYear).Once()

	makeRequest(server, http.MethodGet, "/api/years", nil)
	makeRequest(server, http.MethodGet, "/api/films/1800", nil)
	recorder := httptest.NewRecorder()
	server.Router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `film_queries_total{operation="load_years",outcome="ok"} 1`)
	assert.Contains(t, body, `film_queries_total{operation="load_by_year",outcome="not_found"} 1`)
	assert.Contains(t, body, `http_requests_total{method="GET",route="/api/films/:year",status="404"} 1`)
}
