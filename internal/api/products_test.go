package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProductClient(t *testing.T, handler http.HandlerFunc) *ProductClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewProductClient(NewClient(server.URL))
}

func TestAll_Success(t *testing.T) {
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"p1","name":"Office Suite","price":1000},{"id":"p2","name":"Antivirus","price":450}]}`))
	})

	products, err := client.All(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, 1000.0, products[0].Price)
}

func TestAll_MissingData_ReturnsEmpty(t *testing.T) {
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	products, err := client.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestAll_NonArrayData_ReturnsEmpty(t *testing.T) {
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":"p1"}}`))
	})

	products, err := client.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestAll_MalformedBody_ReturnsEmpty(t *testing.T) {
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	products, err := client.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestByCategory_EncodesQuery(t *testing.T) {
	var rawQuery string
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.ByCategory(context.Background(), "office & tools")
	require.NoError(t, err)
	assert.Equal(t, "category=office+%26+tools", rawQuery)
}

func TestSearch_EncodesQuery(t *testing.T) {
	var rawQuery string
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.Search(context.Background(), "photo editor")
	require.NoError(t, err)
	assert.Equal(t, "search=photo+editor", rawQuery)
}

func TestFeatured_SetsFlag(t *testing.T) {
	var rawQuery string
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.Featured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "featured=true", rawQuery)
}

func TestByID_Success(t *testing.T) {
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/p1", r.URL.Path)
		w.Write([]byte(`{"data":{"id":"p1","name":"Office Suite","price":1000,"isFeatured":true}}`))
	})

	product, err := client.ByID(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Office Suite", product.Name)
	assert.True(t, product.IsFeatured)
}

func TestByID_MissingData_ReturnsNil(t *testing.T) {
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	product, err := client.ByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestByID_ServerError(t *testing.T) {
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ByID(context.Background(), "p1")
	assert.Error(t, err)
}

func TestByID_ConcurrentCallsCollapse(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(`{"data":{"id":"p1","name":"Office Suite"}}`))
	})

	const callers = 5
	var wg sync.WaitGroup
	results := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = client.ByID(context.Background(), "p1")
		}(i)
	}

	// Give the goroutines a moment to pile onto the same flight, then let
	// the single request finish.
	for hits.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range results {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)

	for i := 0; i < 5; i++ {
		req, _ := http.NewRequest(http.MethodGet, server.URL+"/products", nil)
		_, err := client.Do(req)
		require.Error(t, err)
	}

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/products", nil)
	_, err := client.Do(req)
	assert.ErrorIs(t, err, ErrAPIUnavailable)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client := NewClient("")
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
}
