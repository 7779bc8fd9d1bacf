package httpdemo_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewright/tablewright/server/httpdemo"
)

func post(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestParse_Arithmetic(t *testing.T) {
	router := httpdemo.NewRouter()
	rec := post(t, router, "/v1/parse", httpdemo.ParseRequest{Grammar: "arithmetic", Input: "1+2+3"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httpdemo.ParseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(6), resp.Result)
}

func TestParse_JSON(t *testing.T) {
	router := httpdemo.NewRouter()
	rec := post(t, router, "/v1/parse", httpdemo.ParseRequest{Grammar: "json", Input: `{"a":true,"b":[1,null]}`})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httpdemo.ParseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	obj, ok := resp.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, obj["a"])
	assert.Equal(t, []any{float64(1), nil}, obj["b"])
}

func TestParse_UnknownGrammarIsBadRequest(t *testing.T) {
	router := httpdemo.NewRouter()
	rec := post(t, router, "/v1/parse", httpdemo.ParseRequest{Grammar: "cobol", Input: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParse_MalformedInputIsBadRequestNotServerError(t *testing.T) {
	router := httpdemo.NewRouter()
	rec := post(t, router, "/v1/parse", httpdemo.ParseRequest{Grammar: "arithmetic", Input: "1+"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArtFind_HitAndMiss(t *testing.T) {
	router := httpdemo.NewRouter()

	rec := post(t, router, "/v1/art/find", httpdemo.ArtFindRequest{
		Keywords: []string{"true", "false", "null"},
		Key:      "false",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp httpdemo.ArtFindResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, 1, resp.Leaf)

	rec = post(t, router, "/v1/art/find", httpdemo.ArtFindRequest{
		Keywords: []string{"true", "false", "null"},
		Key:      "maybe",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Found)
}

func TestArtFind_EmptyKeywordsIsBadRequest(t *testing.T) {
	router := httpdemo.NewRouter()
	rec := post(t, router, "/v1/art/find", httpdemo.ArtFindRequest{Keywords: nil, Key: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestParse_ConcurrentRequestsAreIndependent exercises spec.md §5's
// concurrency guarantee directly: many goroutines parse different
// arithmetic expressions against the same router at once, and each must
// get back exactly its own answer - no request's driver can see another's
// partially-built stack.
func TestParse_ConcurrentRequestsAreIndependent(t *testing.T) {
	router := httpdemo.NewRouter()

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	results := make([]float64, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := post(t, router, "/v1/parse", httpdemo.ParseRequest{Grammar: "arithmetic", Input: "1+1"})
			if rec.Code != http.StatusOK {
				errs[i] = assert.AnError
				return
			}
			var resp httpdemo.ParseResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				errs[i] = err
				return
			}
			results[i] = resp.Result.(float64)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, float64(2), results[i])
	}
}
