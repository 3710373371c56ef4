package request

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	var got string
	var gotErr error
	r := chi.NewRouter()
	r.Get("/items/{id}", func(w http.ResponseWriter, req *http.Request) {
		got, gotErr = ID(req, "id")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/6F9619FF-8B86-D011-B42D-00CF4FC964FF", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00cf4fc964ff", got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))
	assert.ErrorIs(t, gotErr, ErrInvalidID)
}

func TestListFilter(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
		check   func(t *testing.T, q, status string, from, to time.Time)
	}{
		{
			name:  "empty",
			query: "",
			check: func(t *testing.T, q, status string, from, to time.Time) {
				assert.Empty(t, q)
				assert.Empty(t, status)
				assert.True(t, from.IsZero())
				assert.True(t, to.IsZero())
			},
		},
		{
			name:  "all fields",
			query: "q=+alice+&status=completed&from=2024-01-01&to=2024-01-31",
			check: func(t *testing.T, q, status string, from, to time.Time) {
				assert.Equal(t, "alice", q)
				assert.Equal(t, "completed", status)
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
				assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), to)
			},
		},
		{name: "same day", query: "from=2024-01-01&to=2024-01-01", check: func(*testing.T, string, string, time.Time, time.Time) {}},
		{name: "bad from", query: "from=01-2024", wantErr: true},
		{name: "bad to", query: "to=yesterday", wantErr: true},
		{name: "reversed range", query: "from=2024-02-01&to=2024-01-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			f, err := ListFilter(q)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, f.Query, f.Status, f.From, f.To)
		})
	}
}
