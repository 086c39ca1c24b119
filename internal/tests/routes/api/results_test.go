package api_test

import (
	"net/http"
	"testing"

	"github.com/lk16/reversi/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestGetResults(t *testing.T) {
	app := tests.NewTestApp()

	tests := []struct {
		name           string
		setAuth        func(req *http.Request)
		wantStatusCode int
	}{
		{
			name:           "NoAuth",
			setAuth:        func(_ *http.Request) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "WrongToken",
			setAuth:        func(req *http.Request) { req.Header.Set("x-token", "wrong") },
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "WrongPassword",
			setAuth:        func(req *http.Request) { req.SetBasicAuth(tests.TestUsername, "wrong") },
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "Token",
			setAuth:        func(req *http.Request) { req.Header.Set("x-token", tests.TestToken) },
			wantStatusCode: http.StatusServiceUnavailable,
		},
		{
			name:           "BasicAuth",
			setAuth:        func(req *http.Request) { req.SetBasicAuth(tests.TestUsername, tests.TestPassword) },
			wantStatusCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/results?limit=10", nil)
			require.NoError(t, err)

			tt.setAuth(req)

			resp, err := app.Test(req)
			require.NoError(t, err)

			defer resp.Body.Close()

			require.Equal(t, tt.wantStatusCode, resp.StatusCode)
		})
	}
}
