// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package jobs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL})
}

func jsonReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// =============================================================================
// LIST / GET TESTS
// =============================================================================

func TestListJobs(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		jsonReply(http.StatusOK, `{"jobs":[
			{"id": 7, "title": "Backend Engineer", "company": "Acme", "posted_date": "2024-03-05"},
			{"_id": "abc", "title": "Designer", "salary": 100}
		]}`)(w, r)
	})

	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "/jobs", path)
	assert.Equal(t, "7", jobs[0].ID)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "2024-03-05", jobs[0].PostedAt)
	assert.Equal(t, "abc", jobs[1].ID)
	assert.Equal(t, float64(100), jobs[1].Fields["salary"])
}

func TestListJobs_MissingFieldIsEmpty(t *testing.T) {
	c := newTestClient(t, jsonReply(http.StatusOK, `{}`))

	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestGetJob(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		jsonReply(http.StatusOK, `{"job":{"id":"42","title":"SRE"}}`)(w, r)
	})

	job, err := c.GetJob(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "/jobs/42", path)
	assert.Equal(t, "SRE", job.Title)
}

func TestGetJob_AbsentIsNil(t *testing.T) {
	c := newTestClient(t, jsonReply(http.StatusOK, `{"job":null}`))

	job, err := c.GetJob(context.Background(), "1")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestListApplications(t *testing.T) {
	c := newTestClient(t, jsonReply(http.StatusOK, `{"applications":[{"name":"Ada","job_id":"7"}]}`))

	apps, err := c.ListApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Ada", apps[0]["name"])
}

func TestListApplications_MissingFieldIsEmpty(t *testing.T) {
	c := newTestClient(t, jsonReply(http.StatusOK, `{"status":"ok"}`))

	apps, err := c.ListApplications(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestSubmitApplication_Multipart(t *testing.T) {
	var fields map[string]string
	var resume string
	var contentType string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fields = map[string]string{
			"name":   r.FormValue("name"),
			"job_id": r.FormValue("job_id"),
		}
		f, _, err := r.FormFile("resume")
		if err == nil {
			data, _ := io.ReadAll(f)
			resume = string(data)
			f.Close()
		}
		jsonReply(http.StatusCreated, `{"message":"Application received","id":12}`)(w, r)
	})

	out, err := c.SubmitApplication(context.Background(), Application{
		Fields: map[string]string{"name": "Ada", "job_id": "7"},
		Files:  []File{{Field: "resume", Name: "resume.txt", Contents: strings.NewReader("resume body")}},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data"), "Content-Type = %q", contentType)
	assert.Equal(t, map[string]string{"name": "Ada", "job_id": "7"}, fields)
	assert.Equal(t, "resume body", resume)
	assert.Equal(t, "Application received", out["message"])
}

func TestSubmitApplication_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"Resume is required"}`, "Resume is required"},
		{"message field", `{"message":"Position closed"}`, "Position closed"},
		{"neither", `{}`, "Submission failed"},
		{"not json", `oops`, "Submission failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, jsonReply(http.StatusBadRequest, tc.body))

			_, err := c.SubmitApplication(context.Background(), Application{
				Fields: map[string]string{"name": "Ada"},
			})

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "err = %v", err)
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestSubmitApplication_NoResponse(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: baseURL})
	_, err := c.SubmitApplication(context.Background(), Application{
		Fields: map[string]string{"name": "Ada"},
	})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "err = %v", err)
	assert.Equal(t, "No response received from server", apiErr.Message)
	assert.Equal(t, 0, apiErr.Status)
}

// =============================================================================
// TRANSPORT TESTS
// =============================================================================

func TestGet_ErrorFieldOrFallback(t *testing.T) {
	c := newTestClient(t, jsonReply(http.StatusNotFound, `{"error":"Job not found"}`))
	_, err := c.GetJob(context.Background(), "404")
	assert.EqualError(t, err, "Job not found")

	c = newTestClient(t, jsonReply(http.StatusForbidden, ``))
	_, err = c.ListJobs(context.Background())
	assert.EqualError(t, err, "An unexpected error occurred")
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		jsonReply(http.StatusOK, `{"jobs":[]}`)(w, r)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, MaxRetries: 2})
	_, err := c.ListJobs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_RetriesExhaustedKeepsServerMessage(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		jsonReply(http.StatusInternalServerError, `{"error":"database offline"}`)(w, r)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, MaxRetries: 1})
	_, err := c.ListApplications(context.Background())

	assert.EqualError(t, err, "database offline")
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_RateLimiterHonoursContext(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1", RequestsPerSecond: 0.001, Burst: 1})

	// Drain the single token, then the next wait cannot be satisfied.
	require.True(t, c.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListJobs(ctx)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
}

// =============================================================================
// FORMATTING TESTS
// =============================================================================

func TestFormatJobDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-03-05", "March 5, 2024"},
		{"2024-12-31T23:59:59Z", "December 31, 2024"},
		{"2024-01-15T08:30:00", "January 15, 2024"},
		{"2023-07-04 10:00:00", "July 4, 2023"},
		{"next tuesday", "Invalid Date"},
		{"", "Invalid Date"},
	}

	for _, tc := range tests {
		if got := FormatJobDate(tc.in); got != tc.want {
			t.Errorf("FormatJobDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
