// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package jobs

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Job is a job posting. The API does not fix a schema, so the common
// fields are lifted out of the raw object and the rest stay in Fields.
type Job struct {
	ID          string
	Title       string
	Company     string
	Location    string
	Description string
	PostedAt    string

	Fields map[string]any
}

// UnmarshalJSON decodes a job object, accepting numeric or string ids.
func (j *Job) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*j = Job{
		ID:          stringField(raw, "id", "_id", "job_id"),
		Title:       stringField(raw, "title"),
		Company:     stringField(raw, "company"),
		Location:    stringField(raw, "location"),
		Description: stringField(raw, "description"),
		PostedAt:    stringField(raw, "posted_date", "posted_at", "created_at", "date"),
		Fields:      raw,
	}
	return nil
}

// MarshalJSON encodes the raw object the job was decoded from.
func (j Job) MarshalJSON() ([]byte, error) {
	if j.Fields != nil {
		return json.Marshal(j.Fields)
	}
	return json.Marshal(map[string]string{
		"id":          j.ID,
		"title":       j.Title,
		"company":     j.Company,
		"location":    j.Location,
		"description": j.Description,
		"posted_date": j.PostedAt,
	})
}

func stringField(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch v := v.(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}

// Application is a multipart job application.
type Application struct {
	// Fields are plain form values, e.g. name, email, job_id.
	Fields map[string]string
	// Files are attachments such as a resume.
	Files []File
}

// File is one attachment of an application.
type File struct {
	Field    string
	Name     string
	Contents io.Reader
}

// FormatJobDate renders an ISO date as "January 2, 2006". Unparseable
// input yields "Invalid Date".
func FormatJobDate(s string) string {
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return "Invalid Date"
}
