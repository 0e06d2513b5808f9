// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package jobs is a client for the jobs/applications API that shares a
// backend with the chat endpoint.
//
// Endpoints, relative to the base URL:
//
//	GET  /jobs          {"jobs": [...]}
//	GET  /jobs/{id}     {"job": {...}}
//	POST /apply         multipart/form-data
//	GET  /applications  {"applications": [...]}
//
// Every failure is an *APIError carrying the server's message when there
// is one.
package jobs
