// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morganforge/tabchat/internal/jobs"
	"github.com/morganforge/tabchat/internal/ui/styles"
	"github.com/morganforge/tabchat/internal/util"
)

// Column widths for `jobs list`.
const (
	colID      = 8
	colTitle   = 32
	colCompany = 20
)

func newJobsCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse job postings and submit applications",
	}
	cmd.AddCommand(
		newJobsListCmd(st),
		newJobsShowCmd(st),
		newJobsApplyCmd(st),
		newJobsApplicationsCmd(st),
	)
	return cmd
}

// jobsClient builds a jobs client from the configuration.
func (s *state) jobsClient() (*jobs.Client, error) {
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	return jobs.NewClient(jobs.Config{
		BaseURL:           cfg.Jobs.BaseURL,
		Timeout:           cfg.Jobs.Timeout(),
		MaxRetries:        cfg.Jobs.MaxRetries,
		RequestsPerSecond: cfg.Jobs.RequestsPerSecond,
		Burst:             cfg.Jobs.Burst,
		Logger:            s.cliLogger(cfg),
	}), nil
}

func newJobsListCmd(st *state) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List job postings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := st.jobsClient()
			if err != nil {
				return err
			}
			list, err := client.ListJobs(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "No jobs posted.")
				return nil
			}
			fmt.Fprintln(out, util.PadWidth("ID", colID)+" "+util.PadWidth("TITLE", colTitle)+" "+
				util.PadWidth("COMPANY", colCompany)+" POSTED")
			for _, j := range list {
				fmt.Fprintln(out, util.PadWidth(j.ID, colID)+" "+util.PadWidth(j.Title, colTitle)+" "+
					util.PadWidth(j.Company, colCompany)+" "+jobDate(j))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON")
	return cmd
}

func newJobsShowCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := st.jobsClient()
			if err != nil {
				return err
			}
			job, err := client.GetJob(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if job == nil {
				return fmt.Errorf("job %s not found", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, speakerStyle.Render(job.Title))
			if job.Company != "" {
				fmt.Fprintln(out, "Company: "+job.Company)
			}
			if job.Location != "" {
				fmt.Fprintln(out, "Location: "+job.Location)
			}
			fmt.Fprintln(out, "Posted: "+jobDate(*job))
			if job.Description != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, job.Description)
			}
			return nil
		},
	}
}

func newJobsApplyCmd(st *state) *cobra.Command {
	var fields, files []string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Submit a job application",
		Example: `  tabchat jobs apply --field job_id=7 --field name="Ada Lovelace" \
      --field email=ada@example.com --file resume=./resume.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, closeFiles, err := buildApplication(fields, files)
			if err != nil {
				return err
			}
			defer closeFiles()

			client, err := st.jobsClient()
			if err != nil {
				return err
			}
			result, err := client.SubmitApplication(cmd.Context(), application)
			if err != nil {
				return err
			}

			msg, _ := result["message"].(string)
			if msg == "" {
				msg = "Application submitted"
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess(msg))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&fields, "field", nil, "form field as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "attachment as field=path (repeatable)")
	return cmd
}

func newJobsApplicationsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "applications",
		Short: "List submitted applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := st.jobsClient()
			if err != nil {
				return err
			}
			apps, err := client.ListApplications(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(apps) == 0 {
				fmt.Fprintln(out, "No applications yet.")
				return nil
			}
			for i, a := range apps {
				if i > 0 {
					fmt.Fprintln(out)
				}
				keys := make([]string, 0, len(a))
				for k := range a {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "%s: %v\n", k, a[k])
				}
			}
			return nil
		},
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// buildApplication parses key=value fields and field=path attachments. The
// returned func closes the opened files.
func buildApplication(fields, files []string) (jobs.Application, func(), error) {
	application := jobs.Application{Fields: make(map[string]string, len(fields))}
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, kv := range fields {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return jobs.Application{}, func() {}, fmt.Errorf("invalid --field %q, want key=value", kv)
		}
		application.Fields[k] = v
	}

	for _, kv := range files {
		k, path, ok := strings.Cut(kv, "=")
		if !ok || k == "" || path == "" {
			closeAll()
			return jobs.Application{}, func() {}, fmt.Errorf("invalid --file %q, want field=path", kv)
		}
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return jobs.Application{}, func() {}, fmt.Errorf("open attachment: %w", err)
		}
		opened = append(opened, f)
		application.Files = append(application.Files, jobs.File{
			Field:    k,
			Name:     filepath.Base(path),
			Contents: f,
		})
	}
	return application, closeAll, nil
}

func jobDate(j jobs.Job) string {
	if j.PostedAt == "" {
		return "-"
	}
	return jobs.FormatJobDate(j.PostedAt)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
