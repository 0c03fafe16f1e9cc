package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"higgsfield-mcp/internal/domain"
	"higgsfield-mcp/internal/storage"
	"higgsfield-mcp/pkg/zip"
)

type downloadedFile struct {
	JobID string `json:"job_id"`
	URL   string `json:"url"`
	Path  string `json:"path"`
}

type downloadReport struct {
	JobSetID string           `json:"job_set_id"`
	Files    []downloadedFile `json:"files"`
	Skipped  []string         `json:"skipped,omitempty"`
	Archive  string           `json:"archive,omitempty"`
}

func newDownloadCmd(g *globalFlags) *cobra.Command {
	var (
		dir     string
		preview bool
		archive string
	)
	cmd := &cobra.Command{
		Use:   "download <job_set_id>",
		Short: "Save the result files of a completed job set",
		Long: `Save the result files of a job set to a local directory.

Files are written as <dir>/<job_set_id>/<job_id><ext>. Jobs that are not
completed are skipped. Result URLs expire after 7 days.`,
		Example: `  higgsfield-mcp download 3c90c3cc-0d44-4b50-8888-8dd25736052a --dir ./results
  higgsfield-mcp download 3c90c3cc-0d44-4b50-8888-8dd25736052a --zip results.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, client, err := g.setup()
			if err != nil {
				return err
			}
			store, err := storage.NewFileStore(dir)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			set, err := client.GetJobSet(ctx, args[0])
			if err != nil {
				return err
			}

			report := downloadReport{JobSetID: set.ID}
			var entries []zip.Entry
			for _, job := range set.Jobs {
				if job.Status != domain.JobStatusCompleted || job.Results == nil {
					report.Skipped = append(report.Skipped, job.ID)
					continue
				}
				fileURL := job.Results.Raw.URL
				if preview {
					fileURL = job.Results.Min.URL
				}

				dl, err := client.OpenResult(ctx, fileURL)
				if err != nil {
					return fmt.Errorf("download job %s: %w", job.ID, err)
				}
				key := set.ID + "/" + job.ID + dl.Extension
				path, err := store.Save(ctx, key, dl.Body)
				dl.Body.Close()
				if err != nil {
					return err
				}
				logger.Debug().Str("job_id", job.ID).Str("path", path).Msg("result saved")

				rel, err := filepath.Rel(store.BasePath(), path)
				if err != nil {
					return fmt.Errorf("archive name for job %s: %w", job.ID, err)
				}
				report.Files = append(report.Files, downloadedFile{JobID: job.ID, URL: fileURL, Path: path})
				entries = append(entries, zip.Entry{Name: filepath.ToSlash(rel), Path: path})
			}
			if len(report.Files) == 0 {
				if summary := set.Summary(); summary != "" {
					return fmt.Errorf("job set %s has no completed results (status %s)", set.ID, summary)
				}
				return fmt.Errorf("job set %s has no completed results", set.ID)
			}

			if archive != "" {
				if err := writeArchive(archive, entries); err != nil {
					return err
				}
				report.Archive = archive
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "higgsfield-results", "directory to save results into")
	cmd.Flags().BoolVar(&preview, "preview", false, "save the compressed preview instead of the full quality file")
	cmd.Flags().StringVar(&archive, "zip", "", "also bundle the saved files into this zip archive")
	return cmd
}

func writeArchive(name string, entries []zip.Entry) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	if err := zip.Archive(f, entries); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
