// Package batch handles directory-level parsing through the worker pool.
package batch

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/akpradhn/nitiArthik/cmd/parse"
	"github.com/akpradhn/nitiArthik/cmd/root"
	"github.com/akpradhn/nitiArthik/internal/fileutils"
	"github.com/akpradhn/nitiArthik/internal/logging"
	"github.com/akpradhn/nitiArthik/internal/models"
	"github.com/akpradhn/nitiArthik/internal/worker"
)

// Cmd represents the batch command.
var Cmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Parse every PDF statement in a directory",
	Long: `Parse all PDF files in a directory. Documents are processed
concurrently by a worker pool; each gets its own outcome and records.`,
	Args: cobra.ExactArgs(1),
	RunE: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) error {
	dir := args[0]

	c, err := root.NewContainer()
	if err != nil {
		return err
	}

	files, err := fileutils.ListPDFFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", dir)
	}

	pool := c.NewPool()
	pool.Start(cmd.Context())
	defer pool.Close()

	type pending struct {
		file string
		id   string
	}
	var queued []pending

	for _, file := range files {
		meta, err := parse.BuildMeta(file, root.SharedFlags)
		if err != nil {
			return err
		}
		data, err := fileutils.ReadFile(file)
		if err != nil {
			root.Log.WithError(err).Error("skipping unreadable file",
				logging.Field{Key: "file", Value: file})
			continue
		}

		id, err := pool.Submit(data, meta)
		for err == worker.ErrQueueFull {
			time.Sleep(50 * time.Millisecond)
			id, err = pool.Submit(data, meta)
		}
		if err != nil {
			return fmt.Errorf("submitting %s: %w", file, err)
		}
		queued = append(queued, pending{file: file, id: id})
	}

	failures := 0
	for _, q := range queued {
		job := waitForJob(pool, q.id)
		detail := ""
		if job.Outcome != nil && job.Outcome.ErrorDetail != "" {
			detail = " - " + job.Outcome.ErrorDetail
		}
		records := 0
		if job.Outcome != nil {
			records = len(job.Outcome.Records)
		}
		fmt.Printf("%s: %s (%d record(s))%s\n", q.file, job.Status, records, detail)
		if job.Status == models.StatusFailed {
			failures++
		}
	}

	fmt.Printf("processed %d document(s), %d failed\n", len(queued), failures)
	if failures == len(queued) {
		return fmt.Errorf("all documents failed")
	}
	return nil
}

// waitForJob polls until the job leaves its queued and processing states.
func waitForJob(pool *worker.Pool, id string) worker.Job {
	for {
		job, ok := pool.Job(id)
		if !ok {
			return worker.Job{Status: models.StatusFailed}
		}
		if job.Status != models.StatusPending && job.Status != models.StatusProcessing {
			return job
		}
		time.Sleep(25 * time.Millisecond)
	}
}
