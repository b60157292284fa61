package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"farmkv/farm"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var sumCmd = &cobra.Command{
	Use:   "sum [file...]",
	Short: "Print the FarmHash Hash64 of files",
	Long: "Print the FarmHash Hash64 of each file as 16 hex digits.\n\n" +
		"With no file, or when file is -, read standard input.",
	RunE: runSum,
}

// sumJobs bounds how many files are read at once.
var sumJobs int

func init() {
	rootCmd.AddCommand(sumCmd)

	sumCmd.Flags().IntVarP(&sumJobs, "jobs", "j", 4, "files hashed concurrently")
}

func runSum(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	return sumFiles(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args, sumJobs)
}

// sumFiles hashes paths concurrently and prints results in argument order.
func sumFiles(ctx context.Context, stdin io.Reader, w io.Writer, paths []string, jobs int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs < 1 {
		jobs = 1
	}
	// stdin can only be read once; every "-" gets the same sum.
	var stdinSum uint64
	for _, path := range paths {
		if path == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return errors.Wrap(err, "read stdin")
			}
			stdinSum = farm.Hash64(data)
			break
		}
	}

	sums := make([]uint64, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		if path == "-" {
			sums[i] = stdinSum
			continue
		}
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "read %s", path)
			}
			sums[i] = farm.Hash64(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, path := range paths {
		if _, err := fmt.Fprintf(w, "%016x  %s\n", sums[i], path); err != nil {
			return errors.Wrap(err, "write sum")
		}
	}
	return nil
}
