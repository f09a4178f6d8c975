package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"drivesync/internal/db"
	"drivesync/internal/destination"
	"drivesync/internal/filter"
	"drivesync/internal/model"
	"drivesync/internal/repository"
	"drivesync/internal/source"
	"drivesync/internal/syncer"
	"drivesync/internal/util"
)

var dryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one batch sync from Google Drive to the destination bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() {
			_ = log.Sync()
		}()
		ctx := cmd.Context()

		store, err := destination.New(ctx, cfg.Supabase)
		if err != nil {
			return err
		}
		if err := store.Ping(ctx); err != nil {
			return err
		}
		log.Info("destination bucket reachable",
			zap.String("bucket", cfg.Supabase.BucketName))

		var src source.Source
		switch cfg.GoogleDrive.AuthMode {
		case "session":
			src = source.NewSession(cfg.GoogleDrive.SessionToken)
		default:
			src, err = source.NewDrive(ctx)
			if err != nil {
				return err
			}
		}
		log.Info("source ready",
			zap.String("auth_mode", cfg.GoogleDrive.AuthMode))

		scope := source.Scope{
			FolderID: cfg.GoogleDrive.FolderID,
			Query:    cfg.GoogleDrive.Query,
			PageSize: int64(cfg.GoogleDrive.PageSize),
		}
		lister := source.NewLister(src, scope, source.PagePolicy(cfg.GoogleDrive.OnPageError), log)
		keys := filter.NewKeyBuilder(cfg.Sync.PreserveFolderStructure, cfg.GoogleDrive.FolderID, src, log)

		var opts []syncer.Option
		if cfg.History.Enabled {
			gdb, err := db.Open(cfg.History.DBPath)
			if err != nil {
				log.Warn("history disabled, could not open db",
					zap.Error(err))
			} else {
				opts = append(opts, syncer.WithHistory(repository.NewHistoryRepository(gdb)))
			}
		}

		s := syncer.New(lister, src, store, keys, syncer.Config{
			BatchSize:        cfg.Sync.BatchSize,
			Delay:            cfg.Sync.Delay(),
			MaxFileSizeBytes: cfg.GoogleDrive.MaxFileSizeBytes(),
			SkipExisting:     cfg.Sync.SkipExisting,
			DryRun:           dryRun,
		}, log, opts...)

		if dryRun {
			fmt.Println("DRY RUN MODE - no files will be transferred")
		}

		report, runErr := s.Run(ctx)
		printSummary(report, dryRun)
		return runErr
	},
}

func printSummary(report *model.Report, dry bool) {
	line := "=================================================="
	fmt.Println(line)
	fmt.Println("SYNC SUMMARY")
	fmt.Println(line)
	fmt.Printf("Total files found: %d\n", report.Found)
	if dry {
		fmt.Printf("Would sync: %d\n", report.WouldSync)
	} else {
		fmt.Printf("Successfully synced: %d\n", report.Synced)
	}
	fmt.Printf("Skipped files: %d\n", report.Skipped)
	for reason, count := range report.SkipReasons {
		fmt.Printf("  %s: %d\n", reason, count)
	}
	fmt.Printf("Failed files: %d\n", report.Failed)
	fmt.Printf("Batches processed: %d\n", report.Batches)
	fmt.Printf("Total data synced: %s (%s)\n",
		util.FormatMB(report.TotalBytes),
		util.FormatBytes(report.TotalBytes))
	if report.PartialList {
		fmt.Println("Warning: source listing was cut short, results are partial")
	}
	fmt.Println(line)
}

func init() {
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be synced without transferring anything")
	rootCmd.AddCommand(syncCmd)
}
