package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"drivesync/internal/db"
	"drivesync/internal/model"
	"drivesync/internal/repository"
	"drivesync/internal/util"
)

var historyN int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent transfer history",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := db.Open(cfg.History.DBPath)
		if err != nil {
			return err
		}

		repo := repository.NewHistoryRepository(gdb)
		transfers, err := repo.GetRecent(historyN)
		if err != nil {
			return err
		}

		if len(transfers) == 0 {
			fmt.Println("no history yet")
			return nil
		}

		for _, t := range transfers {
			status := "✓"
			if t.Status == model.StatusFailed {
				status = "✗"
			}

			detail := t.Reason
			if t.Status == model.StatusSynced {
				detail = util.FormatBytes(t.Bytes)
			}
			if t.ErrMsg != "" {
				detail = t.ErrMsg
			}

			fmt.Printf("%s [%s] %-10s %s -> %s %s\n",
				status,
				t.SyncedAt.Format("2006-01-02 15:04:05"),
				t.Status,
				t.Name,
				t.Key,
				detail,
			)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of history entries to show")
	rootCmd.AddCommand(historyCmd)
}
