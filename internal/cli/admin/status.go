package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhaven/botadmin/internal/domain"
	"github.com/quillhaven/botadmin/internal/repository"
)

func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show bot connectivity and knowledge base size",
		RunE:  runStatus,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	statusRepo := repository.NewBotStatusRepository(pool)
	knowledgeRepo := repository.NewKnowledgeRepository(pool)

	status, err := statusRepo.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrStatusNotFound) {
		return fmt.Errorf("failed to load bot status: %w", err)
	}

	chunks, err := knowledgeRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count knowledge chunks: %w", err)
	}

	if outputFormat == "json" {
		data := map[string]interface{}{
			"knowledge_chunks": chunks,
		}
		if status != nil {
			data["connected"] = status.Connected
			data["last_heartbeat"] = status.LastHeartbeat
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
		return nil
	}

	if status == nil {
		fmt.Println("Bot:    never connected")
	} else if status.Connected {
		fmt.Printf("Bot:    connected (last heartbeat %s)\n", status.LastHeartbeat.Format("2006-01-02 15:04:05 MST"))
	} else {
		fmt.Printf("Bot:    disconnected (last heartbeat %s)\n", status.LastHeartbeat.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Printf("Chunks: %d\n", chunks)

	return nil
}
