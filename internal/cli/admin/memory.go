package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhaven/botadmin/internal/domain"
	"github.com/quillhaven/botadmin/internal/repository"
	"github.com/quillhaven/botadmin/internal/service"
)

func MemoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Manage the bot's conversation memory",
		Long:  "Preview, seed, and clear the bot's rolling conversation memory",
	}

	cmd.AddCommand(MemoryPreviewCmd())
	cmd.AddCommand(MemoryAddCmd())
	cmd.AddCommand(MemoryClearCmd())

	return cmd
}

func MemoryPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the most recent memory summary",
		RunE:  runMemoryPreview,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runMemoryPreview(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := service.NewMemoryService(repository.NewMemoryRepository(pool))
	preview, err := svc.Preview(ctx)
	if err != nil {
		return fmt.Errorf("failed to load memory preview: %w", err)
	}

	if outputFormat == "json" {
		data := map[string]interface{}{
			"summary":    preview.Summary,
			"char_count": preview.CharCount,
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
		return nil
	}

	if preview.Summary == nil {
		fmt.Println("Memory is empty")
		return nil
	}
	fmt.Printf("Summary (%d chars):\n%s\n", preview.CharCount, *preview.Summary)
	return nil
}

func MemoryAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a memory entry",
		Long:  "Append one memory entry; mainly useful for seeding a development database",
		RunE:  runMemoryAdd,
	}

	cmd.Flags().String("user", "", "User ID the entry belongs to")
	cmd.Flags().String("message", "", "Raw message text")
	cmd.Flags().String("summary", "", "Rolling summary text")
	cmd.MarkFlagRequired("summary")

	return cmd
}

func runMemoryAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	userID, _ := cmd.Flags().GetString("user")
	message, _ := cmd.Flags().GetString("message")
	summary, _ := cmd.Flags().GetString("summary")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := repository.NewMemoryRepository(pool)
	entry := &domain.MemoryEntry{UserID: userID, Message: message, Summary: summary}
	if err := repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert memory entry: %w", err)
	}

	fmt.Printf("Memory entry %d added\n", entry.ID)
	return nil
}

func MemoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all memory entries",
		RunE:  runMemoryClear,
	}
}

func runMemoryClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := service.NewMemoryService(repository.NewMemoryRepository(pool))
	if err := svc.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear memory: %w", err)
	}

	fmt.Println("Memory cleared")
	return nil
}
