package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/quillhaven/botadmin/internal/config"
	"github.com/quillhaven/botadmin/internal/repository"
	"github.com/quillhaven/botadmin/internal/service"
)

func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the bot configuration",
		Long:  "Show and update the bot's system instructions and Discord channel",
	}

	cmd.AddCommand(ConfigShowCmd())
	cmd.AddCommand(ConfigSetCmd())

	return cmd
}

func ConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current bot configuration",
		RunE:  runConfigShow,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := service.NewBotConfigService(repository.NewBotConfigRepository(pool))
	cfg, err := svc.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load bot config: %w", err)
	}

	if cfg == nil {
		fmt.Println("No configuration saved yet")
		return nil
	}

	if outputFormat == "json" {
		data := map[string]interface{}{
			"system_instructions": cfg.SystemInstructions,
			"discord_channel_id":  cfg.DiscordChannelID,
			"updated_at":          cfg.UpdatedAt,
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		fmt.Printf("Channel:      %s\n", cfg.DiscordChannelID)
		fmt.Printf("Updated:      %s\n", cfg.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Printf("Instructions:\n%s\n", cfg.SystemInstructions)
	}

	return nil
}

func ConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the bot configuration",
		Long:  "Update the bot's system instructions and/or Discord channel; omitted fields keep their value",
		RunE:  runConfigSet,
	}

	cmd.Flags().String("instructions", "", "New system instructions")
	cmd.Flags().String("channel", "", "New Discord channel ID")

	return cmd
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var input service.UpdateConfigInput
	if cmd.Flags().Changed("instructions") {
		v, _ := cmd.Flags().GetString("instructions")
		input.SystemInstructions = &v
	}
	if cmd.Flags().Changed("channel") {
		v, _ := cmd.Flags().GetString("channel")
		input.DiscordChannelID = &v
	}
	if input.SystemInstructions == nil && input.DiscordChannelID == nil {
		return fmt.Errorf("nothing to update: pass --instructions and/or --channel")
	}

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := service.NewBotConfigService(repository.NewBotConfigRepository(pool))
	updated, err := svc.Update(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to update bot config: %w", err)
	}

	fmt.Printf("Configuration updated (channel: %s)\n", updated.DiscordChannelID)
	return nil
}

func getDBPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
