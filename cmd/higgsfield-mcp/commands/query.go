package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"higgsfield-mcp/internal/domain"
	"higgsfield-mcp/internal/providers/higgsfield"
)

func newStylesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List Soul style presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := g.setup()
			if err != nil {
				return err
			}
			styles, err := client.ListStyles(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), styles)
		},
	}
}

func newMotionsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "motions",
		Short: "List DoP motion presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := g.setup()
			if err != nil {
				return err
			}
			motions, err := client.ListMotions(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), motions)
		},
	}
}

func newCharactersCmd(g *globalFlags) *cobra.Command {
	var page, pageSize int
	cmd := &cobra.Command{
		Use:   "characters",
		Short: "List character references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := g.setup()
			if err != nil {
				return err
			}
			result, err := client.ListCharacters(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().IntVar(&page, "page", higgsfield.DefaultCharactersPage, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", higgsfield.DefaultCharactersSize, "items per page")
	return cmd
}

func newStatusCmd(g *globalFlags) *cobra.Command {
	var (
		wait     bool
		interval time.Duration
		timeout  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "status <job_set_id>",
		Short: "Show a job set, optionally waiting until it finishes",
		Example: `  higgsfield-mcp status 3c90c3cc-0d44-4b50-8888-8dd25736052a
  higgsfield-mcp status 3c90c3cc-0d44-4b50-8888-8dd25736052a --wait --interval 5s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, client, err := g.setup()
			if err != nil {
				return err
			}
			if !wait {
				set, err := client.GetJobSet(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), set)
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			set, err := client.WaitForJobSet(ctx, args[0], interval, func(s *domain.JobSet) {
				logger.Info().Str("job_set_id", s.ID).Str("status", string(s.Summary())).Msg("polled job set")
			})
			if err != nil {
				return fmt.Errorf("wait for job set %s: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), set)
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until every job is completed, failed or nsfw")
	cmd.Flags().DurationVar(&interval, "interval", higgsfield.DefaultPollInterval, "poll interval when waiting")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "give up waiting after this long (0 waits forever)")
	return cmd
}
