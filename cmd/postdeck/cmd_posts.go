package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var postsCmd = &cobra.Command{
	Use:   "posts [user-id]",
	Short: "List a user's posts",
	Args:  cobra.ExactArgs(1),
	RunE:  runPosts,
}

// commandContext bounds a subcommand's remote calls by the configured timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, cfg.Timeout())
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s %q: want a positive integer", what, arg)
	}
	return id, nil
}

func runPosts(cmd *cobra.Command, args []string) error {
	userID, err := parseID(args[0], "user id")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	posts, err := newClient().PostsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch posts for user %d: %w", userID, err)
	}
	logger.Debug("Fetched posts", zap.Int("user_id", userID), zap.Int("count", len(posts)))

	if len(posts) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "user %d has no posts\n", userID)
		return nil
	}
	rows := make([][]string, len(posts))
	for i, p := range posts {
		rows[i] = []string{strconv.Itoa(p.ID), p.Title}
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"ID", "TITLE"}, rows))
	return nil
}
