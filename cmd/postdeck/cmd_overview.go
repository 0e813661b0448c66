package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// overviewConcurrency caps the parallel comment fetches so the sandbox is
// not hammered with one request per post at once.
const overviewConcurrency = 4

var overviewCmd = &cobra.Command{
	Use:   "overview [user-id]",
	Short: "Summarize a user's posts with their comment counts",
	Long: `Fetches the user's posts and then the comment list for every post,
concurrently, and prints a per-post comment count with a total.`,
	Args: cobra.ExactArgs(1),
	RunE: runOverview,
}

func runOverview(cmd *cobra.Command, args []string) error {
	userID, err := parseID(args[0], "user id")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	client := newClient()
	posts, err := client.PostsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch posts for user %d: %w", userID, err)
	}
	if len(posts) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "user %d has no posts\n", userID)
		return nil
	}

	counts := make([]int, len(posts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(overviewConcurrency)
	for i, p := range posts {
		g.Go(func() error {
			comments, err := client.CommentsByPost(gctx, p.ID)
			if err != nil {
				return fmt.Errorf("fetch comments for post %d: %w", p.ID, err)
			}
			counts[i] = len(comments)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Debug("Collected comment counts",
		zap.Int("user_id", userID), zap.Int("posts", len(posts)))

	total := 0
	rows := make([][]string, len(posts))
	for i, p := range posts {
		total += counts[i]
		rows[i] = []string{strconv.Itoa(p.ID), p.Title, strconv.Itoa(counts[i])}
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderTable([]string{"ID", "TITLE", "COMMENTS"}, rows))
	fmt.Fprintf(out, "\n%d posts, %d comments\n", len(posts), total)
	return nil
}
