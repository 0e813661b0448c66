package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var commentsCmd = &cobra.Command{
	Use:   "comments [post-id]",
	Short: "Show the comments on a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runComments,
}

func runComments(cmd *cobra.Command, args []string) error {
	postID, err := parseID(args[0], "post id")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	comments, err := newClient().CommentsByPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("fetch comments for post %d: %w", postID, err)
	}
	logger.Debug("Fetched comments", zap.Int("post_id", postID), zap.Int("count", len(comments)))

	out := cmd.OutOrStdout()
	if len(comments) == 0 {
		fmt.Fprintf(out, "post %d has no comments\n", postID)
		return nil
	}
	for i, c := range comments {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "#%d %s <%s>\n", c.ID, c.Name, c.Email)
		fmt.Fprintln(out, c.Body)
	}
	return nil
}
