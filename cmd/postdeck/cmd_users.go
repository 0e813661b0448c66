package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the users available in the demo API",
	Args:  cobra.NoArgs,
	RunE:  runUsers,
}

func runUsers(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	users, err := newClient().Users(ctx)
	if err != nil {
		return fmt.Errorf("fetch users: %w", err)
	}
	logger.Debug("Fetched users", zap.Int("count", len(users)))

	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = []string{strconv.Itoa(u.ID), u.Name, "@" + u.Username, u.Email}
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"ID", "NAME", "USERNAME", "EMAIL"}, rows))
	return nil
}
