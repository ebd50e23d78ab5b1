package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Liệt kê các loại bản ghi có thể xuất",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, e := range state.svc.Entities() {
			fmt.Fprintf(out, "%-18s %-28s status: %s\n", e.Name, e.Label, strings.Join(e.Tabs(), ","))
		}
		return nil
	},
}
