package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "List the catalog's curatorial departments",
	Long: `List the catalog's curatorial departments.

Department IDs are usable with 'metsearch search --department'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		departments, err := client.Departments(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(colorize(colorBold, fmt.Sprintf("%-6s  %s", "ID", "DEPARTMENT")))
		for _, d := range departments {
			fmt.Printf("%-6d  %s\n", d.ID, d.DisplayName)
		}
		return nil
	},
}
