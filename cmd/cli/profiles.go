package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/portsight/portsight/internal/profiles"
)

const profilePortPreview = 8

// profilesCmd lists the built-in port profiles.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the built-in port profiles",
	Long: `List the built-in port profiles available to the scan command.
A profile is a fixed, named port list; --ports overrides it.`,
	Run: func(_ *cobra.Command, _ []string) {
		displayProfilesTable(profiles.All())
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func displayProfilesTable(all []profiles.Profile) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Ports", "Preview", "Description")

	for _, profile := range all {
		_ = table.Append([]string{
			profile.Name,
			strconv.Itoa(len(profile.Ports)),
			portPreview(profile.Ports),
			profile.Description,
		})
	}

	_ = table.Render()
}

func portPreview(ports []int) string {
	preview := ""
	for i, port := range ports {
		if i == profilePortPreview {
			preview += ",..."
			break
		}
		if i > 0 {
			preview += ","
		}
		preview += fmt.Sprintf("%d", port)
	}
	return preview
}
