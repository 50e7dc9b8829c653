package commands

import (
	"context"
	"os"
	"strconv"

	"github.com/netkit-io/cvcue/pkg/cvcue"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewLocationsCommand creates the locations command group.
func NewLocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage the location tree",
		Long:  "List CV-CUE location tree nodes",
	}

	cmd.AddCommand(newLocationsListCommand())

	return cmd
}

func newLocationsListCommand() *cobra.Command {
	var opts apListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocationsList(opts)
		},
	}

	addFilterFlags(cmd, &opts)

	return cmd
}

func runLocationsList(opts apListOptions) error {
	filter, err := BuildFilter(opts.Match, opts.Filters)
	if err != nil {
		return err
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	params := cvcue.NewQueryParams().WithFilter(filter)

	list, err := client.Locations().List(context.Background(), params)
	if err != nil {
		return err
	}

	return outputLocations(list.Data)
}

func outputLocations(locations []cvcue.Location) error {
	output, err := OutputFormat()
	if err != nil {
		return err
	}

	switch output {
	case OutputFormatJSON:
		return OutputJSON(locations)
	case OutputFormatCompact:
		return OutputCompact(locationRows(locations))
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Parent", "Type", "APs")

		for _, row := range locationRows(locations) {
			_ = table.Append(row[0], row[1], row[2], row[3], row[4])
		}

		return table.Render()
	}
}

func locationRows(locations []cvcue.Location) [][]string {
	rows := make([][]string, 0, len(locations))

	for _, location := range locations {
		rows = append(rows, []string{
			location.ID,
			location.Name,
			location.ParentID,
			location.Type,
			strconv.Itoa(location.APs),
		})
	}

	return rows
}
