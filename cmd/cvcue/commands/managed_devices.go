package commands

import (
	"context"
	"os"
	"strconv"

	"github.com/netkit-io/cvcue/internal/constants"
	"github.com/netkit-io/cvcue/pkg/cvcue"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewManagedDevicesCommand creates the managed-devices command group.
func NewManagedDevicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "managed-devices",
		Aliases: []string{"md", "devices"},
		Short:   "Manage access points",
		Long:    "List and inspect CV-CUE managed access points",
	}

	cmd.AddCommand(newListAPsCommand())
	cmd.AddCommand(newGetAllAPsCommand())

	return cmd
}

// apListOptions holds the options for AP listing commands.
type apListOptions struct {
	Match    string
	Filters  []string
	Page     int
	PageSize int
	SortBy   string
}

func addFilterFlags(cmd *cobra.Command, opts *apListOptions) {
	cmd.Flags().StringArrayVarP(&opts.Filters, "filter", "f", nil,
		"filter in property:operator:value form (repeatable)")
	cmd.Flags().StringVar(&opts.Match, "match", "and", "filter combinator (and, or)")
}

func newListAPsCommand() *cobra.Command {
	var opts apListOptions

	cmd := &cobra.Command{
		Use:   "list-aps",
		Short: "List one page of access points",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListAPs(opts)
		},
	}

	addFilterFlags(cmd, &opts)
	cmd.Flags().IntVar(&opts.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", constants.StandardPageSize, "results per page")
	cmd.Flags().StringVar(&opts.SortBy, "sort-by", "", "sort key, prefix with - for descending")

	return cmd
}

func runListAPs(opts apListOptions) error {
	filter, err := BuildFilter(opts.Match, opts.Filters)
	if err != nil {
		return err
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	params := cvcue.NewQueryParams().
		WithPage(opts.Page).
		WithPageSize(opts.PageSize).
		WithSortBy(opts.SortBy).
		WithFilter(filter)

	list, err := client.ManagedDevices().ListAPs(context.Background(), params)
	if err != nil {
		return err
	}

	return outputAccessPoints(list.Data)
}

func newGetAllAPsCommand() *cobra.Command {
	var opts apListOptions

	cmd := &cobra.Command{
		Use:   "get-all-aps",
		Short: "Fetch every access point across all pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGetAllAPs(opts)
		},
	}

	addFilterFlags(cmd, &opts)

	return cmd
}

func runGetAllAPs(opts apListOptions) error {
	filter, err := BuildFilter(opts.Match, opts.Filters)
	if err != nil {
		return err
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	aps, err := client.ManagedDevices().GetAllAPs(context.Background(), filter)
	if err != nil {
		return err
	}

	return outputAccessPoints(aps)
}

func outputAccessPoints(aps []cvcue.AccessPoint) error {
	output, err := OutputFormat()
	if err != nil {
		return err
	}

	switch output {
	case OutputFormatJSON:
		return OutputJSON(aps)
	case OutputFormatCompact:
		return OutputCompact(accessPointRows(aps))
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "MAC", "IP", "Model", "Location", "Active", "Clients")

		for _, row := range accessPointRows(aps) {
			_ = table.Append(row[0], row[1], row[2], row[3], row[4], row[5], row[6])
		}

		return table.Render()
	}
}

func accessPointRows(aps []cvcue.AccessPoint) [][]string {
	rows := make([][]string, 0, len(aps))

	for _, ap := range aps {
		name := ap.Name
		if name == "" {
			name = constants.NotAvailable
		}

		rows = append(rows, []string{
			name,
			ap.MACAddress,
			ap.IPAddress,
			ap.Model,
			ap.LocationName,
			strconv.FormatBool(ap.Active),
			strconv.Itoa(ap.Clients),
		})
	}

	return rows
}
