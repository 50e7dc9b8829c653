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

// NewClientDevicesCommand creates the client-devices command group.
func NewClientDevicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client-devices",
		Aliases: []string{"cd", "clients"},
		Short:   "Manage wireless clients",
		Long:    "List wireless clients seen by CV-CUE managed access points",
	}

	cmd.AddCommand(newClientDevicesListCommand())

	return cmd
}

func newClientDevicesListCommand() *cobra.Command {
	var opts apListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List wireless clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClientDevicesList(opts)
		},
	}

	addFilterFlags(cmd, &opts)
	cmd.Flags().IntVar(&opts.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", constants.StandardPageSize, "results per page")

	return cmd
}

func runClientDevicesList(opts apListOptions) error {
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
		WithFilter(filter)

	list, err := client.ClientDevices().List(context.Background(), params)
	if err != nil {
		return err
	}

	return outputClientDevices(list.Data)
}

func outputClientDevices(devices []cvcue.ClientDevice) error {
	output, err := OutputFormat()
	if err != nil {
		return err
	}

	switch output {
	case OutputFormatJSON:
		return OutputJSON(devices)
	case OutputFormatCompact:
		return OutputCompact(clientDeviceRows(devices))
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "User", "MAC", "IP", "SSID", "AP", "RSSI")

		for _, row := range clientDeviceRows(devices) {
			_ = table.Append(row[0], row[1], row[2], row[3], row[4], row[5], row[6])
		}

		return table.Render()
	}
}

func clientDeviceRows(devices []cvcue.ClientDevice) [][]string {
	rows := make([][]string, 0, len(devices))

	for _, device := range devices {
		name := device.Name
		if name == "" {
			name = constants.NotAvailable
		}

		rows = append(rows, []string{
			name,
			device.Username,
			device.MACAddress,
			device.IPAddress,
			device.SSID,
			device.APName,
			strconv.Itoa(device.RSSI),
		})
	}

	return rows
}
