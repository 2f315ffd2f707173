package main

import (
	"fmt"
	"strconv"
	"strings"

	"espboards/internal/chip"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2a3850"))
)

// listCmd prints the registry
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the boards in the registry",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// profilesCmd prints the chip profile table
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show the supported chip families and their defaults",
	Args:  cobra.NoArgs,
	RunE:  runProfiles,
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func runList(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(reg.Boards))
	for _, b := range reg.Boards {
		psram := "-"
		if b.PSRAMMB > 0 {
			psram = fmt.Sprintf("%dMB %s", b.PSRAMMB, b.Spec().PSRAMType)
		}
		usb := "-"
		if len(b.USBPIDs) > 0 {
			usb = b.USBVID + ":" + strings.Join(b.USBPIDs, ",")
		}
		rows = append(rows, []string{b.Name, b.Chip, strconv.Itoa(b.FlashMB) + "MB", psram, usb, b.Product})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Board", "Chip", "Flash", "PSRAM", "USB", "Product"}, rows))
	fmt.Fprintf(cmd.OutOrStdout(), "%d boards\n", len(rows))
	return nil
}

func runProfiles(cmd *cobra.Command, args []string) error {
	families := chip.Families()
	rows := make([][]string, 0, len(families))
	for _, f := range families {
		p, err := chip.Lookup(string(f))
		if err != nil {
			return err
		}
		cores := "1"
		if p.DualCore {
			cores = "2"
		}
		touch := p.Touch1200
		if touch == "" {
			touch = "-"
		}
		rows = append(rows, []string{
			string(p.Family),
			p.Arch + "/" + p.Target,
			cores,
			strconv.Itoa(p.FCPU/1000000) + "MHz",
			p.BootloaderAddr,
			yesNo(p.NativeUSB),
			p.PSRAM.String(),
			p.SPIMode,
			touch,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Family", "Arch/Target", "Cores", "CPU", "Bootloader", "Native USB", "PSRAM", "Flash", "1200bps"}, rows))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
