package views

import (
	"strings"

	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath    string
	Driver        string
	DBPath        string
	DBExists      bool // true = Found, false = Not Found
	FeeRate       string
	CreditDivisor int64
	FeeSink       string
	Brokers       []string
	AppDataDir    string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	events := pterm.Gray("disabled")
	if len(data.Brokers) > 0 {
		events = strings.Join(data.Brokers, ", ")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Driver", data.Driver},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"Vendor Fee Rate", data.FeeRate},
		{"Units per Tree", pterm.Sprint(data.CreditDivisor)},
		{"Fee Sink Account", data.FeeSink},
		{"Event Brokers", events},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
