package linker

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// KernelSummary is one row of the link report.
type KernelSummary struct {
	Name    string
	Scheme  string
	Level   int
	MInsts  int
	CInsts  int
	XInsts  int
	Renamed int
}

// LinkReport summarizes one link run.
type LinkReport struct {
	Kernels   []KernelSummary
	Variables int
	Output    KernelFiles
}

// WriteTable renders the report for human consumption.
func (r *LinkReport) WriteTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Link Report")
	t.AppendHeader(table.Row{"Kernel", "Scheme", "Level", "MInst", "CInst", "XInst", "Renamed"})

	var totalM, totalC, totalX int
	for _, k := range r.Kernels {
		t.AppendRow(table.Row{k.Name, k.Scheme, k.Level, k.MInsts, k.CInsts, k.XInsts, k.Renamed})
		totalM += k.MInsts
		totalC += k.CInsts
		totalX += k.XInsts
	}
	t.AppendFooter(table.Row{"total", "", "", totalM, totalC, totalX, ""})
	t.Render()
}
