// Package info reports where palette reads its config and keeps its data.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uitable"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/store"
)

type Info struct {
	Config  *store.FileConfig
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool
}

// Details is the machine-readable form of info.
type Details struct {
	ConfigFile string `json:"configFile,omitempty"`
	ConfigEnv  string `json:"configEnv,omitempty"`
	Path       string `json:"path"`
	RemoteURL  string `json:"remoteURL,omitempty"`
	Entries    int    `json:"entries"`
	Days       int    `json:"days"`
	Pending    int    `json:"pending"`
	FirstDate  string `json:"firstDate,omitempty"`
	LastDate   string `json:"lastDate,omitempty"`
}

func (n *Info) Do(ctx context.Context) error {
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Service == nil || n.Service.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	d := Details{
		ConfigFile: n.Config.File,
		ConfigEnv:  os.Getenv(store.ConfigPathEnv),
		Path:       n.Config.BasePath(),
		RemoteURL:  n.Config.Remote.URL,
	}
	all, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}
	days := map[string]struct{}{}
	for _, e := range all {
		days[e.Date] = struct{}{}
		if d.FirstDate == "" || e.Date < d.FirstDate {
			d.FirstDate = e.Date
		}
		if e.Date > d.LastDate {
			d.LastDate = e.Date
		}
	}
	d.Entries = len(all)
	d.Days = len(days)
	d.Pending = len(n.Service.Persistence.Pending(ctx))

	if n.JSON {
		return pp.JSON(d)
	}
	render(pp.Writer(), d)
	return nil
}

func render(w io.Writer, d Details) {
	or := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(store.ConfigPathEnv, or(d.ConfigEnv, "not set"))
	tbl.AddRow("config file", or(d.ConfigFile, "none, using defaults"))
	tbl.AddRow("path", d.Path)
	tbl.AddRow("remote", or(d.RemoteURL, "off"))
	tbl.AddRow("entries", d.Entries)
	tbl.AddRow("days", d.Days)
	tbl.AddRow("pending sync", d.Pending)
	if d.FirstDate != "" {
		tbl.AddRow("range", d.FirstDate+" to "+d.LastDate)
	}
	_, _ = fmt.Fprintln(w, tbl)
}
