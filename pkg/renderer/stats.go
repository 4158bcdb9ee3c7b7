package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats collects counters and stage timings for one render run.
// The renderer fills the pixel counters and render time; the scene layer
// adds the BVH build figures and the caller adds the encode time.
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	PrimaryRays     int64
	Workers         int

	BVHNodes     int
	BVHDepth     int
	BVHUnbounded int

	BuildTime  time.Duration
	RenderTime time.Duration
	EncodeTime time.Duration
}

// Table formats the stats as an ASCII table for the log.
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%d x %d", s.Width, s.Height)})
	table.Append([]string{"Samples per pixel", fmt.Sprintf("%d", s.SamplesPerPixel)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{"Primary rays", fmt.Sprintf("%d", s.PrimaryRays)})
	table.Append([]string{"Workers", fmt.Sprintf("%d", s.Workers)})
	table.Append([]string{"BVH nodes", fmt.Sprintf("%d", s.BVHNodes)})
	table.Append([]string{"BVH depth", fmt.Sprintf("%d", s.BVHDepth)})
	table.Append([]string{"Unbounded shapes", fmt.Sprintf("%d", s.BVHUnbounded)})
	table.Append([]string{"BVH build time", s.BuildTime.String()})
	table.Append([]string{"Render time", s.RenderTime.String()})
	table.Append([]string{"PNG encode time", s.EncodeTime.String()})
	table.SetFooter([]string{"Total", (s.BuildTime + s.RenderTime + s.EncodeTime).String()})

	table.Render()
	return buf.String()
}
