package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	exporterrpc "timetrack/internal/modules/exporter/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

const barWidth = 40

type report struct {
	Kind    string               `json:"kind"`
	Title   string               `json:"title"`
	Axis    string               `json:"axis"`
	DayAxis string               `json:"day_axis"`
	From    string               `json:"from"`
	To      string               `json:"to"`
	Labels  []string             `json:"labels"`
	Series  map[string][]float64 `json:"series"`
	Hours   []float64            `json:"hours"`
	Totals  map[string]float64   `json:"totals"`
	Total   float64              `json:"total"`
	Shares  map[string]float64   `json:"shares"`
}

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *exporterrpc.Empty) (*exporterrpc.Metadata, error) {
	return &exporterrpc.Metadata{
		Name:         "barchart",
		Version:      "1.0.0",
		Capabilities: []string{"render", "dump"},
	}, nil
}

func (s *server) ListFormats(_ context.Context, _ *exporterrpc.Empty) (*exporterrpc.ListFormatsResponse, error) {
	return &exporterrpc.ListFormatsResponse{Formats: []exporterrpc.FormatDescriptor{
		{ID: "ascii", Title: "ASCII bar chart", Description: "Draws the report as a text bar chart", Kind: "render", TimeoutMS: 2000},
		{ID: "json", Title: "JSON dump", Description: "Emits the report payload unchanged", Kind: "dump", TimeoutMS: 1000},
	}}, nil
}

func (s *server) Export(_ context.Context, in *exporterrpc.ExportRequest) (*exporterrpc.ExportResponse, error) {
	switch in.FormatID {
	case "ascii":
		rep := report{}
		if err := json.Unmarshal([]byte(in.ReportJSON), &rep); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		return &exporterrpc.ExportResponse{Stdout: renderChart(rep), ExitCode: 0}, nil
	case "json":
		return &exporterrpc.ExportResponse{OutputJSON: in.ReportJSON, ExitCode: 0}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", in.FormatID)
	}
}

func renderChart(rep report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s — %s)\n", rep.Title, rep.From, rep.To)
	if rep.DayAxis != "" {
		fmt.Fprintf(&b, "%s\n", rep.DayAxis)
	}
	categories := make([]string, 0, len(rep.Series))
	for category := range rep.Series {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	max := 0.0
	for _, row := range rep.Series {
		for _, h := range row {
			if h > max {
				max = h
			}
		}
	}
	for i, label := range rep.Labels {
		name := label
		printed := false
		for _, category := range categories {
			row := rep.Series[category]
			if i >= len(row) || row[i] == 0 {
				continue
			}
			width := int(row[i] / max * barWidth)
			fmt.Fprintf(&b, "%4s %-10s |%-*s %.2f\n", name, category, barWidth, strings.Repeat("#", width), row[i])
			name = ""
			printed = true
		}
		if !printed {
			fmt.Fprintf(&b, "%4s\n", label)
		}
	}
	fmt.Fprintf(&b, "%s: %.2f\n", rep.Axis, rep.Total)
	for _, category := range categories {
		fmt.Fprintf(&b, "  %s: %.2f (%.1f%%)\n", category, rep.Totals[category], rep.Shares[category])
	}
	return b.String()
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: exporterrpc.HandshakeConfig,
		Plugins:         exporterrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
