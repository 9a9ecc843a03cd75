package dto

import "time"

type ExporterInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type FormatInfo struct {
	ID          string
	Title       string
	Description string
	Kind        string
	TimeoutMS   int
}

type ExportInput struct {
	ExporterName string
	FormatID     string
	// ReportKind picks the aggregation to feed the exporter: "week" or
	// "month".
	ReportKind string
	// Date anchors the reporting window. Zero means "today".
	Date time.Time
	Cwd  string
	Env  map[string]string
}

type ExportOutput struct {
	ExporterName string
	FormatID     string
	Stdout       string
	Stderr       string
	OutputJSON   string
	ExitCode     int
}
