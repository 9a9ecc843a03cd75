package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const (
	// CapabilityRender marks exporters that draw a report for humans.
	CapabilityRender Capability = "render"
	// CapabilityDump marks exporters that emit machine-readable output.
	CapabilityDump Capability = "dump"
)

var (
	ErrExporterDisabled  = errors.New("exporter is disabled")
	ErrChecksumMismatch  = errors.New("exporter checksum mismatch")
	ErrCapabilityMissing = errors.New("exporter capability missing")
	ErrFormatNotFound    = errors.New("export format not found")
	ErrExporterTimeout   = errors.New("exporter timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("exporter name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("exporter version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("exporter binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("exporter sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("exporter capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityRender, CapabilityDump:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type FormatKind string

const (
	FormatKindRender FormatKind = "render"
	FormatKindDump   FormatKind = "dump"
)

func (k FormatKind) Validate() error {
	switch k {
	case FormatKindRender, FormatKindDump:
		return nil
	default:
		return fmt.Errorf("unknown format kind: %s", k)
	}
}

type FormatDescriptor struct {
	ID          string
	Title       string
	Description string
	Kind        FormatKind
	TimeoutMS   int
}

func (d FormatDescriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("format id is required")
	}
	return d.Kind.Validate()
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

type ExportContext struct {
	DataDir    string
	ReportKind string
	Cwd        string
	Env        map[string]string
}

func (c ExportContext) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.Cwd == "" {
		return fmt.Errorf("cwd is required")
	}
	return nil
}

type ExportRequest struct {
	FormatID   string
	ReportJSON string
	Context    ExportContext
}

func (r ExportRequest) Validate() error {
	if r.FormatID == "" {
		return fmt.Errorf("format id is required")
	}
	return r.Context.Validate()
}

type ExportResult struct {
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}
