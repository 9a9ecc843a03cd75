package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"timetrack/internal/modules/exporter/domain"
	"timetrack/internal/modules/exporter/dto"
	exporterout "timetrack/internal/modules/exporter/port/out"
	reportdto "timetrack/internal/modules/report/dto"
	reportin "timetrack/internal/modules/report/port/in"
)

const (
	ReportKindWeek  = "week"
	ReportKindMonth = "month"
)

type ExporterService struct {
	store   exporterout.ManifestStore
	host    exporterout.Host
	reports reportin.Usecase
	dataDir string
}

func NewExporterService(store exporterout.ManifestStore, host exporterout.Host, reports reportin.Usecase, dataDir string) *ExporterService {
	return &ExporterService{store: store, host: host, reports: reports, dataDir: dataDir}
}

func (s *ExporterService) List(ctx context.Context) ([]dto.ExporterInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExporterInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.ExporterInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *ExporterService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *ExporterService) ListFormats(ctx context.Context, exporterName string) ([]dto.FormatInfo, error) {
	manifest, err := s.getRunnableManifest(ctx, exporterName, "")
	if err != nil {
		return nil, err
	}
	formats, err := s.host.ListFormats(ctx, manifest)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FormatInfo, 0, len(formats))
	for _, format := range formats {
		out = append(out, dto.FormatInfo{
			ID:          format.ID,
			Title:       format.Title,
			Description: format.Description,
			Kind:        string(format.Kind),
			TimeoutMS:   format.TimeoutMS,
		})
	}
	return out, nil
}

func (s *ExporterService) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	manifest, err := s.getRunnableManifest(ctx, input.ExporterName, "")
	if err != nil {
		return dto.ExportOutput{}, err
	}
	formats, err := s.host.ListFormats(ctx, manifest)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	format, err := requireFormat(formats, input.FormatID)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	if !manifest.HasCapability(domain.Capability(format.Kind)) {
		return dto.ExportOutput{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, format.Kind)
	}

	reportJSON, err := s.reportJSON(ctx, input)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	cwd := input.Cwd
	if cwd == "" {
		cwd = s.dataDir
	}
	req := domain.ExportRequest{
		FormatID:   input.FormatID,
		ReportJSON: reportJSON,
		Context: domain.ExportContext{
			DataDir:    s.dataDir,
			ReportKind: input.ReportKind,
			Cwd:        cwd,
			Env:        input.Env,
		},
	}
	if err := req.Validate(); err != nil {
		return dto.ExportOutput{}, err
	}

	result, err := s.host.Export(ctx, manifest, req)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{
		ExporterName: input.ExporterName,
		FormatID:     input.FormatID,
		Stdout:       result.Stdout,
		Stderr:       result.Stderr,
		OutputJSON:   result.OutputJSON,
		ExitCode:     result.ExitCode,
	}, nil
}

// reportPayload is the wire shape handed to exporters. Kept in sync with the
// reference exporter under plugins/barchart.
type reportPayload struct {
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

func (s *ExporterService) reportJSON(ctx context.Context, input dto.ExportInput) (string, error) {
	if s.reports == nil {
		return "", fmt.Errorf("report usecase is not configured")
	}
	var report reportdto.ReportOutput
	var err error
	switch input.ReportKind {
	case ReportKindWeek:
		report, err = s.reports.Week(ctx, reportdto.ReportInput{Date: input.Date})
	case ReportKindMonth:
		report, err = s.reports.Month(ctx, reportdto.ReportInput{Date: input.Date})
	default:
		return "", fmt.Errorf("unknown report kind: %q", input.ReportKind)
	}
	if err != nil {
		return "", err
	}
	payload := reportPayload{
		Kind:    input.ReportKind,
		Title:   report.Title,
		Axis:    report.Axis,
		DayAxis: report.DayAxis,
		From:    report.From.Format("2006-01-02"),
		To:      report.To.Format("2006-01-02"),
		Labels:  report.Labels,
		Series:  report.Series,
		Hours:   report.Hours,
		Totals:  report.Totals,
		Total:   report.Total,
		Shares:  report.Shares,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal report payload: %w", err)
	}
	return string(raw), nil
}

func (s *ExporterService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate exporter name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *ExporterService) getRunnableManifest(ctx context.Context, exporterName string, requiredCapability domain.Capability) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == exporterName {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("exporter %q not found", exporterName)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrExporterDisabled, exporterName)
	}
	if requiredCapability != "" && !manifest.HasCapability(requiredCapability) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, requiredCapability)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrExporterTimeout, exporterName)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func requireFormat(formats []domain.FormatDescriptor, formatID string) (domain.FormatDescriptor, error) {
	for _, format := range formats {
		if err := format.Validate(); err != nil {
			return domain.FormatDescriptor{}, err
		}
		if format.ID == formatID {
			return format, nil
		}
	}
	return domain.FormatDescriptor{}, fmt.Errorf("%w: %s", domain.ErrFormatNotFound, formatID)
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read exporter binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
