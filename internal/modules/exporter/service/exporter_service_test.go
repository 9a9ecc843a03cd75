package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	exporteradapter "timetrack/internal/modules/exporter/adapter/out"
	"timetrack/internal/modules/exporter/domain"
	"timetrack/internal/modules/exporter/dto"
	"timetrack/internal/modules/exporter/service"
	reportdto "timetrack/internal/modules/report/dto"
)

type fakeStore struct {
	manifests []domain.Manifest
}

func (s fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	formats    []domain.FormatDescriptor
	lastExport domain.ExportRequest
}

func (*fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (*fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "1"}, nil
}
func (h *fakeHost) ListFormats(context.Context, domain.Manifest) ([]domain.FormatDescriptor, error) {
	return h.formats, nil
}
func (h *fakeHost) Export(_ context.Context, _ domain.Manifest, input domain.ExportRequest) (domain.ExportResult, error) {
	h.lastExport = input
	return domain.ExportResult{Stdout: "chart", ExitCode: 0}, nil
}

type fakeReports struct{}

func (fakeReports) Week(context.Context, reportdto.ReportInput) (reportdto.ReportOutput, error) {
	return reportdto.ReportOutput{
		Title:   "Time Distribution by Categories",
		Axis:    "Hours",
		DayAxis: "Day of the Week",
		From:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local),
		To:      time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local),
		Labels:  []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		Series: map[string][]float64{
			"Study": {2, 0, 0, 0, 0, 0, 0},
			"Relax": {0, 0, 0, 0, 0, 0, 1},
		},
		Hours:  []float64{2, 0, 0, 0, 0, 0, 1},
		Totals: map[string]float64{"Study": 2, "Relax": 1},
		Total:  3,
		Shares: map[string]float64{"Study": 66.7, "Relax": 33.3},
	}, nil
}

func (fakeReports) Month(context.Context, reportdto.ReportInput) (reportdto.ReportOutput, error) {
	return reportdto.ReportOutput{Title: "Time Distribution by Categories (Monthly)"}, nil
}

func TestExportFeedsReportPayloadToExporter(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityRender})
	host := &fakeHost{formats: []domain.FormatDescriptor{{ID: "ascii", Kind: domain.FormatKindRender}}}
	svc := service.NewExporterService(fakeStore{manifests: []domain.Manifest{manifest}}, host, fakeReports{}, "/tmp/data")

	out, err := svc.Export(context.Background(), dto.ExportInput{ExporterName: manifest.Name, FormatID: "ascii", ReportKind: "week"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.ExitCode != 0 || out.Stdout != "chart" {
		t.Fatalf("unexpected export output: %+v", out)
	}
	payload := map[string]any{}
	if err := json.Unmarshal([]byte(host.lastExport.ReportJSON), &payload); err != nil {
		t.Fatalf("report payload is not JSON: %v", err)
	}
	if payload["kind"] != "week" || payload["total"] != 3.0 {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if payload["day_axis"] != "Day of the Week" {
		t.Fatalf("day axis missing from payload: %v", payload)
	}
	series, ok := payload["series"].(map[string]any)
	if !ok {
		t.Fatalf("per-category series missing from payload: %v", payload)
	}
	study, ok := series["Study"].([]any)
	if !ok || len(study) != 7 || study[0] != 2.0 {
		t.Fatalf("unexpected study series: %v", series["Study"])
	}
	totals, ok := payload["totals"].(map[string]any)
	if !ok || totals["Relax"] != 1.0 {
		t.Fatalf("per-category totals missing from payload: %v", payload)
	}
	if host.lastExport.Context.DataDir != "/tmp/data" {
		t.Fatalf("data dir not forwarded: %+v", host.lastExport.Context)
	}
}

func TestExportRejectsDisabledExporter(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, false, []domain.Capability{domain.CapabilityRender})
	svc := service.NewExporterService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{}, fakeReports{}, "/tmp")
	_, err := svc.Export(context.Background(), dto.ExportInput{ExporterName: manifest.Name, FormatID: "ascii", ReportKind: "week"})
	if !errors.Is(err, domain.ErrExporterDisabled) {
		t.Fatalf("expected ErrExporterDisabled, got %v", err)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityRender})
	host := &fakeHost{formats: []domain.FormatDescriptor{{ID: "other", Kind: domain.FormatKindRender}}}
	svc := service.NewExporterService(fakeStore{manifests: []domain.Manifest{manifest}}, host, fakeReports{}, "/tmp")
	_, err := svc.Export(context.Background(), dto.ExportInput{ExporterName: manifest.Name, FormatID: "ascii", ReportKind: "week"})
	if !errors.Is(err, domain.ErrFormatNotFound) {
		t.Fatalf("expected ErrFormatNotFound, got %v", err)
	}
}

func TestExportRejectsFormatWithoutCapability(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityRender})
	host := &fakeHost{formats: []domain.FormatDescriptor{{ID: "json", Kind: domain.FormatKindDump}}}
	svc := service.NewExporterService(fakeStore{manifests: []domain.Manifest{manifest}}, host, fakeReports{}, "/tmp")
	_, err := svc.Export(context.Background(), dto.ExportInput{ExporterName: manifest.Name, FormatID: "json", ReportKind: "week"})
	if !errors.Is(err, domain.ErrCapabilityMissing) {
		t.Fatalf("expected ErrCapabilityMissing, got %v", err)
	}
}

func TestExportRejectsUnknownReportKind(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityRender})
	host := &fakeHost{formats: []domain.FormatDescriptor{{ID: "ascii", Kind: domain.FormatKindRender}}}
	svc := service.NewExporterService(fakeStore{manifests: []domain.Manifest{manifest}}, host, fakeReports{}, "/tmp")
	if _, err := svc.Export(context.Background(), dto.ExportInput{ExporterName: manifest.Name, FormatID: "ascii", ReportKind: "decade"}); err == nil {
		t.Fatalf("unknown report kind must fail")
	}
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	pluginsDir := filepath.Join(tmp, "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	binPath := filepath.Join(tmp, "dummy-exporter")
	if err := os.WriteFile(binPath, []byte("not-a-real-exporter"), 0o755); err != nil {
		t.Fatalf("write exporter binary: %v", err)
	}
	manifests := []domain.Manifest{{
		Name:         "demo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       strings.Repeat("0", 64),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityRender},
	}}
	raw, _ := json.Marshal(manifests)
	if err := os.WriteFile(filepath.Join(pluginsDir, "plugins.json"), raw, 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}

	svc := service.NewExporterService(exporteradapter.NewFileManifestStore(tmp, filepath.Join(pluginsDir, "plugins.json")), nil, fakeReports{}, tmp)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ChecksumValid {
		t.Fatalf("expected checksum mismatch")
	}
}

func manifestWithBinary(t *testing.T, enabled bool, capabilities []domain.Capability) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "exporter-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:         "demo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      enabled,
		Capabilities: capabilities,
	}
}
