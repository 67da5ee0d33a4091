package services

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-applefile/internal/host"
	applefile "github.com/deploymenttheory/go-applefile/internal/parsers/apple_file"
	"github.com/deploymenttheory/go-applefile/internal/types"
)

// inspectService implements the InspectService interface
type inspectService struct {
	fs afero.Fs
}

// NewInspectService creates a new inspect service reading through fs
func NewInspectService(fs afero.Fs) InspectService {
	return &inspectService{fs: fs}
}

// InspectFile inspects the container at path
func (is *inspectService) InspectFile(ctx context.Context, path string) (*ContainerReport, error) {
	f, err := is.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open container: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat container: %w", err)
	}

	report, err := is.Inspect(ctx, f, fi.Size())
	if report != nil {
		report.Path = path
	}
	return report, err
}

// Inspect reads the header, entry table and small metadata parts of a container.
// Input that is not a container is reported with the pass-through layout, not as an error.
func (is *inspectService) Inspect(ctx context.Context, r io.ReaderAt, size int64) (*ContainerReport, error) {
	report := &ContainerReport{Size: size, Layout: "pass-through", DataForkSize: uint64(size)}

	if size < types.ASHeaderSize {
		return report, nil
	}

	headerData := make([]byte, types.ASHeaderSize)
	if _, err := r.ReadAt(headerData, 0); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	header, err := applefile.NewHeaderReader(headerData)
	if err != nil {
		return nil, err
	}
	report.Magic = header.Magic()
	report.Version = header.Version()
	if !header.IsValid() {
		return report, nil
	}

	tableData := make([]byte, int(header.NumEntries())*types.ASEntrySize)
	if _, err := r.ReadAt(tableData, types.ASHeaderSize); err != nil {
		return nil, fmt.Errorf("failed to read entry table: %w", err)
	}

	table, err := applefile.NewEntryTableReader(tableData, header.NumEntries())
	if err != nil {
		return nil, err
	}

	report.Layout = "AppleSingle"
	report.DataForkSize = 0
	if header.IsAppleDouble() {
		report.Layout = "AppleDouble"
		if bound := table.DataForkBound(); uint64(size) > bound {
			report.DataForkSize = uint64(size) - bound
		}
	}

	for _, entry := range table.Entries() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report.Entries = append(report.Entries, EntryInfo{
			ID:     uint32(entry.EntryID),
			Name:   entry.EntryID.String(),
			Offset: entry.Offset,
			Length: entry.Length,
		})

		if err := is.inspectEntry(report, r, entry); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// inspectEntry fills the report fields described by one entry
func (is *inspectService) inspectEntry(report *ContainerReport, r io.ReaderAt, entry types.ASEntryT) error {
	switch entry.EntryID {
	case types.ASEntryDataFork:
		report.DataForkSize = uint64(entry.Length)
		return nil
	case types.ASEntryResourceFork:
		report.ResourceForkSize = uint64(entry.Length)
		return nil
	case types.ASEntryComment, types.ASEntryFileDates, types.ASEntryFinderInfo:
	default:
		return nil
	}

	length := min(entry.Length, types.MaxCommentSize)
	if entry.Length == 0 || entry.End() > uint64(report.Size) {
		return nil
	}

	data := make([]byte, length)
	if _, err := r.ReadAt(data, int64(entry.Offset)); err != nil {
		return fmt.Errorf("failed to read %s entry: %w", entry.EntryID, err)
	}

	switch entry.EntryID {
	case types.ASEntryComment:
		report.Comment = host.DecodeComment(data)

	case types.ASEntryFileDates:
		dates, err := applefile.NewFileDatesReader(data)
		if err != nil {
			return nil
		}
		report.HasDates = true
		report.Created = dates.Created()
		report.Modified = dates.Modified()
		report.BackedUp = dates.BackedUp()
		report.Accessed = dates.Accessed()

	case types.ASEntryFinderInfo:
		finder, err := applefile.NewFinderInfoReader(data)
		if err != nil {
			return nil
		}
		report.HasFinderInfo = true
		report.FileType = finder.FileType()
		report.Creator = finder.Creator()
		report.FinderFlags = finder.Flags()
	}

	return nil
}
