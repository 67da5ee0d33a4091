package inspect

import (
	"fmt"

	"github.com/deploymenttheory/go-applefile/pkg/app"
	"github.com/deploymenttheory/go-applefile/pkg/services"
)

// Handle processes an inspect request
func Handle(ctx *app.Context, svc services.InspectService, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx.Log("inspecting container", "path", req.ContainerPath)

	report, err := svc.InspectFile(ctx, req.ContainerPath)
	if err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "failed to inspect "+req.ContainerPath, err)
	}

	ctx.Log("inspection complete", "layout", report.Layout, "entries", len(report.Entries))
	return newResponse(report), nil
}

// newResponse converts a service report into its display form
func newResponse(report *services.ContainerReport) *Response {
	resp := &Response{
		Path:             report.Path,
		Size:             report.Size,
		Layout:           report.Layout,
		Magic:            fmt.Sprintf("0x%08x", report.Magic),
		Version:          fmt.Sprintf("0x%08x", report.Version),
		Entries:          make([]Entry, 0, len(report.Entries)),
		DataForkSize:     report.DataForkSize,
		ResourceForkSize: report.ResourceForkSize,
		Comment:          report.Comment,
	}

	for _, e := range report.Entries {
		resp.Entries = append(resp.Entries, Entry{ID: e.ID, Name: e.Name, Offset: e.Offset, Length: e.Length})
	}

	if report.HasFinderInfo {
		resp.FinderInfo = &FinderInfo{
			Type:    report.FileType,
			Creator: report.Creator,
			Flags:   fmt.Sprintf("0x%04x", report.FinderFlags),
		}
	}

	if report.HasDates {
		resp.Dates = &Dates{
			Created:  report.Created,
			Modified: report.Modified,
			BackedUp: report.BackedUp,
			Accessed: report.Accessed,
		}
	}

	return resp
}
