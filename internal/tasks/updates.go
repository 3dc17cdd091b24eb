package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data, a [CollectionExportResult] for ExportCollection
}

// Operation phase enumeration
type Phase int

const (
	TakeSnapshot Phase = iota
	ExportCollection
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case TakeSnapshot:
		return "take_snapshot"
	case ExportCollection:
		return "export_collection"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func snapshotUpdate(students, courses, instructors int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TakeSnapshot,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Snapshot: %d students, %d courses, %d instructors", students, courses, instructors),
	}
}

func exportCompletedUpdate(step, total int, res CollectionExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCollection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s.%s (%d records)", step, total, res.Collection, res.Format, res.Records),
		Data:    res,
	}
}

func exportFailedUpdate(step, total int, res CollectionExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCollection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s.%s: %v", step, total, res.Collection, res.Format, res.Error),
		Data:    res,
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Wrote manifest %s", path),
	}
}
