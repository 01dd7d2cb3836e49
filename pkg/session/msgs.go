package session

const (
	MsgNoDuplicates   = "No duplicates found."
	MsgPreviewHeading = "The following changes will be made:"
	MsgDryRun         = "Dry run, no files were changed."
	MsgFailed         = "failed"
	MsgApplied        = "Applied %d of %d change(s)."
)
