package hub

// Resource types used by the crosswalk.
const (
	ResourceSoftware     = "software"
	ResourceDataset      = "dataset"
	ResourceOther        = "other"
	ResourceSoftwareDocs = "publication-softwaredocumentation"
)
