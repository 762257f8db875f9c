package domain

// ClusterExample identifies one member of a cluster in the JSON report
type ClusterExample struct {
	Suite string `json:"suite"`
	Test  string `json:"test"`
}

// ClusterEntry is a single cluster in the JSON report
type ClusterEntry struct {
	Signature string           `json:"signature"`
	Count     int              `json:"count"`
	Examples  []ClusterExample `json:"examples"`
}

// ClusterReport is the complete structure of the JSON report
type ClusterReport struct {
	GeneratedAt string         `json:"generated_at"`
	Clusters    []ClusterEntry `json:"clusters"`
}
