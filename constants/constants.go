package constants

import "os"

// ViolationThreshold is how many flagged facts a piece can accumulate
// and still count as consistent with the style model.
const ViolationThreshold = 3

const DefaultReportFile = "mozart_analysis_results.json"

// MetadataTable is the DynamoDB table holding piece catalog metadata.
const MetadataTable = "mozartcheck-metadata"

// GetMetadataEndpoint returns the DynamoDB endpoint to use for metadata
// lookups, or "" when metadata enrichment is disabled.
func GetMetadataEndpoint() string {
	return os.Getenv("METADATA_ENDPOINT")
}

func GetServeAddr() string {
	addr := os.Getenv("SERVE_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}
