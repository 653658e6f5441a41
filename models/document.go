// Package models defines the data structures shared by the extraction engine.
package models

// AcquisitionTier identifies which stage of the source-acquisition fallback
// chain produced a document.
type AcquisitionTier int

const (
	// TierService means the external content-extraction service returned usable content.
	TierService AcquisitionTier = iota
	// TierRawFetch means the document came from a direct HTTP GET of the target URL.
	TierRawFetch
	// TierStub means both network tiers failed and the document was synthesized
	// from the URL alone.
	TierStub
)

func (t AcquisitionTier) String() string {
	switch t {
	case TierService:
		return "service"
	case TierRawFetch:
		return "raw_fetch"
	case TierStub:
		return "stub"
	}
	return "unknown"
}

// RawDocument is the immutable output of the source acquirer and the input to
// every extractor. When Degraded is true the HTML is a trivial shell and only
// the URL-derived PageTitle carries information.
type RawDocument struct {
	SourceURL    string `json:"source_url"`
	HTML         string `json:"html"`
	PageTitle    string `json:"page_title,omitempty"`
	LeadImageURL string `json:"lead_image_url,omitempty"`
	Author       string `json:"author,omitempty"`
	PublishedAt  string `json:"published_at,omitempty"` // ISO-8601 date when known

	Tier     AcquisitionTier `json:"tier"`
	Degraded bool            `json:"degraded"`
}
