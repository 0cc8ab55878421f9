package domain

// Statistics summarizes the current dataset.
type Statistics struct {
	TotalSites         int            `json:"total_sites"`
	SitesByCategory    map[string]int `json:"sites_by_category"`
	SitesByRegion      map[string]int `json:"sites_by_region"`
	SitesInDanger      int            `json:"sites_in_danger"`
	TransboundarySites int            `json:"transboundary_sites"`
	CriteriaCounts     map[string]int `json:"criteria_counts"`
	SitesByDecade      map[string]int `json:"sites_by_decade"`
}
