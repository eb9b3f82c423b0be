package domain

// DefaultRegionLabel is used whenever a region code is unknown or absent.
// Resolution never fails; unknown input silently falls back to this label.
const DefaultRegionLabel = "US East (N. Virginia)"

// regionLabels maps short region codes to the display labels the AWS
// Pricing API expects in its "location" filter.
var regionLabels = map[string]string{
	"us-east-1":      "US East (N. Virginia)",
	"us-east-2":      "US East (Ohio)",
	"us-west-1":      "US West (N. California)",
	"us-west-2":      "US West (Oregon)",
	"ca-central-1":   "Canada (Central)",
	"eu-west-1":      "EU (Ireland)",
	"eu-west-2":      "EU (London)",
	"eu-west-3":      "EU (Paris)",
	"eu-central-1":   "EU (Frankfurt)",
	"eu-north-1":     "EU (Stockholm)",
	"ap-south-1":     "Asia Pacific (Mumbai)",
	"ap-northeast-1": "Asia Pacific (Tokyo)",
	"ap-northeast-2": "Asia Pacific (Seoul)",
	"ap-southeast-1": "Asia Pacific (Singapore)",
	"ap-southeast-2": "Asia Pacific (Sydney)",
	"sa-east-1":      "South America (Sao Paulo)",
}

// ResolveRegionLabel maps a short region code to the Pricing API display
// label. Unknown or empty codes resolve to DefaultRegionLabel.
func ResolveRegionLabel(code string) string {
	if label, ok := regionLabels[code]; ok {
		return label
	}
	return DefaultRegionLabel
}

// RegionEquivalent names the closest Azure and GCP regions for an AWS
// pricing location, shown in quote details.
type RegionEquivalent struct {
	Azure string
	GCP   string
}

// defaultRegionEquivalent is used for locations without an explicit mapping.
var defaultRegionEquivalent = RegionEquivalent{Azure: "East US", GCP: "us-east4"}

var regionEquivalents = map[string]RegionEquivalent{
	"US East (N. Virginia)":    {Azure: "East US", GCP: "us-east4"},
	"US East (Ohio)":           {Azure: "East US 2", GCP: "us-east1"},
	"US West (N. California)":  {Azure: "West US", GCP: "us-west1"},
	"US West (Oregon)":         {Azure: "West US 2", GCP: "us-west1"},
	"EU (Ireland)":             {Azure: "North Europe", GCP: "europe-west1"},
	"EU (Frankfurt)":           {Azure: "West Europe", GCP: "europe-west3"},
	"Asia Pacific (Tokyo)":     {Azure: "Japan East", GCP: "asia-northeast1"},
	"Asia Pacific (Singapore)": {Azure: "Southeast Asia", GCP: "asia-southeast1"},
}

// EquivalentRegions returns the Azure/GCP region names for an AWS pricing
// location, falling back to the US East defaults when unmapped.
func EquivalentRegions(label string) RegionEquivalent {
	if eq, ok := regionEquivalents[label]; ok {
		return eq
	}
	return defaultRegionEquivalent
}
