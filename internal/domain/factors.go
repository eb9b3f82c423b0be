package domain

// Static factor tables. These are hand-authored approximations, not live
// quotes: the service holds no Azure/GCP pricing credentials, so competitor
// prices are projected from the AWS rate.

// VolumeFactors keys EBS volume types to Azure/GCP block-storage factors.
var VolumeFactors = map[string]FactorPair{
	"gp3": {Azure: 1.05, GCP: 1.08},
	"gp2": {Azure: 0.98, GCP: 1.02},
	"io2": {Azure: 1.15, GCP: 1.2},
	"io1": {Azure: 1.1, GCP: 1.12},
	"st1": {Azure: 0.92, GCP: 0.9},
	"sc1": {Azure: 0.85, GCP: 0.82},
}

// VolumeEquivalent names the closest Azure/GCP disk products per EBS volume
// type, shown in quote details.
type VolumeEquivalent struct {
	Azure string
	GCP   string
}

var volumeEquivalents = map[string]VolumeEquivalent{
	"gp3": {Azure: "Premium SSD", GCP: "SSD Persistent Disk"},
	"gp2": {Azure: "Standard SSD", GCP: "Balanced Persistent Disk"},
	"io2": {Azure: "Ultra Disk", GCP: "Extreme Persistent Disk"},
	"io1": {Azure: "Ultra Disk", GCP: "Extreme Persistent Disk"},
	"st1": {Azure: "Standard HDD", GCP: "Standard Persistent Disk"},
	"sc1": {Azure: "Standard HDD", GCP: "Standard Persistent Disk"},
}

// EquivalentVolume returns the Azure/GCP disk names for an EBS volume type,
// defaulting to the SSD tier for unknown types.
func EquivalentVolume(volumeType string) VolumeEquivalent {
	if eq, ok := volumeEquivalents[volumeType]; ok {
		return eq
	}
	return VolumeEquivalent{Azure: "Standard SSD", GCP: "SSD Persistent Disk"}
}

// InstanceFamilyFactors keys EC2 instance family prefixes (t3, m5, ...) to
// compute-price factors.
var InstanceFamilyFactors = map[string]FactorPair{
	"t2":  {Azure: 0.97, GCP: 0.95},
	"t3":  {Azure: 0.98, GCP: 0.96},
	"t3a": {Azure: 0.96, GCP: 0.94},
	"t4g": {Azure: 0.99, GCP: 0.97},
	"m5":  {Azure: 1.02, GCP: 0.98},
	"m6i": {Azure: 1.01, GCP: 0.97},
	"c5":  {Azure: 1.04, GCP: 1.0},
	"c6i": {Azure: 1.03, GCP: 0.99},
	"r5":  {Azure: 1.06, GCP: 1.02},
	"r6i": {Azure: 1.05, GCP: 1.01},
}

// DatabaseInstanceFactors and DatabaseStorageFactors approximate managed SQL
// pricing. Azure instances run ~5% cheaper and GCP ~10% cheaper than RDS;
// their storage runs ~5% and ~10% more expensive.
var (
	DatabaseInstanceFactors = FactorPair{Azure: 0.95, GCP: 0.90}
	DatabaseStorageFactors  = FactorPair{Azure: 1.05, GCP: 1.10}
)

// ServerlessRequestFactors and ServerlessComputeFactors approximate
// function-as-a-service pricing relative to Lambda.
var (
	ServerlessRequestFactors = FactorPair{Azure: 0.8, GCP: 1.5}
	ServerlessComputeFactors = FactorPair{Azure: 0.9, GCP: 0.85}
)

// StorageServiceFactors keys generic storage service names to factors.
var StorageServiceFactors = map[string]FactorPair{
	"Object Storage":         {Azure: 0.85, GCP: 0.90},
	"File Storage":           {Azure: 0.90, GCP: 0.75},
	"Cold Archive Storage":   {Azure: 0.25, GCP: 1.0},
	"Content Delivery (CDN)": {Azure: 0.95, GCP: 0.94},
}
