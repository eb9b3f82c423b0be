package domain

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// CloudNames holds the provider-specific product names for one generic
// service.
type CloudNames struct {
	AWS   string `json:"aws"`
	Azure string `json:"azure"`
	GCP   string `json:"gcp"`
}

// serviceMapping is the immutable category → generic service → provider
// name table. Loaded once at process start, never mutated.
var serviceMapping = map[string]map[string]CloudNames{
	"Compute": {
		"Virtual Machines":      {AWS: "EC2", Azure: "Virtual Machines", GCP: "Compute Engine"},
		"Serverless Functions":  {AWS: "Lambda", Azure: "Functions", GCP: "Cloud Functions"},
		"Containers (K8s)":      {AWS: "EKS", Azure: "AKS", GCP: "GKE"},
		"Serverless Containers": {AWS: "Fargate", Azure: "Container Instances", GCP: "Cloud Run"},
		"Batch Processing":      {AWS: "Batch", Azure: "Batch", GCP: "Batch"},
	},
	"Storage": {
		"Object Storage":         {AWS: "S3", Azure: "Blob Storage", GCP: "Cloud Storage"},
		"Block Storage":          {AWS: "EBS", Azure: "Managed Disks", GCP: "Persistent Disk"},
		"File Storage":           {AWS: "EFS", Azure: "File Storage", GCP: "Filestore"},
		"Cold Archive Storage":   {AWS: "Glacier", Azure: "Archive Storage", GCP: "Coldline"},
		"Content Delivery (CDN)": {AWS: "CloudFront", Azure: "CDN", GCP: "Cloud CDN"},
	},
	"Databases": {
		"Relational SQL DB":      {AWS: "RDS", Azure: "SQL Database", GCP: "Cloud SQL"},
		"NoSQL Document DB":      {AWS: "DynamoDB", Azure: "Cosmos DB", GCP: "Firestore"},
		"Managed MySQL/Postgres": {AWS: "Aurora", Azure: "Azure Database for MySQL/PostgreSQL", GCP: "Cloud SQL MySQL/PostgreSQL"},
		"Data Warehouse":         {AWS: "Redshift", Azure: "Synapse Analytics", GCP: "BigQuery"},
		"In-Memory Cache":        {AWS: "ElastiCache", Azure: "Cache for Redis", GCP: "MemoryStore"},
	},
	"Networking": {
		"Domain & DNS":       {AWS: "Route 53", Azure: "DNS Zone", GCP: "Cloud DNS"},
		"Load Balancer":      {AWS: "ELB", Azure: "Load Balancer", GCP: "Cloud Load Balancing"},
		"API Gateway":        {AWS: "API Gateway", Azure: "API Management", GCP: "API Gateway"},
		"Message Queue":      {AWS: "SQS", Azure: "Service Bus", GCP: "Pub/Sub"},
		"VPN & Connectivity": {AWS: "VPN Gateway", Azure: "VPN Gateway", GCP: "Cloud VPN"},
	},
	"Security & Identity": {
		"Identity & Access":  {AWS: "IAM", Azure: "Azure AD", GCP: "Cloud IAM"},
		"Key Management":     {AWS: "KMS", Azure: "Key Vault", GCP: "Cloud KMS"},
		"Web Application FW": {AWS: "WAF", Azure: "WAF", GCP: "Cloud Armor"},
		"Secrets Management": {AWS: "Secrets Manager", Azure: "Key Vault Secrets", GCP: "Secret Manager"},
		"DDoS Protection":    {AWS: "Shield", Azure: "DDoS Protection", GCP: "Cloud Armor"},
	},
	"Analytics & Big Data": {
		"Log & Event Analytics": {AWS: "CloudWatch Logs", Azure: "Monitor Logs", GCP: "Cloud Logging"},
		"Metrics & Monitoring":  {AWS: "CloudWatch Metrics", Azure: "Monitor Metrics", GCP: "Cloud Monitoring"},
		"Data Pipeline":         {AWS: "Data Pipeline", Azure: "Data Factory", GCP: "Dataflow"},
		"Stream Processing":     {AWS: "Kinesis", Azure: "Event Hubs", GCP: "Dataflow / Pub/Sub"},
		"Search Service":        {AWS: "OpenSearch", Azure: "Cognitive Search", GCP: "Elasticsearch on GCP"},
	},
	"AI & Machine Learning": {
		"Prebuilt AI APIs":   {AWS: "SageMaker API", Azure: "Cognitive Services", GCP: "AI Platform"},
		"Custom ML Training": {AWS: "SageMaker", Azure: "ML Studio", GCP: "Vertex AI"},
		"Chat & Containers":  {AWS: "Bedrock", Azure: "OpenAI Service", GCP: "Vertex AI Matching Engine"},
		"Speech to Text":     {AWS: "Transcribe", Azure: "Speech Service", GCP: "Speech-to-Text"},
		"Text to Speech":     {AWS: "Polly", Azure: "Speech Service", GCP: "Text-to-Speech"},
	},
	"DevOps & CI/CD": {
		"Source Control":           {AWS: "CodeCommit", Azure: "DevOps Repos", GCP: "Cloud Source Repositories"},
		"CI/CD Pipelines":          {AWS: "CodePipeline", Azure: "DevOps Pipelines", GCP: "Cloud Build"},
		"Artifact Registry":        {AWS: "CodeArtifact", Azure: "Artifacts", GCP: "Artifact Registry"},
		"Infrastructure as Code":   {AWS: "CloudFormation", Azure: "ARM/Bicep", GCP: "Deployment Manager"},
	},
	"Management & Governance": {
		"Cost Management":     {AWS: "Cost Explorer", Azure: "Cost Management", GCP: "Cloud Billing Reports"},
		"Resource Management": {AWS: "Resource Groups", Azure: "Resource Groups", GCP: "Resource Manager"},
		"Policy & Compliance": {AWS: "Config & GuardDuty", Azure: "Policy Insights", GCP: "Organization Policy"},
		"Tagging & Metadata":  {AWS: "Tag Editor", Azure: "Tags", GCP: "Labels"},
	},
	"IoT & Edge": {
		"Device Management": {AWS: "IoT Core", Azure: "IoT Hub", GCP: "IoT Core"},
		"Edge Compute":      {AWS: "Greengrass", Azure: "IoT Edge", GCP: "Edge TPU"},
	},
}

// LookupService resolves provider-specific names for a generic service.
func LookupService(category, service string) (CloudNames, error) {
	services, ok := serviceMapping[category]
	if !ok {
		return CloudNames{}, fmt.Errorf("unknown category: %s", category)
	}
	names, ok := services[service]
	if !ok {
		return CloudNames{}, fmt.Errorf("unknown service %q in category %s", service, category)
	}
	return names, nil
}

// Categories returns all category names, sorted.
func Categories() []string {
	categories := lo.Keys(serviceMapping)
	sort.Strings(categories)
	return categories
}

// Services returns the generic service names in a category, sorted.
// Unknown categories yield an empty slice.
func Services(category string) []string {
	services := lo.Keys(serviceMapping[category])
	sort.Strings(services)
	return services
}
